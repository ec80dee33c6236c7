package util

import (
	"encoding/json"

	"edu-hub/biz/application/dto/eduhub"
)

// JSONF 序列化为JSON字符串，用于日志打印
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// Fail 构造通用失败响应
func Fail(code int64, msg string) *eduhub.Response {
	return &eduhub.Response{
		Code: code,
		Msg:  msg,
	}
}

// Succeed 构造通用成功响应
func Succeed(msg string) (*eduhub.Response, error) {
	return &eduhub.Response{
		Code: 0,
		Msg:  msg,
	}, nil
}
