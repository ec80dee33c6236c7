package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden           = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication   = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrNotFound            = NewErrno(codes.NotFound, errors.New("数据不存在"))
	ErrInvalidObjectId     = NewErrno(codes.InvalidArgument, errors.New("无效的id"))
	ErrSignIn              = NewErrno(codes.Code(1001), errors.New("登录失败，请重试"))
	ErrCreateHub           = NewErrno(codes.Code(1002), errors.New("创建学习空间失败"))
	ErrJoinHub             = NewErrno(codes.Code(1003), errors.New("加入学习空间失败，请确认邀请码"))
	ErrCreatePost          = NewErrno(codes.Code(1004), errors.New("发布帖子失败"))
	ErrCreateQuiz          = NewErrno(codes.Code(1005), errors.New("创建测验失败"))
	ErrCreateRecording     = NewErrno(codes.Code(1006), errors.New("保存录制记录失败"))
	ErrSendMessage         = NewErrno(codes.Code(1007), errors.New("发送消息失败"))
	ErrGenerationNotFound  = NewErrno(codes.NotFound, errors.New("生成会话不存在或已过期"))
	ErrInvalidDifficulty   = NewErrno(codes.InvalidArgument, errors.New("无效的难度等级"))
	ErrGenerate            = NewErrno(codes.Code(1008), errors.New("生成作业失败，请重试"))
	ErrMaterialize         = NewErrno(codes.Code(1009), errors.New("保存生成的作业失败"))
	ErrSubmitAssignment    = NewErrno(codes.Code(1010), errors.New("提交作业失败"))
	ErrAssessAssignment    = NewErrno(codes.Code(1011), errors.New("批改作业失败"))
	ErrChat                = NewErrno(codes.Code(1012), errors.New("问答失败，请重试"))
	ErrEmbed               = NewErrno(codes.Code(1013), errors.New("向量化失败"))
	ErrUnsupportedFileType = NewErrno(codes.Code(1014), errors.New("不支持的文件格式，仅支持PDF、PPTX和DOCX"))
	ErrCall                = NewErrno(codes.Code(1999), errors.New("下游调用失败"))
	ErrOneCall             = NewErrno(codes.Code(2000), errors.New("当前有生成任务正在进行中"))
	ErrGetHub              = NewErrno(codes.Code(1015), errors.New("获取学习空间失败"))
	ErrGetMessages         = NewErrno(codes.Code(1016), errors.New("获取消息失败"))
)
