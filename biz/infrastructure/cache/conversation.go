package cache

import (
	"context"
	"fmt"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

type IConversationCacheMapper interface {
	Get(ctx context.Context, key string) (string, error)
	Append(ctx context.Context, key string, question, answer string) error
	AttachmentKey(attachmentId string) string
	RoomKey(roomId string) string
}

// ConversationCacheMapper 维护问答对话的滚动窗口，超出窗口的旧内容被截掉
type ConversationCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewConversationCacheMapper(config *config.Config) *ConversationCacheMapper {
	return &ConversationCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// Get 获取历史对话，缓存未命中返回空串
func (m *ConversationCacheMapper) Get(ctx context.Context, key string) (string, error) {
	cachedData, err := m.rds.GetCtx(ctx, key)
	if err != nil {
		return "", err
	}
	return cachedData, nil
}

// Append 在历史对话末尾追加一轮问答并续期，历史部分只保留窗口内的尾部
func (m *ConversationCacheMapper) Append(ctx context.Context, key string, question, answer string) error {
	history, err := m.Get(ctx, key)
	if err != nil {
		return err
	}

	turn := fmt.Sprintf("user: %s\nmodel: %s\n", question, answer)
	return m.rds.SetexCtx(ctx, key, TruncateTail(history, consts.ConversationWindowChars)+turn, consts.ConversationExpire)
}

// AttachmentKey 构造资料问答的对话key
func (m *ConversationCacheMapper) AttachmentKey(attachmentId string) string {
	return fmt.Sprintf("attachment_id_%s_previous_conversation", attachmentId)
}

// RoomKey 构造录播问答的对话key
func (m *ConversationCacheMapper) RoomKey(roomId string) string {
	return fmt.Sprintf("room_id_%s_previous_conversation", roomId)
}

// TruncateTail 截取 s 末尾至多 max 个unicode字符，不会切在多字节字符中间
func TruncateTail(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[len(runes)-max:])
}
