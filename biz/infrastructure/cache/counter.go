package cache

import (
	"context"
	"fmt"
	"strconv"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

type ICounterCacheMapper interface {
	Incr(ctx context.Context, key string, delta int64) error
	Set(ctx context.Context, key string, value int64) error
	Get(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	AttachmentEmbeddingsKey(attachmentId string) string
	RoomEmbeddingsKey(roomId string) string
}

// CounterCacheMapper 记录各来源已入库的向量条数，问答侧据此推算检索规模
type CounterCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewCounterCacheMapper(config *config.Config) *CounterCacheMapper {
	return &CounterCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// Incr 累加计数，key不存在时从0开始
func (m *CounterCacheMapper) Incr(ctx context.Context, key string, delta int64) error {
	_, err := m.rds.IncrbyCtx(ctx, key, delta)
	return err
}

// Set 覆盖写计数
func (m *CounterCacheMapper) Set(ctx context.Context, key string, value int64) error {
	return m.rds.SetCtx(ctx, key, strconv.FormatInt(value, 10))
}

// Get 读取计数，key不存在视为0
func (m *CounterCacheMapper) Get(ctx context.Context, key string) (int64, error) {
	cachedData, err := m.rds.GetCtx(ctx, key)
	if err != nil {
		return 0, err
	}
	if cachedData == "" {
		return 0, nil
	}
	count, err := strconv.ParseInt(cachedData, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter failed: %w", err)
	}
	return count, nil
}

// Delete 删除计数
func (m *CounterCacheMapper) Delete(ctx context.Context, key string) error {
	_, err := m.rds.DelCtx(ctx, key)
	return err
}

// AttachmentEmbeddingsKey 构造资料向量计数key
func (m *CounterCacheMapper) AttachmentEmbeddingsKey(attachmentId string) string {
	return fmt.Sprintf("attachment_id_%s_number_of_embeddings", attachmentId)
}

// RoomEmbeddingsKey 构造录播向量计数key
func (m *CounterCacheMapper) RoomEmbeddingsKey(roomId string) string {
	return fmt.Sprintf("room_id_%s_number_of_recording_embeddings", roomId)
}
