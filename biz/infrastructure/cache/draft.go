package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

type IDraftCacheMapper interface {
	Get(ctx context.Context, sessionId string) (map[string]string, error)
	Set(ctx context.Context, sessionId string, drafts map[string]string) error
	Delete(ctx context.Context, sessionId string) error
	Key(sessionId string) string
}

// DraftCacheMapper 暂存一次生成会话产出的各难度草稿，key即发布频道名
type DraftCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewDraftCacheMapper(config *config.Config) *DraftCacheMapper {
	return &DraftCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// Get 从缓存获取生成草稿，按难度档分组
func (m *DraftCacheMapper) Get(ctx context.Context, sessionId string) (map[string]string, error) {
	cacheKey := m.Key(sessionId)

	cachedData, err := m.rds.GetCtx(ctx, cacheKey)
	if err != nil {
		return nil, err
	}

	if cachedData == "" {
		return nil, fmt.Errorf("cache miss")
	}

	var drafts map[string]string
	if err := json.Unmarshal([]byte(cachedData), &drafts); err != nil {
		return nil, fmt.Errorf("unmarshal cached data failed: %w", err)
	}

	return drafts, nil
}

// Set 将生成草稿整体写入缓存，24小时过期
func (m *DraftCacheMapper) Set(ctx context.Context, sessionId string, drafts map[string]string) error {
	cacheKey := m.Key(sessionId)

	resultBytes, err := json.Marshal(drafts)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}

	return m.rds.SetexCtx(ctx, cacheKey, string(resultBytes), consts.DraftExpire)
}

// Delete 删除缓存
func (m *DraftCacheMapper) Delete(ctx context.Context, sessionId string) error {
	cacheKey := m.Key(sessionId)
	_, err := m.rds.DelCtx(ctx, cacheKey)
	return err
}

// Key 构造缓存key，同时作为进度通知的发布频道名
func (m *DraftCacheMapper) Key(sessionId string) string {
	return fmt.Sprintf("generate_assignment_id_%s", sessionId)
}
