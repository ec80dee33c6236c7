package cache

import (
	"context"
	"fmt"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	userFieldId   = "user_id"
	userFieldName = "name"
)

type IUserCacheMapper interface {
	Get(ctx context.Context, email string) (userId, name string, err error)
	Set(ctx context.Context, email, userId, name string) error
	Delete(ctx context.Context, email string) error
}

// UserCacheMapper 登录后以hash形式缓存用户身份，省掉每次请求的查库
type UserCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewUserCacheMapper(config *config.Config) *UserCacheMapper {
	return &UserCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// Get 获取缓存的用户身份，缓存未命中返回错误
func (m *UserCacheMapper) Get(ctx context.Context, email string) (string, string, error) {
	fields, err := m.rds.HgetallCtx(ctx, m.buildCacheKey(email))
	if err != nil {
		return "", "", err
	}
	if len(fields) == 0 {
		return "", "", fmt.Errorf("cache miss")
	}
	return fields[userFieldId], fields[userFieldName], nil
}

// Set 缓存用户身份
func (m *UserCacheMapper) Set(ctx context.Context, email, userId, name string) error {
	return m.rds.HmsetCtx(ctx, m.buildCacheKey(email), map[string]string{
		userFieldId:   userId,
		userFieldName: name,
	})
}

// Delete 删除缓存
func (m *UserCacheMapper) Delete(ctx context.Context, email string) error {
	_, err := m.rds.DelCtx(ctx, m.buildCacheKey(email))
	return err
}

func (m *UserCacheMapper) buildCacheKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}
