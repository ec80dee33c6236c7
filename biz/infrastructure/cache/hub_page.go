package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

type IHubPageCacheMapper interface {
	GetPage(ctx context.Context, hubId string, page int64) ([]*eduhub.FeedItem, error)
	SetPage(ctx context.Context, hubId string, page int64, items []*eduhub.FeedItem) error
	DeletePage(ctx context.Context, hubId string, page int64) error
	GetIntroductory(ctx context.Context, hubId string) (*eduhub.GetHubIntroductoryResp, error)
	SetIntroductory(ctx context.Context, hubId string, data *eduhub.GetHubIntroductoryResp) error
	DeleteIntroductory(ctx context.Context, hubId string) error
}

// HubPageCacheMapper 缓存课堂首页的分页时间线与简介，新内容落库后第一页需要失效
type HubPageCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewHubPageCacheMapper(config *config.Config) *HubPageCacheMapper {
	return &HubPageCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// GetPage 获取某一页时间线
func (m *HubPageCacheMapper) GetPage(ctx context.Context, hubId string, page int64) ([]*eduhub.FeedItem, error) {
	cachedData, err := m.rds.GetCtx(ctx, m.buildPageKey(hubId, page))
	if err != nil {
		return nil, err
	}

	if cachedData == "" {
		return nil, fmt.Errorf("cache miss")
	}

	var items []*eduhub.FeedItem
	if err := json.Unmarshal([]byte(cachedData), &items); err != nil {
		return nil, fmt.Errorf("unmarshal cached data failed: %w", err)
	}

	return items, nil
}

// SetPage 缓存某一页时间线
func (m *HubPageCacheMapper) SetPage(ctx context.Context, hubId string, page int64, items []*eduhub.FeedItem) error {
	resultBytes, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}

	return m.rds.SetexCtx(ctx, m.buildPageKey(hubId, page), string(resultBytes), consts.HubPageExpire)
}

// DeletePage 删除某一页时间线缓存
func (m *HubPageCacheMapper) DeletePage(ctx context.Context, hubId string, page int64) error {
	_, err := m.rds.DelCtx(ctx, m.buildPageKey(hubId, page))
	return err
}

// GetIntroductory 获取课堂简介
func (m *HubPageCacheMapper) GetIntroductory(ctx context.Context, hubId string) (*eduhub.GetHubIntroductoryResp, error) {
	cachedData, err := m.rds.GetCtx(ctx, m.buildIntroductoryKey(hubId))
	if err != nil {
		return nil, err
	}

	if cachedData == "" {
		return nil, fmt.Errorf("cache miss")
	}

	var result eduhub.GetHubIntroductoryResp
	if err := json.Unmarshal([]byte(cachedData), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached data failed: %w", err)
	}

	return &result, nil
}

// SetIntroductory 缓存课堂简介
func (m *HubPageCacheMapper) SetIntroductory(ctx context.Context, hubId string, data *eduhub.GetHubIntroductoryResp) error {
	resultBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}

	return m.rds.SetexCtx(ctx, m.buildIntroductoryKey(hubId), string(resultBytes), consts.HubPageExpire)
}

// DeleteIntroductory 删除课堂简介缓存
func (m *HubPageCacheMapper) DeleteIntroductory(ctx context.Context, hubId string) error {
	_, err := m.rds.DelCtx(ctx, m.buildIntroductoryKey(hubId))
	return err
}

func (m *HubPageCacheMapper) buildPageKey(hubId string, page int64) string {
	return fmt.Sprintf("hub_%s_paginated_page_%d", hubId, page)
}

func (m *HubPageCacheMapper) buildIntroductoryKey(hubId string) string {
	return fmt.Sprintf("hub_%s_introductory", hubId)
}
