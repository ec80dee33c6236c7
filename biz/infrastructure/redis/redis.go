package redis

import (
	"sync"

	"edu-hub/biz/infrastructure/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// Redis连接管理
// 提供统一的Redis客户端实例

var instance *redis.Redis
var once sync.Once

var pubsub *goredis.Client
var pubsubOnce sync.Once

// GetRedis 构造一个Redis客户端
func GetRedis(config *config.Config) *redis.Redis {
	once.Do(func() {
		instance = redis.MustNewRedis(*config.Redis)
	})
	return instance
}

// GetPubSubClient 构造发布订阅专用客户端
// go-zero的redis封装不包含Subscribe，发布订阅统一走原生go-redis
func GetPubSubClient(config *config.Config) *goredis.Client {
	pubsubOnce.Do(func() {
		pubsub = goredis.NewClient(&goredis.Options{
			Addr:     config.Redis.Host,
			Password: config.Redis.Pass,
		})
	})
	return pubsub
}
