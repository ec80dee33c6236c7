package lock

import (
	"context"
	"time"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const lockPrefix = "lock:"

// Mutex 基于Redis SETNX的分布式互斥锁
// ttl为锁的过期秒数，waitMs为抢锁的总等待毫秒数
type Mutex struct {
	ctx      context.Context
	rds      *gozero_redis.Redis
	key      string
	ttl      int
	waitMs   int
	acquired time.Time
}

func NewMutex(ctx context.Context, key string, ttl int, waitMs int) *Mutex {
	return &Mutex{
		ctx:    ctx,
		rds:    redis.GetRedis(config.GetConfig()),
		key:    lockPrefix + key,
		ttl:    ttl,
		waitMs: waitMs,
	}
}

// Lock 在waitMs内轮询抢锁，抢不到返回ErrOneCall
func (m *Mutex) Lock() error {
	deadline := time.Now().Add(time.Duration(m.waitMs) * time.Millisecond)
	for {
		ok, err := m.rds.SetnxExCtx(m.ctx, m.key, "1", m.ttl)
		if err != nil {
			return err
		}
		if ok {
			m.acquired = time.Now()
			return nil
		}
		if time.Now().After(deadline) {
			return consts.ErrOneCall
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (m *Mutex) Unlock() error {
	_, err := m.rds.DelCtx(m.ctx, m.key)
	return err
}

// Expired 判断持有期间锁是否已自然过期
func (m *Mutex) Expired() bool {
	return time.Since(m.acquired) > time.Duration(m.ttl)*time.Second
}
