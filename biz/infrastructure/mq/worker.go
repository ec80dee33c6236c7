package mq

import (
	"context"
	"errors"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/redis"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/hibiken/asynq"
)

// 任务结束后发布到任务id频道的状态
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Worker 消费后台队列，任务收尾时在任务id频道上广播结果
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	config *config.Config
}

func NewWorker(config *config.Config) *Worker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.Redis.Host,
			Password: config.Redis.Pass,
		},
		asynq.Config{
			Concurrency:    config.Queue.Concurrency,
			RetryDelayFunc: RetryDelay,
		},
	)
	return &Worker{
		srv:    srv,
		mux:    asynq.NewServeMux(),
		config: config,
	}
}

// Handle 注册任务处理函数，包一层完成通知：成功即SUCCESS，重试耗尽才FAILURE
func (w *Worker) Handle(typename string, handler asynq.HandlerFunc) {
	w.mux.HandleFunc(typename, func(ctx context.Context, task *asynq.Task) error {
		err := handler(ctx, task)
		taskId, _ := asynq.GetTaskID(ctx)
		if err == nil {
			w.publish(ctx, taskId, StatusSuccess)
			return nil
		}
		log.CtxError(ctx, "任务执行失败 type=%s id=%s err=%v", task.Type(), taskId, err)
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		// SkipRetry是终态，和重试耗尽一样要通知失败
		if retried >= maxRetry || errors.Is(err, asynq.SkipRetry) {
			w.publish(ctx, taskId, StatusFailure)
		}
		return err
	})
}

func (w *Worker) publish(ctx context.Context, channel, status string) {
	if channel == "" {
		return
	}
	if err := redis.GetPubSubClient(w.config).Publish(ctx, channel, status).Err(); err != nil {
		log.CtxError(ctx, "发布任务状态失败 channel=%s status=%s err=%v", channel, status, err)
	}
}

// Start 启动消费，非阻塞
func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
