package mq

import (
	"context"
	"time"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Dispatcher 任务投递能力，按依赖注入传递而不是全局可达
type Dispatcher interface {
	Dispatch(ctx context.Context, task *asynq.Task) (string, error)
	DispatchIn(ctx context.Context, task *asynq.Task, delay time.Duration) (string, error)
}

type AsynqDispatcher struct {
	client *asynq.Client
}

func NewDispatcher(config *config.Config) *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.Redis.Host,
			Password: config.Redis.Pass,
		}),
	}
}

// Dispatch 立即投递，返回任务id，调用方可据此订阅完成通知
func (d *AsynqDispatcher) Dispatch(ctx context.Context, task *asynq.Task) (string, error) {
	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", err
	}
	log.CtxInfo(ctx, "dispatch task type=%s id=%s", task.Type(), info.ID)
	return info.ID, nil
}

// DispatchIn 延迟投递，用于到期自动批改这类倒计时任务
func (d *AsynqDispatcher) DispatchIn(ctx context.Context, task *asynq.Task, delay time.Duration) (string, error) {
	info, err := d.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay))
	if err != nil {
		return "", err
	}
	log.CtxInfo(ctx, "dispatch delayed task type=%s id=%s delay=%s", task.Type(), info.ID, delay)
	return info.ID, nil
}

func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

// SyncDispatcher 同步执行任务的测试替身，把投递变成当场调用
type SyncDispatcher struct {
	Handler    func(ctx context.Context, task *asynq.Task) error
	Dispatched []*asynq.Task
	Delays     []time.Duration
}

func (d *SyncDispatcher) Dispatch(ctx context.Context, task *asynq.Task) (string, error) {
	d.Dispatched = append(d.Dispatched, task)
	d.Delays = append(d.Delays, 0)
	if d.Handler != nil {
		if err := d.Handler(ctx, task); err != nil {
			return "", err
		}
	}
	return uuid.NewString(), nil
}

func (d *SyncDispatcher) DispatchIn(ctx context.Context, task *asynq.Task, delay time.Duration) (string, error) {
	d.Dispatched = append(d.Dispatched, task)
	d.Delays = append(d.Delays, delay)
	if d.Handler != nil {
		if err := d.Handler(ctx, task); err != nil {
			return "", err
		}
	}
	return uuid.NewString(), nil
}
