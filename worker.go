package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/provider"

	"github.com/hibiken/asynq"
)

// registerTaskHandlers 把队列任务类型接到各自的处理函数上
func registerTaskHandlers(w *mq.Worker, p *provider.Provider) {
	w.Handle(mq.TypeAssignmentGenerate, func(ctx context.Context, task *asynq.Task) error {
		var payload mq.GenerateAssignmentPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("解析任务参数失败: %v: %w", err, asynq.SkipRetry)
		}
		return p.GenerationService.Generate(ctx, &payload)
	})

	w.Handle(mq.TypeAssignmentModify, func(ctx context.Context, task *asynq.Task) error {
		var payload mq.ModifyAssignmentPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("解析任务参数失败: %v: %w", err, asynq.SkipRetry)
		}
		return skipIfGone(p.GenerationService.Modify(ctx, &payload))
	})

	w.Handle(mq.TypeAssignmentMaterialize, func(ctx context.Context, task *asynq.Task) error {
		var payload mq.MaterializeAssignmentPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("解析任务参数失败: %v: %w", err, asynq.SkipRetry)
		}
		return skipIfGone(p.GenerationService.Materialize(ctx, &payload))
	})

	w.Handle(mq.TypeAssignmentGrade, func(ctx context.Context, task *asynq.Task) error {
		var payload mq.GradeAssignmentPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("解析任务参数失败: %v: %w", err, asynq.SkipRetry)
		}
		return p.GenerationService.GradeDue(ctx, &payload)
	})

	w.Handle(mq.TypePostIngest, func(ctx context.Context, task *asynq.Task) error {
		var payload mq.PostIngestPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("解析任务参数失败: %v: %w", err, asynq.SkipRetry)
		}
		return p.IngestService.ProcessAttachment(ctx, &payload)
	})

	w.Handle(mq.TypeRecordingTranscript, func(ctx context.Context, task *asynq.Task) error {
		var payload mq.RecordingTranscriptPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("解析任务参数失败: %v: %w", err, asynq.SkipRetry)
		}
		return p.IngestService.ProcessTranscript(ctx, &payload)
	})
}

// skipIfGone 草稿会话过期属于终态，重试不会让它复活
func skipIfGone(err error) error {
	if errors.Is(err, consts.ErrGenerationNotFound) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
