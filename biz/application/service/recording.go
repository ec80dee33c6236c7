package service

import (
	"context"
	"time"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/biz/infrastructure/repository/hub"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/wire"
)

// 转写服务回调里我们关心的事件类型
const webhookTranscriptionSuccess = "transcription.success"

type IRecordingService interface {
	CreateRecording(ctx context.Context, req *eduhub.CreateRecordingReq) (*eduhub.Response, error)
	RecordingWebhook(ctx context.Context, req *eduhub.RecordingWebhookReq) (*eduhub.Response, error)
}

type RecordingService struct {
	HubMapper          *hub.MongoMapper
	HubPageCacheMapper *cache.HubPageCacheMapper
	Dispatcher         mq.Dispatcher
}

var RecordingServiceSet = wire.NewSet(
	wire.Struct(new(RecordingService), "*"),
	wire.Bind(new(IRecordingService), new(*RecordingService)),
)

// CreateRecording 登记一场直播录制
func (s *RecordingService) CreateRecording(ctx context.Context, req *eduhub.CreateRecordingReq) (*eduhub.Response, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	recording := &hub.Recording{
		RoomID:      req.RoomId,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.HubMapper.PushRecording(ctx, req.HubId, recording); err != nil {
		log.CtxError(ctx, "保存录制记录失败: %v", err)
		return nil, consts.ErrCreateRecording
	}

	if err := s.HubPageCacheMapper.DeletePage(ctx, req.HubId, 1); err != nil {
		log.CtxError(ctx, "失效时间线缓存失败: %v", err)
	}

	return util.Succeed("录制已登记")
}

// RecordingWebhook 转写完成事件触发转写摄取任务，其余事件直接确认
func (s *RecordingService) RecordingWebhook(ctx context.Context, req *eduhub.RecordingWebhookReq) (*eduhub.Response, error) {
	if req.Type != webhookTranscriptionSuccess || req.Data == nil {
		return util.Succeed("已接收")
	}

	task, err := mq.NewTask(mq.TypeRecordingTranscript, &mq.RecordingTranscriptPayload{
		RoomId:        req.Data.RoomId,
		TranscriptUrl: req.Data.TranscriptTxtPresignedUrl,
	})
	if err != nil {
		log.CtxError(ctx, "构造转写任务失败: %v", err)
		return nil, consts.ErrCall
	}
	if _, err := s.Dispatcher.Dispatch(ctx, task); err != nil {
		log.CtxError(ctx, "投递转写任务失败: %v", err)
		return nil, consts.ErrCall
	}

	return util.Succeed("转写处理中")
}
