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
	"edu-hub/biz/infrastructure/util/extract"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
)

type IPostService interface {
	CreatePost(ctx context.Context, req *eduhub.CreatePostReq) (*eduhub.CreatePostResp, error)
}

type PostService struct {
	HubMapper          *hub.MongoMapper
	HubPageCacheMapper *cache.HubPageCacheMapper
	Dispatcher         mq.Dispatcher
}

var PostServiceSet = wire.NewSet(
	wire.Struct(new(PostService), "*"),
	wire.Bind(new(IPostService), new(*PostService)),
)

// CreatePost 发帖并为每个附件排队摄取任务，立即返回
// 附件解析结果只能通过任务频道异步获知
func (s *PostService) CreatePost(ctx context.Context, req *eduhub.CreatePostReq) (*eduhub.CreatePostResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	postId := uuid.NewString()
	attachments := make([]*hub.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		if a.AttachmentId == "" {
			a.AttachmentId = uuid.NewString()
		}
		attachments = append(attachments, &hub.Attachment{
			AttachmentID: a.AttachmentId,
			Url:          a.Url,
			Filename:     a.Filename,
		})
	}

	post := &hub.Post{
		Uuid:        postId,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Topic:       req.Topic,
		PollOptions: req.PollOptions,
		Attachments: attachments,
		CreatedAt:   time.Now(),
	}
	if err := s.HubMapper.PushPost(ctx, req.HubId, post); err != nil {
		log.CtxError(ctx, "发布帖子失败: %v", err)
		return nil, consts.ErrCreatePost
	}

	// 新内容落库，第一页时间线失效
	if err := s.HubPageCacheMapper.DeletePage(ctx, req.HubId, 1); err != nil {
		log.CtxError(ctx, "失效时间线缓存失败: %v", err)
	}

	for _, a := range attachments {
		task, err := mq.NewTask(mq.TypePostIngest, &mq.PostIngestPayload{
			HubId:        req.HubId,
			PostId:       postId,
			AttachmentId: a.AttachmentID,
			Url:          a.Url,
			Filename:     a.Filename,
			MimeType:     extract.MimeForFilename(a.Filename),
		})
		if err != nil {
			log.CtxError(ctx, "构造摄取任务失败: %v", err)
			continue
		}
		if _, err := s.Dispatcher.Dispatch(ctx, task); err != nil {
			log.CtxError(ctx, "投递摄取任务失败: %v", err)
		}
	}

	return &eduhub.CreatePostResp{
		PostId: postId,
		Msg:    "发布成功，附件处理中",
	}, nil
}
