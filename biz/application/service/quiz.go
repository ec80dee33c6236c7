package service

import (
	"context"
	"time"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/repository/hub"
	"edu-hub/biz/infrastructure/repository/quiz"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IQuizService interface {
	CreateQuiz(ctx context.Context, req *eduhub.CreateQuizReq) (*eduhub.CreateQuizResp, error)
	GetQuiz(ctx context.Context, req *eduhub.GetQuizReq) (*eduhub.GetQuizResp, error)
}

type QuizService struct {
	QuizMapper         *quiz.MongoMapper
	HubMapper          *hub.MongoMapper
	HubPageCacheMapper *cache.HubPageCacheMapper
}

var QuizServiceSet = wire.NewSet(
	wire.Struct(new(QuizService), "*"),
	wire.Bind(new(IQuizService), new(*QuizService)),
)

// CreateQuiz 建测验文档并把摘要挂进课堂时间线
func (s *QuizService) CreateQuiz(ctx context.Context, req *eduhub.CreateQuizReq) (*eduhub.CreateQuizResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	questions := lo.Map(req.Questions, func(q *eduhub.QuizQuestion, _ int) *quiz.Question {
		return &quiz.Question{
			Type:    q.Type,
			Text:    q.Text,
			Marks:   float64(q.Marks),
			Options: q.Options,
			Answer:  []string{q.Answer},
		}
	})

	q := &quiz.Quiz{
		HubID:       req.HubId,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		TotalPoints: req.TotalPoints,
		Topic:       req.Topic,
		Due:         time.Unix(req.Due, 0),
		Questions:   questions,
	}
	if err := s.QuizMapper.Insert(ctx, q); err != nil {
		log.CtxError(ctx, "创建测验失败: %v", err)
		return nil, consts.ErrCreateQuiz
	}

	summary := &hub.QuizSummary{
		QuizID:      q.ID,
		Title:       req.Title,
		TotalPoints: req.TotalPoints,
		Topic:       req.Topic,
		Due:         time.Unix(req.Due, 0),
		CreatedAt:   time.Now(),
	}
	if err := s.HubMapper.PushQuizSummary(ctx, req.HubId, summary); err != nil {
		log.CtxError(ctx, "登记测验摘要失败: %v", err)
		return nil, consts.ErrCreateQuiz
	}

	if err := s.HubPageCacheMapper.DeletePage(ctx, req.HubId, 1); err != nil {
		log.CtxError(ctx, "失效时间线缓存失败: %v", err)
	}

	return &eduhub.CreateQuizResp{QuizId: q.ID.Hex()}, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, req *eduhub.GetQuizReq) (*eduhub.GetQuizResp, error) {
	q, err := s.QuizMapper.FindOne(ctx, req.QuizId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	questions := lo.Map(q.Questions, func(qu *quiz.Question, _ int) *eduhub.QuizQuestion {
		answer := ""
		if len(qu.Answer) > 0 {
			answer = qu.Answer[0]
		}
		return &eduhub.QuizQuestion{
			Type:    qu.Type,
			Text:    qu.Text,
			Marks:   int64(qu.Marks),
			Options: qu.Options,
			Answer:  answer,
		}
	})

	return &eduhub.GetQuizResp{
		Id:          q.ID.Hex(),
		HubId:       q.HubID,
		Title:       q.Title,
		Description: q.Description,
		Duration:    q.Duration,
		TotalPoints: q.TotalPoints,
		Topic:       q.Topic,
		Due:         q.Due.Unix(),
		Questions:   questions,
	}, nil
}
