package service

import (
	"context"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/biz/infrastructure/repository/assignment"
	"edu-hub/biz/infrastructure/repository/hub"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/samber/lo"
)

type IAssignmentService interface {
	GenerateAssignment(ctx context.Context, req *eduhub.GenerateAssignmentReq) (*eduhub.GenerateAssignmentResp, error)
	ModifyAssignment(ctx context.Context, req *eduhub.ModifyAssignmentReq) (*eduhub.GenerateAssignmentResp, error)
	CreateAssignmentUsingAI(ctx context.Context, req *eduhub.CreateAssignmentUsingAIReq) (*eduhub.GenerateAssignmentResp, error)
	GetAssignment(ctx context.Context, req *eduhub.GetAssignmentReq) (*eduhub.GetAssignmentResp, error)
	SubmitAssignment(ctx context.Context, req *eduhub.SubmitAssignmentReq) (*eduhub.Response, error)
	AssessAssignment(ctx context.Context, req *eduhub.AssessAssignmentReq) (*eduhub.Response, error)
}

// AssignmentService 作业接口的请求侧：生成类操作只排队不等待
type AssignmentService struct {
	AssignmentMapper *assignment.MongoMapper
	HubMapper        *hub.MongoMapper
	DraftCacheMapper *cache.DraftCacheMapper
	Dispatcher       mq.Dispatcher
}

var AssignmentServiceSet = wire.NewSet(
	wire.Struct(new(AssignmentService), "*"),
	wire.Bind(new(IAssignmentService), new(*AssignmentService)),
)

// GenerateAssignment 开启一次生成会话并排队生成任务
// 返回的sessionId同时是草稿缓存key和进度订阅频道
func (s *AssignmentService) GenerateAssignment(ctx context.Context, req *eduhub.GenerateAssignmentReq) (*eduhub.GenerateAssignmentResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	sessionId := uuid.NewString()
	task, err := mq.NewTask(mq.TypeAssignmentGenerate, &mq.GenerateAssignmentPayload{
		SessionId: sessionId,
		Req:       req,
	})
	if err != nil {
		log.CtxError(ctx, "构造生成任务失败: %v", err)
		return nil, consts.ErrGenerate
	}
	if _, err := s.Dispatcher.Dispatch(ctx, task); err != nil {
		log.CtxError(ctx, "投递生成任务失败: %v", err)
		return nil, consts.ErrGenerate
	}

	return &eduhub.GenerateAssignmentResp{
		SessionId: sessionId,
		Msg:       "生成中，请订阅会话频道获取结果",
	}, nil
}

// ModifyAssignment 对暂存草稿的某个难度档发起修改
// 会话不存在立即报404，不会产生任何落库写入
func (s *AssignmentService) ModifyAssignment(ctx context.Context, req *eduhub.ModifyAssignmentReq) (*eduhub.GenerateAssignmentResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if !lo.Contains(consts.AllDifficulties, req.Difficulty) {
		return nil, consts.ErrInvalidDifficulty
	}

	if _, err := s.DraftCacheMapper.Get(ctx, req.SessionId); err != nil {
		return nil, consts.ErrGenerationNotFound
	}

	task, err := mq.NewTask(mq.TypeAssignmentModify, &mq.ModifyAssignmentPayload{
		SessionId:     req.SessionId,
		Difficulty:    req.Difficulty,
		ChangesPrompt: req.ChangesPrompt,
	})
	if err != nil {
		log.CtxError(ctx, "构造修改任务失败: %v", err)
		return nil, consts.ErrGenerate
	}
	if _, err := s.Dispatcher.Dispatch(ctx, task); err != nil {
		log.CtxError(ctx, "投递修改任务失败: %v", err)
		return nil, consts.ErrGenerate
	}

	return &eduhub.GenerateAssignmentResp{
		SessionId: req.SessionId,
		Msg:       "修改中，请订阅会话频道获取结果",
	}, nil
}

// CreateAssignmentUsingAI 把暂存草稿落成正式作业
func (s *AssignmentService) CreateAssignmentUsingAI(ctx context.Context, req *eduhub.CreateAssignmentUsingAIReq) (*eduhub.GenerateAssignmentResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	if _, err := s.DraftCacheMapper.Get(ctx, req.SessionId); err != nil {
		return nil, consts.ErrGenerationNotFound
	}

	task, err := mq.NewTask(mq.TypeAssignmentMaterialize, &mq.MaterializeAssignmentPayload{
		SessionId: req.SessionId,
		Req:       req,
	})
	if err != nil {
		log.CtxError(ctx, "构造落库任务失败: %v", err)
		return nil, consts.ErrMaterialize
	}
	if _, err := s.Dispatcher.Dispatch(ctx, task); err != nil {
		log.CtxError(ctx, "投递落库任务失败: %v", err)
		return nil, consts.ErrMaterialize
	}

	return &eduhub.GenerateAssignmentResp{
		SessionId: req.SessionId,
		Msg:       "创建中",
	}, nil
}

func (s *AssignmentService) GetAssignment(ctx context.Context, req *eduhub.GetAssignmentReq) (*eduhub.GetAssignmentResp, error) {
	a, err := s.AssignmentMapper.FindOne(ctx, req.AssignmentId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	return &eduhub.GetAssignmentResp{
		Id:          a.ID.Hex(),
		HubId:       a.HubID,
		Title:       a.Title,
		Difficulty:  a.Difficulty,
		Question:    a.Question,
		TotalPoints: a.TotalPoints,
		Topic:       a.Topic,
		Due:         a.Due.Unix(),
	}, nil
}

// SubmitAssignment 学生提交作答，重复提交覆盖
func (s *AssignmentService) SubmitAssignment(ctx context.Context, req *eduhub.SubmitAssignmentReq) (*eduhub.Response, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetEmail() == "" {
		return nil, consts.ErrNotAuthentication
	}

	if _, err := s.AssignmentMapper.FindOne(ctx, req.AssignmentId); err != nil {
		return nil, consts.ErrNotFound
	}
	if err := s.AssignmentMapper.SetResponse(ctx, req.AssignmentId, userMeta.GetEmail(), req.Response); err != nil {
		log.CtxError(ctx, "提交作业失败: %v", err)
		return nil, consts.ErrSubmitAssignment
	}

	return util.Succeed("提交成功")
}

// AssessAssignment 老师批改，成绩同步进课堂的学生成绩序列
func (s *AssignmentService) AssessAssignment(ctx context.Context, req *eduhub.AssessAssignmentReq) (*eduhub.Response, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	a, err := s.AssignmentMapper.FindOne(ctx, req.AssignmentId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	if err := s.AssignmentMapper.SetAssessment(ctx, req.AssignmentId, req.StudentEmail, req.Marks, req.Feedback); err != nil {
		log.CtxError(ctx, "批改作业失败: %v", err)
		return nil, consts.ErrAssessAssignment
	}
	if err := s.HubMapper.AppendStudentMark(ctx, a.HubID, req.StudentEmail, req.Marks); err != nil {
		log.CtxError(ctx, "同步学生成绩失败: %v", err)
		return nil, consts.ErrAssessAssignment
	}

	return util.Succeed("批改完成")
}
