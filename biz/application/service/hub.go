package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/repository/hub"
	"edu-hub/biz/infrastructure/repository/message"
	"edu-hub/biz/infrastructure/repository/user"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/log"
	"edu-hub/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

type IHubService interface {
	CreateHub(ctx context.Context, req *eduhub.CreateHubReq) (*eduhub.CreateHubResp, error)
	JoinHub(ctx context.Context, req *eduhub.JoinHubReq) (*eduhub.Response, error)
	GetHubs(ctx context.Context, req *eduhub.GetHubsReq) (*eduhub.GetHubsResp, error)
	GetHubIntroductory(ctx context.Context, req *eduhub.GetHubIntroductoryReq) (*eduhub.GetHubIntroductoryResp, error)
	GetHubPage(ctx context.Context, req *eduhub.GetHubPageReq) (*eduhub.GetHubPageResp, error)
	SendMessage(ctx context.Context, req *eduhub.SendMessageReq) (*eduhub.Response, error)
	GetMessages(ctx context.Context, req *eduhub.GetMessagesReq) (*eduhub.GetMessagesResp, error)
}

type HubService struct {
	HubMapper          *hub.MongoMapper
	UserMapper         *user.MongoMapper
	MessageMapper      *message.MongoMapper
	HubPageCacheMapper *cache.HubPageCacheMapper
}

var HubServiceSet = wire.NewSet(
	wire.Struct(new(HubService), "*"),
	wire.Bind(new(IHubService), new(*HubService)),
)

// CreateHub 创建学习空间，创建者自动成为老师
func (s *HubService) CreateHub(ctx context.Context, req *eduhub.CreateHubReq) (*eduhub.CreateHubResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	inviteCode := s.generateInviteCode()

	h := &hub.Hub{
		Name:        req.Name,
		Section:     req.Section,
		Description: req.Description,
		ThemeColor:  req.ThemeColor,
		PhotoUrl:    req.PhotoUrl,
		CreatorID:   userMeta.GetUserId(),
		InviteCode:  inviteCode,
		MembersEmail: map[string][]string{
			consts.RoleTeacher: {userMeta.GetEmail()},
		},
		StudentsAssignmentMarks: make(map[string][]float64),
	}
	if err := s.HubMapper.Insert(ctx, h); err != nil {
		log.CtxError(ctx, "创建学习空间失败: %v", err)
		return nil, consts.ErrCreateHub
	}

	if err := s.UserMapper.AddHub(ctx, userMeta.GetUserId(), consts.RoleTeacher, h.ID); err != nil {
		log.CtxError(ctx, "登记用户课堂失败: %v", err)
		return nil, consts.ErrCreateHub
	}

	return &eduhub.CreateHubResp{
		HubId:      h.ID.Hex(),
		InviteCode: inviteCode,
	}, nil
}

// JoinHub 凭邀请码加入，默认学生身份
func (s *HubService) JoinHub(ctx context.Context, req *eduhub.JoinHubReq) (*eduhub.Response, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	h, err := s.HubMapper.FindOneByInviteCode(ctx, req.InviteCode)
	if err != nil {
		return nil, consts.ErrJoinHub
	}

	if err := s.HubMapper.AddMember(ctx, h.ID.Hex(), consts.RoleStudent, userMeta.GetEmail()); err != nil {
		log.CtxError(ctx, "加入学习空间失败: %v", err)
		return nil, consts.ErrJoinHub
	}
	if err := s.UserMapper.AddHub(ctx, userMeta.GetUserId(), consts.RoleStudent, h.ID); err != nil {
		log.CtxError(ctx, "登记用户课堂失败: %v", err)
		return nil, consts.ErrJoinHub
	}

	return util.Succeed("加入成功")
}

// GetHubs 列出用户以任意角色加入的全部学习空间
func (s *HubService) GetHubs(ctx context.Context, _ *eduhub.GetHubsReq) (*eduhub.GetHubsResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	u, err := s.UserMapper.FindOne(ctx, userMeta.GetUserId())
	if err != nil {
		return nil, consts.ErrGetHub
	}

	roleByHub := make(map[string]string)
	ids := make([]string, 0)
	for role, hubIds := range u.Hubs {
		for _, id := range hubIds {
			hex := id.Hex()
			if _, ok := roleByHub[hex]; !ok {
				ids = append(ids, hex)
			}
			roleByHub[hex] = role
		}
	}
	if len(ids) == 0 {
		return &eduhub.GetHubsResp{Hubs: []*eduhub.HubInfo{}}, nil
	}

	hubs, err := s.HubMapper.FindMany(ctx, ids)
	if err != nil {
		log.CtxError(ctx, "查询学习空间失败: %v", err)
		return nil, consts.ErrGetHub
	}

	infos := make([]*eduhub.HubInfo, 0, len(hubs))
	for _, h := range hubs {
		infos = append(infos, &eduhub.HubInfo{
			HubId:       h.ID.Hex(),
			Name:        h.Name,
			Section:     h.Section,
			Description: h.Description,
			Role:        roleByHub[h.ID.Hex()],
			CreatedAt:   h.CreateTime.Unix(),
		})
	}
	return &eduhub.GetHubsResp{Hubs: infos}, nil
}

// GetHubIntroductory 课堂简介快照，短期缓存
func (s *HubService) GetHubIntroductory(ctx context.Context, req *eduhub.GetHubIntroductoryReq) (*eduhub.GetHubIntroductoryResp, error) {
	if cached, err := s.HubPageCacheMapper.GetIntroductory(ctx, req.HubId); err == nil {
		return cached, nil
	}

	h, err := s.HubMapper.FindOne(ctx, req.HubId)
	if err != nil {
		return nil, consts.ErrNotFound
	}

	resp := new(eduhub.GetHubIntroductoryResp)
	if err = copier.Copy(resp, h); err != nil {
		return nil, consts.ErrGetHub
	}
	for _, emails := range h.MembersEmail {
		resp.MemberCount += int64(len(emails))
	}

	if err := s.HubPageCacheMapper.SetIntroductory(ctx, req.HubId, resp); err != nil {
		log.CtxError(ctx, "缓存课堂简介失败: %v", err)
	}
	return resp, nil
}

// GetHubPage 分页时间线，命中缓存直接返回
func (s *HubService) GetHubPage(ctx context.Context, req *eduhub.GetHubPageReq) (*eduhub.GetHubPageResp, error) {
	pageNo := req.Page
	if pageNo < 1 {
		pageNo = 1
	}

	if cached, err := s.HubPageCacheMapper.GetPage(ctx, req.HubId, pageNo); err == nil {
		return &eduhub.GetHubPageResp{Items: cached, Total: int64(len(cached))}, nil
	}

	entries, err := s.HubMapper.FindFeedPage(ctx, req.HubId, pageNo, consts.PageSize)
	if err != nil {
		log.CtxError(ctx, "查询课堂时间线失败: %v", err)
		return nil, consts.ErrGetHub
	}

	items := make([]*eduhub.FeedItem, 0, len(entries))
	for _, e := range entries {
		item := &eduhub.FeedItem{
			Kind:        e.Kind,
			Uuid:        e.Uuid,
			Title:       e.Title,
			Description: e.Description,
			Topic:       e.Topic,
			TotalPoints: e.TotalPoints,
			CreatedAt:   e.CreatedAt.Unix(),
		}
		if !e.Due.IsZero() {
			item.Due = e.Due.Unix()
		}
		for _, id := range e.AssignmentIDs {
			item.AssignmentIds = append(item.AssignmentIds, id.Hex())
		}
		if e.Kind == hub.FeedKindQuiz {
			item.Uuid = e.QuizID.Hex()
		}
		if e.Kind == hub.FeedKindRecording {
			item.Uuid = e.RoomID
		}
		items = append(items, item)
	}

	if err := s.HubPageCacheMapper.SetPage(ctx, req.HubId, pageNo, items); err != nil {
		log.CtxError(ctx, "缓存课堂时间线失败: %v", err)
	}

	return &eduhub.GetHubPageResp{Items: items, Total: int64(len(items))}, nil
}

// SendMessage 发送课堂消息
func (s *HubService) SendMessage(ctx context.Context, req *eduhub.SendMessageReq) (*eduhub.Response, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	msg := &message.Message{
		HubID:   req.HubId,
		Name:    userMeta.GetName(),
		Email:   userMeta.GetEmail(),
		Content: req.Content,
	}
	if err := s.MessageMapper.Insert(ctx, msg); err != nil {
		log.CtxError(ctx, "发送消息失败: %v", err)
		return nil, consts.ErrSendMessage
	}
	return util.Succeed("发送成功")
}

// GetMessages 倒序分页拉取课堂消息
func (s *HubService) GetMessages(ctx context.Context, req *eduhub.GetMessagesReq) (*eduhub.GetMessagesResp, error) {
	skip, limit := page.ParsePageOpt(req.PaginationOptions)
	pageNo := skip/limit + 1

	msgs, total, err := s.MessageMapper.FindByHub(ctx, req.HubId, pageNo, limit)
	if err != nil {
		log.CtxError(ctx, "查询消息失败: %v", err)
		return nil, consts.ErrGetMessages
	}

	infos := make([]*eduhub.MessageInfo, 0, len(msgs))
	for _, m := range msgs {
		infos = append(infos, &eduhub.MessageInfo{
			Id:        m.ID.Hex(),
			Name:      m.Name,
			Email:     m.Email,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Unix(),
		})
	}
	return &eduhub.GetMessagesResp{Messages: infos, Total: total}, nil
}

// generateInviteCode 生成6位邀请码
func (s *HubService) generateInviteCode() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			code[i] = charset[int(time.Now().UnixNano())%len(charset)]
			continue
		}
		code[i] = charset[n.Int64()]
	}
	return string(code)
}
