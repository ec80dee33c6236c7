package service

import (
	"context"
	"errors"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/repository/user"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IUserService interface {
	SignIn(ctx context.Context, req *eduhub.SignInReq) (*eduhub.SignInResp, error)
	GetUserInfo(ctx context.Context, req *eduhub.GetUserInfoReq) (*eduhub.GetUserInfoResp, error)
}

type UserService struct {
	UserMapper      *user.MongoMapper
	UserCacheMapper *cache.UserCacheMapper
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

// SignIn 按邮箱登录，首次登录自动建档
func (s *UserService) SignIn(ctx context.Context, req *eduhub.SignInReq) (*eduhub.SignInResp, error) {
	u, err := s.UserMapper.FindOneByEmail(ctx, req.Email)
	switch {
	case err == nil:
	case errors.Is(err, consts.ErrNotFound):
		u = &user.User{
			Name:  req.Name,
			Email: req.Email,
			Hubs:  make(map[string][]primitive.ObjectID),
		}
		if err = s.UserMapper.Insert(ctx, u); err != nil {
			log.CtxError(ctx, "创建用户失败: %v", err)
			return nil, consts.ErrSignIn
		}
	default:
		log.CtxError(ctx, "查询用户失败: %v", err)
		return nil, consts.ErrSignIn
	}

	token, exp, err := adaptor.GenerateJwtToken(map[string]any{
		"userId": u.ID.Hex(),
		"email":  u.Email,
		"name":   u.Name,
	})
	if err != nil {
		log.CtxError(ctx, "生成token失败: %v", err)
		return nil, consts.ErrSignIn
	}

	// 缓存用户身份，失败不阻塞登录
	if err := s.UserCacheMapper.Set(ctx, u.Email, u.ID.Hex(), u.Name); err != nil {
		log.CtxError(ctx, "缓存用户信息失败: %v", err)
	}

	return &eduhub.SignInResp{
		Id:           u.ID.Hex(),
		AccessToken:  token,
		AccessExpire: exp,
		Name:         u.Name,
	}, nil
}

func (s *UserService) GetUserInfo(ctx context.Context, _ *eduhub.GetUserInfoReq) (*eduhub.GetUserInfoResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	if id, name, err := s.UserCacheMapper.Get(ctx, userMeta.GetEmail()); err == nil {
		return &eduhub.GetUserInfoResp{
			Id:    id,
			Name:  name,
			Email: userMeta.GetEmail(),
		}, nil
	}

	u, err := s.UserMapper.FindOne(ctx, userMeta.GetUserId())
	if err != nil {
		return nil, consts.ErrNotFound
	}

	return &eduhub.GetUserInfoResp{
		Id:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}, nil
}
