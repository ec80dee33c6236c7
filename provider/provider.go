package provider

import (
	"edu-hub/biz/application/service"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/biz/infrastructure/redis"
	"edu-hub/biz/infrastructure/repository/assignment"
	"edu-hub/biz/infrastructure/repository/embedding"
	"edu-hub/biz/infrastructure/repository/hub"
	"edu-hub/biz/infrastructure/repository/message"
	"edu-hub/biz/infrastructure/repository/quiz"
	"edu-hub/biz/infrastructure/repository/user"
	"edu-hub/biz/infrastructure/util"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config            *config.Config
	UserService       *service.UserService
	HubService        *service.HubService
	PostService       *service.PostService
	QuizService       *service.QuizService
	RecordingService  *service.RecordingService
	AssignmentService *service.AssignmentService
	GenerationService *service.GenerationService
	ChatService       *service.ChatService
	IngestService     *service.IngestService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.UserServiceSet,
	service.HubServiceSet,
	service.PostServiceSet,
	service.QuizServiceSet,
	service.RecordingServiceSet,
	service.AssignmentServiceSet,
	service.GenerationServiceSet,
	service.ChatServiceSet,
	service.IngestServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	redis.GetPubSubClient,
	util.NewLLMClient,
	util.NewHttpClient,
	mq.NewDispatcher,
	wire.Bind(new(mq.Dispatcher), new(*mq.AsynqDispatcher)),
	user.NewMongoMapper,
	hub.NewMongoMapper,
	wire.Bind(new(service.HubStore), new(*hub.MongoMapper)),
	message.NewMongoMapper,
	quiz.NewMongoMapper,
	assignment.NewMongoMapper,
	wire.Bind(new(service.AssignmentStore), new(*assignment.MongoMapper)),
	embedding.NewMongoMapper,
	embedding.NewRecordingMongoMapper,
	cache.NewUserCacheMapper,
	cache.NewHubPageCacheMapper,
	cache.NewDraftCacheMapper,
	cache.NewCounterCacheMapper,
	cache.NewConversationCacheMapper,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
