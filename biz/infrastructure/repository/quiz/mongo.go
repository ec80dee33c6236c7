package quiz

import (
	"context"
	"time"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixQuizCacheKey = "cache:quiz"
	QuizCollectionName = "quizzes"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewQuizMongoMapper config: %v, collection: %s", config, QuizCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, QuizCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, quiz *Quiz) error {
	if quiz.ID.IsZero() {
		quiz.ID = primitive.NewObjectID()
		quiz.CreateTime = time.Now()
		quiz.UpdateTime = quiz.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, quiz)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var q Quiz
	err = m.conn.FindOneNoCache(ctx, &q, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &q, nil
}

func (m *MongoMapper) FindByHub(ctx context.Context, hubId string, page, pageSize int64) ([]*Quiz, int64, error) {
	filter := bson.M{consts.HubID: hubId}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	var quizzes []*Quiz
	err = m.conn.Find(ctx, &quizzes, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{"create_time": -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return quizzes, total, nil
}
