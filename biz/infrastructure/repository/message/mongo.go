package message

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
	prefixMessageCacheKey = "cache:message"
	MessageCollectionName = "messages"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewMessageMongoMapper config: %v, collection: %s", config, MessageCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, MessageCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, message *Message) error {
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
		message.CreatedAt = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, message)
	return err
}

func (m *MongoMapper) FindByHub(ctx context.Context, hubId string, page, pageSize int64) ([]*Message, int64, error) {
	filter := bson.M{consts.HubID: hubId}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	var messages []*Message
	err = m.conn.Find(ctx, &messages, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreatedAt: -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
