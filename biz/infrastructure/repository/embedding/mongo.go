package embedding

import (
	"context"
	"time"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	prefixEmbeddingCacheKey           = "cache:embedding"
	EmbeddingCollectionName           = "embedding"
	RecordingEmbeddingCollectionName  = "recording_embedding"
	embeddingVectorIndexName          = "embeddedVectorIndex"
	recordingEmbeddingVectorIndexName = "recordingEmbeddedVectorIndex"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewEmbeddingMongoMapper config: %v, collection: %s", config, EmbeddingCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, EmbeddingCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

// InsertMany 批量写入附件切片向量
func (m *MongoMapper) InsertMany(ctx context.Context, embeddings []*Embedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(embeddings))
	now := time.Now()
	for _, e := range embeddings {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
			e.CreateTime = now
		}
		docs = append(docs, e)
	}
	_, err := m.conn.InsertMany(ctx, docs)
	return err
}

// SearchByAttachment 在附件范围内做向量检索，按相似度降序返回切片文本
func (m *MongoMapper) SearchByAttachment(ctx context.Context, attachmentId string, queryVector []float64, limit int64) ([]*Embedding, error) {
	pipeline := []bson.M{
		{"$vectorSearch": bson.M{
			"index":         embeddingVectorIndexName,
			"path":          "embeddings",
			"queryVector":   queryVector,
			"filter":        bson.M{consts.AttachmentID: attachmentId},
			"numCandidates": limit,
			"limit":         limit,
		}},
		{"$project": bson.M{
			consts.ID:      0,
			"text_content": 1,
			consts.BatchNo: 1,
		}},
	}

	var results []*Embedding
	if err := m.conn.Aggregate(ctx, &results, pipeline); err != nil {
		return nil, err
	}
	return results, nil
}

type RecordingMongoMapper struct {
	conn *monc.Model
}

func NewRecordingMongoMapper(config *config.Config) *RecordingMongoMapper {
	log.Info("NewRecordingEmbeddingMongoMapper config: %v, collection: %s", config, RecordingEmbeddingCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, RecordingEmbeddingCollectionName, config.Cache)
	return &RecordingMongoMapper{
		conn: conn,
	}
}

// InsertMany 批量写入转写切片向量
func (m *RecordingMongoMapper) InsertMany(ctx context.Context, embeddings []*RecordingEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(embeddings))
	now := time.Now()
	for _, e := range embeddings {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
			e.CreateTime = now
		}
		docs = append(docs, e)
	}
	_, err := m.conn.InsertMany(ctx, docs)
	return err
}

// SearchByRoom 在房间范围内做向量检索
func (m *RecordingMongoMapper) SearchByRoom(ctx context.Context, roomId string, queryVector []float64, limit int64) ([]*RecordingEmbedding, error) {
	pipeline := []bson.M{
		{"$vectorSearch": bson.M{
			"index":         recordingEmbeddingVectorIndexName,
			"path":          "embeddings",
			"queryVector":   queryVector,
			"filter":        bson.M{consts.RoomID: roomId},
			"numCandidates": limit,
			"limit":         limit,
		}},
		{"$project": bson.M{
			consts.ID:      0,
			"text_content": 1,
			consts.BatchNo: 1,
		}},
	}

	var results []*RecordingEmbedding
	if err := m.conn.Aggregate(ctx, &results, pipeline); err != nil {
		return nil, err
	}
	return results, nil
}
