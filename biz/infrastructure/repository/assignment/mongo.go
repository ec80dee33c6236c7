package assignment

import (
	"context"
	"fmt"
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
	prefixAssignmentCacheKey = "cache:assignment"
	AssignmentCollectionName = "assignments"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewAssignmentMongoMapper config: %v, collection: %s", config, AssignmentCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, AssignmentCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, assignment *Assignment) error {
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
		assignment.CreateTime = time.Now()
		assignment.UpdateTime = assignment.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, assignment)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, assignment *Assignment) error {
	assignment.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, assignment.ID, bson.M{"$set": assignment})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Assignment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var a Assignment
	err = m.conn.FindOneNoCache(ctx, &a, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &a, nil
}

func (m *MongoMapper) FindMany(ctx context.Context, ids []primitive.ObjectID) ([]*Assignment, error) {
	var assignments []*Assignment
	err := m.conn.Find(ctx, &assignments, bson.M{
		consts.ID: bson.M{"$in": ids},
	}, &options.FindOptions{
		Sort: bson.M{"create_time": 1},
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (m *MongoMapper) FindByHub(ctx context.Context, hubId string, page, pageSize int64) ([]*Assignment, int64, error) {
	filter := bson.M{consts.HubID: hubId}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * pageSize
	var assignments []*Assignment
	err = m.conn.Find(ctx, &assignments, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{"create_time": -1},
	})
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// SetResponse 记录某个学生的作答，重复提交覆盖旧答案
func (m *MongoMapper) SetResponse(ctx context.Context, id string, email, response string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$set": bson.M{
			fmt.Sprintf("responses.%s", email): response,
			"update_time":                      time.Now(),
		},
	})
	return err
}

// SetAssessment 写入某个学生的分数与评语
func (m *MongoMapper) SetAssessment(ctx context.Context, id string, email string, mark float64, feedback string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$set": bson.M{
			fmt.Sprintf("marks.%s", email):     mark,
			fmt.Sprintf("feedbacks.%s", email): feedback,
			"update_time":                      time.Now(),
		},
	})
	return err
}

// AddPlagiarisedEmail 标记疑似抄袭的提交人
func (m *MongoMapper) AddPlagiarisedEmail(ctx context.Context, id string, email string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$addToSet": bson.M{
			"plagiarised_emails": email,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}
