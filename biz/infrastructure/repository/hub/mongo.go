package hub

import (
	"context"
	"errors"
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
	prefixHubCacheKey = "cache:hub"
	HubCollectionName = "hubs"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewHubMongoMapper config: %v, collection: %s", config, HubCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, HubCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, hub *Hub) error {
	if hub.ID.IsZero() {
		hub.ID = primitive.NewObjectID()
		hub.CreateTime = time.Now()
		hub.UpdateTime = hub.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, hub)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, hub *Hub) error {
	hub.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, hub.ID, bson.M{"$set": hub})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Hub, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var h Hub
	err = m.conn.FindOneNoCache(ctx, &h, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &h, nil
}

func (m *MongoMapper) FindOneByInviteCode(ctx context.Context, inviteCode string) (*Hub, error) {
	var h Hub
	err := m.conn.FindOneNoCache(ctx, &h, bson.M{
		consts.InviteCode: inviteCode,
	})
	switch {
	case err == nil:
		return &h, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindMany(ctx context.Context, ids []string) ([]*Hub, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		oids = append(oids, oid)
	}
	var hubs []*Hub
	err := m.conn.Find(ctx, &hubs, bson.M{
		consts.ID: bson.M{"$in": oids},
	}, &options.FindOptions{
		Sort: bson.M{"create_time": -1},
	})
	if err != nil {
		return nil, err
	}
	return hubs, nil
}

// AddMember 按角色把成员邮箱加入课堂，重复加入不产生副本
func (m *MongoMapper) AddMember(ctx context.Context, id string, role, email string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$addToSet": bson.M{
			fmt.Sprintf("members_email.%s", role): email,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

func (m *MongoMapper) PushPost(ctx context.Context, id string, post *Post) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$push": bson.M{
			"posts": post,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

func (m *MongoMapper) PushRecording(ctx context.Context, id string, recording *Recording) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$push": bson.M{
			"recordings": recording,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

func (m *MongoMapper) PushQuizSummary(ctx context.Context, id string, summary *QuizSummary) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$push": bson.M{
			"quizzes": summary,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

// PushAssignmentSummary 追加作业摘要，主题非空时一并收进课堂主题集合
func (m *MongoMapper) PushAssignmentSummary(ctx context.Context, id string, summary *AssignmentSummary, topic string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	update := bson.M{
		"$push": bson.M{
			"assignments": summary,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	}
	if topic != "" {
		update["$addToSet"] = bson.M{
			"topics": topic,
		}
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, update)
	return err
}

// AppendStudentMark 把一次评分追加进学生的历史成绩序列
func (m *MongoMapper) AppendStudentMark(ctx context.Context, id string, email string, mark float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$push": bson.M{
			fmt.Sprintf("students_assignment_marks.%s", email): mark,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

// FindFeedPage 把帖子、录播、测验、作业摘要展开成统一时间线，按创建时间倒序分页
func (m *MongoMapper) FindFeedPage(ctx context.Context, id string, page, pageSize int64) ([]*FeedEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	if page < 1 {
		page = 1
	}

	tag := func(field, kind string) bson.M {
		return bson.M{
			"$map": bson.M{
				"input": bson.M{"$ifNull": []interface{}{"$" + field, bson.A{}}},
				"as":    "it",
				"in":    bson.M{"$mergeObjects": bson.A{"$$it", bson.M{"kind": kind}}},
			},
		}
	}

	pipeline := []bson.M{
		{"$match": bson.M{consts.ID: oid}},
		{"$project": bson.M{
			"items": bson.M{"$concatArrays": bson.A{
				tag("posts", FeedKindPost),
				tag("recordings", FeedKindRecording),
				tag("quizzes", FeedKindQuiz),
				tag("assignments", FeedKindAssignment),
			}},
		}},
		{"$unwind": "$items"},
		{"$replaceRoot": bson.M{"newRoot": "$items"}},
		{"$sort": bson.M{consts.CreatedAt: -1}},
		{"$skip": (page - 1) * pageSize},
		{"$limit": pageSize},
	}

	var entries []*FeedEntry
	if err := m.conn.Aggregate(ctx, &entries, pipeline); err != nil {
		return nil, err
	}
	return entries, nil
}
