package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档，按角色分桶记录加入的课堂
type User struct {
	ID         primitive.ObjectID              `bson:"_id,omitempty" json:"id"`
	Name       string                          `bson:"name" json:"name"`
	Email      string                          `bson:"email" json:"email"`
	Hubs       map[string][]primitive.ObjectID `bson:"hubs" json:"hubs"`
	CreateTime time.Time                       `bson:"create_time" json:"createTime"`
	UpdateTime time.Time                       `bson:"update_time" json:"updateTime"`
}
