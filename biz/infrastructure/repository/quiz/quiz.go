package quiz

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Quiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HubID       string             `bson:"hub_id" json:"hubId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    int64              `bson:"duration" json:"duration"`
	TotalPoints int64              `bson:"total_points" json:"totalPoints"`
	Topic       string             `bson:"topic" json:"topic"`
	Due         time.Time          `bson:"due" json:"due"`
	Questions   []*Question        `bson:"questions" json:"questions"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

type Question struct {
	Type    string   `bson:"type" json:"type"`
	Text    string   `bson:"text" json:"text"`
	Marks   float64  `bson:"marks" json:"marks"`
	Options []string `bson:"options,omitempty" json:"options"`
	Answer  []string `bson:"answer,omitempty" json:"answer"`
}
