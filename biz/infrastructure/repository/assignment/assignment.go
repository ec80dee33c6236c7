package assignment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment 一份难度变体对应一条文档，同次生成的变体通过课堂摘要关联
type Assignment struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HubID               string             `bson:"hub_id" json:"hubId"`
	Title               string             `bson:"title" json:"title"`
	Difficulty          string             `bson:"difficulty" json:"difficulty"`
	Instructions        string             `bson:"instructions" json:"instructions"`
	TotalPoints         int64              `bson:"total_points" json:"totalPoints"`
	Question            string             `bson:"question" json:"question"`
	StructuredQuestions string             `bson:"structured_questions,omitempty" json:"structuredQuestions"`
	Answer              string             `bson:"answer" json:"answer"`
	QuestionPoints      []float64          `bson:"question_points" json:"questionPoints"`
	Responses           map[string]string  `bson:"responses" json:"responses"`
	Marks               map[string]float64 `bson:"marks" json:"marks"`
	Feedbacks           map[string]string  `bson:"feedbacks" json:"feedbacks"`
	Due                 time.Time          `bson:"due" json:"due"`
	Topic               string             `bson:"topic" json:"topic"`
	AutomaticGrading    bool               `bson:"automatic_grading" json:"automaticGrading"`
	AutomaticFeedback   bool               `bson:"automatic_feedback" json:"automaticFeedback"`
	PlagiarismDetection bool               `bson:"plagiarism_detection" json:"plagiarismDetection"`
	PlagiarisedEmails   []string           `bson:"plagiarised_emails" json:"plagiarisedEmails"`
	CreateTime          time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime          time.Time          `bson:"update_time" json:"updateTime"`
}
