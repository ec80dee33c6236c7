package hub

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hub struct {
	ID                      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                    string               `bson:"name" json:"name"`
	Section                 string               `bson:"section" json:"section"`
	Description             string               `bson:"description" json:"description"`
	ThemeColor              string               `bson:"theme_color" json:"themeColor"`
	PhotoUrl                string               `bson:"photo_url" json:"photoUrl"`
	Topics                  []string             `bson:"topics" json:"topics"`
	CreatorID               string               `bson:"creator_id" json:"creatorId"`
	MembersEmail            map[string][]string  `bson:"members_email" json:"membersEmail"`
	InviteCode              string               `bson:"invite_code" json:"inviteCode"`
	AuthOption              string               `bson:"auth_option" json:"authOption"`
	Posts                   []*Post              `bson:"posts" json:"posts"`
	Recordings              []*Recording         `bson:"recordings" json:"recordings"`
	Quizzes                 []*QuizSummary       `bson:"quizzes" json:"quizzes"`
	Assignments             []*AssignmentSummary `bson:"assignments" json:"assignments"`
	StudentsAssignmentMarks map[string][]float64 `bson:"students_assignment_marks" json:"studentsAssignmentMarks"`
	CreateTime              time.Time            `bson:"create_time" json:"createTime"`
	UpdateTime              time.Time            `bson:"update_time" json:"updateTime"`
}

type Attachment struct {
	AttachmentID string `bson:"attachment_id" json:"attachmentId"`
	Url          string `bson:"url" json:"url"`
	Filename     string `bson:"filename" json:"filename"`
}

// Post 嵌入在课堂文档里的帖子，附件内容另行切片入向量库
type Post struct {
	Uuid        string        `bson:"uuid" json:"uuid"`
	Type        string        `bson:"type" json:"type"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Topic       string        `bson:"topic,omitempty" json:"topic"`
	PollOptions []string      `bson:"poll_options,omitempty" json:"pollOptions"`
	Attachments []*Attachment `bson:"attachments" json:"attachments"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
}

type Recording struct {
	RoomID      string    `bson:"room_id" json:"roomId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

type QuizSummary struct {
	QuizID      primitive.ObjectID `bson:"quiz_id" json:"quizId"`
	Title       string             `bson:"title" json:"title"`
	TotalPoints int64              `bson:"total_points" json:"totalPoints"`
	Topic       string             `bson:"topic" json:"topic"`
	Due         time.Time          `bson:"due" json:"due"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// AssignmentSummary 一次落库产出的全部难度变体共用一条摘要，id按生成顺序排列
type AssignmentSummary struct {
	Uuid                     string               `bson:"uuid" json:"uuid"`
	AssignmentIDs            []primitive.ObjectID `bson:"assignment_ids" json:"assignmentIds"`
	Title                    string               `bson:"title" json:"title"`
	TotalPoints              int64                `bson:"total_points" json:"totalPoints"`
	Topic                    string               `bson:"topic" json:"topic"`
	PredictedDifficultyLevel []string             `bson:"predicted_difficulty_level" json:"predictedDifficultyLevel"`
	Due                      time.Time            `bson:"due" json:"due"`
	CreatedAt                time.Time            `bson:"created_at" json:"createdAt"`
}

// FeedEntry 聚合后的时间线条目，kind区分来源数组
type FeedEntry struct {
	Kind          string               `bson:"kind" json:"kind"`
	Uuid          string               `bson:"uuid,omitempty" json:"uuid"`
	RoomID        string               `bson:"room_id,omitempty" json:"roomId"`
	QuizID        primitive.ObjectID   `bson:"quiz_id,omitempty" json:"quizId"`
	AssignmentIDs []primitive.ObjectID `bson:"assignment_ids,omitempty" json:"assignmentIds"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description,omitempty" json:"description"`
	Topic         string               `bson:"topic,omitempty" json:"topic"`
	TotalPoints   int64                `bson:"total_points,omitempty" json:"totalPoints"`
	Attachments   []*Attachment        `bson:"attachments,omitempty" json:"attachments"`
	Due           time.Time            `bson:"due,omitempty" json:"due"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
}

const (
	FeedKindPost       = "post"
	FeedKindRecording  = "recording"
	FeedKindQuiz       = "quiz"
	FeedKindAssignment = "assignment"
)
