package embedding

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Embedding 附件文本的一个切片及其向量，写入后不再修改
type Embedding struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HubID        string             `bson:"hub_id" json:"hubId"`
	PostID       string             `bson:"post_id" json:"postId"`
	AttachmentID string             `bson:"attachment_id" json:"attachmentId"`
	BatchNo      int64              `bson:"batch_no" json:"batchNo"`
	TextContent  string             `bson:"text_content" json:"textContent"`
	Embeddings   []float64          `bson:"embeddings" json:"embeddings"`
	CreateTime   time.Time          `bson:"create_time" json:"createTime"`
}

// RecordingEmbedding 直播录播转写文本的切片向量
type RecordingEmbedding struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID      string             `bson:"room_id" json:"roomId"`
	BatchNo     int64              `bson:"batch_no" json:"batchNo"`
	TextContent string             `bson:"text_content" json:"textContent"`
	Embeddings  []float64          `bson:"embeddings" json:"embeddings"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
}
