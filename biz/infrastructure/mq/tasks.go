package mq

import (
	"encoding/json"
	"fmt"
	"time"

	"edu-hub/biz/application/dto/eduhub"

	"github.com/hibiken/asynq"
)

// 队列任务类型
const (
	TypeAssignmentGenerate    = "assignment:generate"
	TypeAssignmentModify      = "assignment:modify"
	TypeAssignmentMaterialize = "assignment:materialize"
	TypeAssignmentGrade       = "assignment:grade"
	TypePostIngest            = "post:ingest"
	TypeRecordingTranscript   = "recording:transcript"
)

// 重试与时限，生成类任务给3分钟硬上限、2分钟软上限
const (
	MaxRetry           = 3
	SoftTimeLimit      = 120 * time.Second
	HardTimeLimit      = 180 * time.Second
	IngestSoftLimit    = 60 * time.Second
	IngestHardLimit    = 120 * time.Second
	RetryIntervalStart = 2 * time.Second
	RetryIntervalStep  = 2 * time.Second
	RetryIntervalMax   = 10 * time.Second
)

type GenerateAssignmentPayload struct {
	SessionId string                        `json:"session_id"`
	Req       *eduhub.GenerateAssignmentReq `json:"req"`
}

type ModifyAssignmentPayload struct {
	SessionId     string `json:"session_id"`
	Difficulty    string `json:"difficulty"`
	ChangesPrompt string `json:"changes_prompt"`
}

type MaterializeAssignmentPayload struct {
	SessionId string                             `json:"session_id"`
	Req       *eduhub.CreateAssignmentUsingAIReq `json:"req"`
}

type GradeAssignmentPayload struct {
	AssignmentId string `json:"assignment_id"`
}

type PostIngestPayload struct {
	HubId        string `json:"hub_id"`
	PostId       string `json:"post_id"`
	AttachmentId string `json:"attachment_id"`
	Url          string `json:"url"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
}

type RecordingTranscriptPayload struct {
	RoomId        string `json:"room_id"`
	TranscriptUrl string `json:"transcript_url"`
}

// NewTask 序列化载荷并附带统一的重试与时限选项
func NewTask(typename string, payload interface{}, opts ...asynq.Option) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal task payload failed: %w", err)
	}
	hard := HardTimeLimit
	if typename == TypePostIngest || typename == TypeRecordingTranscript {
		hard = IngestHardLimit
	}
	base := []asynq.Option{
		asynq.MaxRetry(MaxRetry),
		asynq.Timeout(hard),
	}
	return asynq.NewTask(typename, data, append(base, opts...)...), nil
}

// RetryDelay 第n次重试前的等待：从2秒起每次加2秒，封顶10秒
func RetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	d := RetryIntervalStart + time.Duration(n)*RetryIntervalStep
	if d > RetryIntervalMax {
		return RetryIntervalMax
	}
	return d
}
