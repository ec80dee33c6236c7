package eduhub

type CreateRecordingReq struct {
	HubId       string `form:"hubId" json:"hubId,required" query:"hubId"`
	Title       string `form:"title" json:"title,required" query:"title"`
	Description string `form:"description" json:"description" query:"description"`
	Topic       string `form:"topic" json:"topic" query:"topic"`
	RoomId      string `form:"roomId" json:"roomId,required" query:"roomId"`
}

// RecordingWebhookReq 转写服务回调
type RecordingWebhookReq struct {
	Type string                `form:"type" json:"type,required" query:"type"`
	Data *RecordingWebhookData `form:"data" json:"data" query:"data"`
}

type RecordingWebhookData struct {
	RoomId                    string `form:"roomId" json:"room_id" query:"roomId"`
	TranscriptTxtPresignedUrl string `form:"transcriptTxtPresignedUrl" json:"transcript_txt_presigned_url" query:"transcriptTxtPresignedUrl"`
}
