package eduhub

// AttachmentRef 已上传到对象存储的附件引用
// 上传本身由前端直传完成，这里只登记URL并触发摄取
type AttachmentRef struct {
	AttachmentId string `form:"attachmentId" json:"attachmentId" query:"attachmentId"`
	Url          string `form:"url" json:"url,required" query:"url"`
	Filename     string `form:"filename" json:"filename,required" query:"filename"`
}

type CreatePostReq struct {
	HubId       string           `form:"hubId" json:"hubId,required" query:"hubId" path:"hubId"`
	Type        string           `form:"type" json:"type,required" query:"type" vd:"$ == 'announcement' || $ == 'material'"`
	Title       string           `form:"title" json:"title,required" query:"title"`
	Description string           `form:"description" json:"description" query:"description"`
	Topic       string           `form:"topic" json:"topic" query:"topic"`
	Attachments []*AttachmentRef `form:"attachments" json:"attachments" query:"attachments"`
	PollOptions []string         `form:"pollOptions" json:"pollOptions" query:"pollOptions"`
}

type CreatePostResp struct {
	PostId string `form:"postId" json:"postId" query:"postId"`
	Msg    string `form:"msg" json:"msg" query:"msg"`
}

type ChatWithMaterialReq struct {
	AttachmentId string `form:"attachmentId" json:"attachmentId,required" query:"attachmentId" path:"attachmentId"`
	Query        string `form:"query" json:"query,required" query:"query"`
}

type ChatWithRecordingReq struct {
	RoomId string `form:"roomId" json:"roomId,required" query:"roomId" path:"roomId"`
	Query  string `form:"query" json:"query,required" query:"query"`
}

type ChatResp struct {
	Answer string `form:"answer" json:"answer" query:"answer"`
}
