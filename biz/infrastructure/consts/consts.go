package consts

var PageSize int64 = 10

// 数据库相关
const (
	ID           = "_id"
	HubID        = "hub_id"
	RoomID       = "room_id"
	AttachmentID = "attachment_id"
	PostID       = "post_id"
	BatchNo      = "batch_no"
	Email        = "email"
	InviteCode   = "invite_code"
	CreatedAt    = "created_at"
	NotEqual     = "$ne"
)

// http
const (
	Post            = "POST"
	Get             = "GET"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
)

// 难度等级，生成顺序固定：easy -> medium -> hard
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// AllDifficulties 生成三套变体时的固定顺序
var AllDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// 成员角色
const (
	RoleTeacher           = "teacher"
	RoleTeachingAssistant = "teaching_assistant"
	RoleStudent           = "student"
)

// 帖子类型
const (
	PostTypeAnnouncement = "announcement"
	PostTypeMaterial     = "material"
)

// 题目类型
const (
	QuestionSingleCorrect = "single_correct"
	QuestionMultiCorrect  = "multi_correct"
	QuestionDescriptive   = "descriptive"
)

// 检索与会话窗口
const (
	ChunkSize               = 1000  // 文本切片长度
	ConversationWindowChars = 10000 // 会话窗口保留的末尾字符数
	PromptMaxChars          = 25000 // 拼装后提示词的硬截断长度
	ConversationExpire      = 3600  // 会话窗口TTL，1小时
	DraftExpire             = 86400 // 暂存草稿TTL，过期即会话丢失
	HubPageExpire           = 600   // 分页缓存TTL
)

// 附件MIME类型
const (
	MimePDF  = "application/pdf"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)
