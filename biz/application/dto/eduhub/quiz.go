package eduhub

type QuizQuestion struct {
	Type     string   `form:"type" json:"type,required" query:"type"`
	ImageUrl string   `form:"imageUrl" json:"imageUrl" query:"imageUrl"`
	Text     string   `form:"text" json:"text,required" query:"text"`
	Marks    int64    `form:"marks" json:"marks,required" query:"marks"`
	Options  []string `form:"options" json:"options" query:"options"`
	Answer   string   `form:"answer" json:"answer,required" query:"answer"`
}

type CreateQuizReq struct {
	HubId       string          `form:"hubId" json:"hubId,required" query:"hubId"`
	Title       string          `form:"title" json:"title,required" query:"title"`
	Description string          `form:"description" json:"description" query:"description"`
	Duration    int64           `form:"duration" json:"duration" query:"duration"`
	TotalPoints int64           `form:"totalPoints" json:"totalPoints" query:"totalPoints"`
	Topic       string          `form:"topic" json:"topic" query:"topic"`
	Due         int64           `form:"due" json:"due" query:"due"`
	Questions   []*QuizQuestion `form:"questions" json:"questions" query:"questions"`
}

type CreateQuizResp struct {
	QuizId string `form:"quizId" json:"quizId" query:"quizId"`
}

type GetQuizReq struct {
	QuizId string `form:"quizId" json:"quizId,required" query:"quizId" path:"quizId"`
}

type GetQuizResp struct {
	Id          string          `form:"id" json:"id" query:"id"`
	HubId       string          `form:"hubId" json:"hubId" query:"hubId"`
	Title       string          `form:"title" json:"title" query:"title"`
	Description string          `form:"description" json:"description" query:"description"`
	Duration    int64           `form:"duration" json:"duration" query:"duration"`
	TotalPoints int64           `form:"totalPoints" json:"totalPoints" query:"totalPoints"`
	Topic       string          `form:"topic" json:"topic" query:"topic"`
	Due         int64           `form:"due" json:"due" query:"due"`
	Questions   []*QuizQuestion `form:"questions" json:"questions" query:"questions"`
}
