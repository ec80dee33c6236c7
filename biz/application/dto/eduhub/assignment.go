package eduhub

// QuestionTypeSpec 某一类题型的数量与每题分值
type QuestionTypeSpec struct {
	Count  int64 `form:"count" json:"count" query:"count"`
	Points int64 `form:"points" json:"points" query:"points"`
}

type GenerateAssignmentReq struct {
	HubId             string                       `form:"hubId" json:"hubId,required" query:"hubId"`
	Title             string                       `form:"title" json:"title,required" query:"title"`
	Topics            []string                     `form:"topics" json:"topics" query:"topics"`
	SpecificTopics    string                       `form:"specificTopics" json:"specificTopics" query:"specificTopics"`
	InstructionsForAI string                       `form:"instructionsForAi" json:"instructionsForAi" query:"instructionsForAi"`
	TypesOfQuestions  map[string]*QuestionTypeSpec `form:"typesOfQuestions" json:"typesOfQuestions" query:"typesOfQuestions"`
	VariantCount      int64                        `form:"variantCount" json:"variantCount" query:"variantCount"`
}

type GenerateAssignmentResp struct {
	SessionId string `form:"sessionId" json:"sessionId" query:"sessionId"`
	Msg       string `form:"msg" json:"msg" query:"msg"`
}

type ModifyAssignmentReq struct {
	SessionId     string `form:"sessionId" json:"sessionId,required" query:"sessionId"`
	Difficulty    string `form:"difficulty" json:"difficulty,required" query:"difficulty"`
	ChangesPrompt string `form:"changesPrompt" json:"changesPrompt,required" query:"changesPrompt"`
}

type CreateAssignmentUsingAIReq struct {
	SessionId                string  `form:"sessionId" json:"sessionId,required" query:"sessionId"`
	HubId                    string  `form:"hubId" json:"hubId,required" query:"hubId"`
	Title                    string  `form:"title" json:"title,required" query:"title"`
	Instructions             string  `form:"instructions" json:"instructions" query:"instructions"`
	TotalPoints              int64   `form:"totalPoints" json:"totalPoints" query:"totalPoints"`
	QuestionPoints           []int64 `form:"questionPoints" json:"questionPoints" query:"questionPoints"`
	Due                      int64   `form:"due" json:"due" query:"due"`
	Topic                    string  `form:"topic" json:"topic" query:"topic"`
	AutomaticGradingEnabled  bool    `form:"automaticGradingEnabled" json:"automaticGradingEnabled" query:"automaticGradingEnabled"`
	AutomaticFeedbackEnabled bool    `form:"automaticFeedbackEnabled" json:"automaticFeedbackEnabled" query:"automaticFeedbackEnabled"`
	PlagiarismCheckerEnabled bool    `form:"plagiarismCheckerEnabled" json:"plagiarismCheckerEnabled" query:"plagiarismCheckerEnabled"`
}

type GetAssignmentReq struct {
	AssignmentId string `form:"assignmentId" json:"assignmentId,required" query:"assignmentId" path:"assignmentId"`
}

type GetAssignmentResp struct {
	Id          string `form:"id" json:"id" query:"id"`
	HubId       string `form:"hubId" json:"hubId" query:"hubId"`
	Title       string `form:"title" json:"title" query:"title"`
	Difficulty  string `form:"difficulty" json:"difficulty" query:"difficulty"`
	Question    string `form:"question" json:"question" query:"question"`
	TotalPoints int64  `form:"totalPoints" json:"totalPoints" query:"totalPoints"`
	Topic       string `form:"topic" json:"topic" query:"topic"`
	Due         int64  `form:"due" json:"due" query:"due"`
}

type SubmitAssignmentReq struct {
	AssignmentId string `form:"assignmentId" json:"assignmentId,required" query:"assignmentId" path:"assignmentId"`
	Response     string `form:"response" json:"response,required" query:"response"`
}

type AssessAssignmentReq struct {
	AssignmentId string  `form:"assignmentId" json:"assignmentId,required" query:"assignmentId" path:"assignmentId"`
	StudentEmail string  `form:"studentEmail" json:"studentEmail,required" query:"studentEmail"`
	Marks        float64 `form:"marks" json:"marks" query:"marks"`
	Feedback     string  `form:"feedback" json:"feedback" query:"feedback"`
}
