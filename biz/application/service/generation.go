package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/lock"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/biz/infrastructure/repository/assignment"
	"edu-hub/biz/infrastructure/repository/hub"
	"edu-hub/biz/infrastructure/util"
	"edu-hub/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
)

const generateSystemPrompt = `Generate a Markdown-formatted assignment based on the provided variables.
The assignment should have a clear title, cover the specified topics,
and include a mix of question types with varying point values.

Follow the teacher's instructions and give special attention
to the specific topics.

Ensure the assignment is at the specified difficulty level
and format any mathematical equations using LaTeX in Markdown.

Create a comprehensive and challenging assignment that
assesses the student's understanding of the topics.`

const modifySystemPrompt = `Modify the existing assignment to incorporate the user's requested changes.

Revise the assignment to reflect the desired modifications while maintaining coherence and clarity.

Maintain the whole assignment format and difficulty as well as before.
Just make changes in the questions as per user's instructions.`

const answerSystemPrompt = `This system is designed to assist with answering assignment questions.
The assignment questions are formatted in markdown, latex, and mermaid (for diagrams).
The system should provide clear and concise answers to each question.

For single correct choice type questions, provide the correct option with the answer.
For multiple correct choice type questions, provide all correct options with answers.
For numerical type questions, provide the correct answer without explanation.
For descriptive type questions, provide a detailed answer.`

const structureSystemPrompt = `Convert the given Markdown assignment into a JSON array of question objects.
Each object must have the fields: "number", "type", "text" and "points".
Respond with the JSON wrapped between the literal markers <<<JSON>>> and <<<END>>> and nothing else.`

const gradeSystemPrompt = `You are grading a student's submission against an assignment and its answer key.
Award marks out of the assignment's total points and write short constructive feedback.
Also judge whether the submission looks copied verbatim from the answer key or from an external source.
Respond with a JSON object {"marks": <number>, "feedback": "<text>", "plagiarised": <bool>} wrapped between
the literal markers <<<JSON>>> and <<<END>>> and nothing else.`

const (
	jsonStartMarker = "<<<JSON>>>"
	jsonEndMarker   = "<<<END>>>"
)

type IGenerationService interface {
	Generate(ctx context.Context, payload *mq.GenerateAssignmentPayload) error
	Modify(ctx context.Context, payload *mq.ModifyAssignmentPayload) error
	Materialize(ctx context.Context, payload *mq.MaterializeAssignmentPayload) error
	GradeDue(ctx context.Context, payload *mq.GradeAssignmentPayload) error
}

// AssignmentStore 生成流水线需要的作业存储能力
type AssignmentStore interface {
	Insert(ctx context.Context, a *assignment.Assignment) error
	FindOne(ctx context.Context, id string) (*assignment.Assignment, error)
	SetAssessment(ctx context.Context, id string, email string, mark float64, feedback string) error
	AddPlagiarisedEmail(ctx context.Context, id string, email string) error
}

// HubStore 生成流水线需要的课堂存储能力
type HubStore interface {
	FindOne(ctx context.Context, id string) (*hub.Hub, error)
	PushAssignmentSummary(ctx context.Context, id string, summary *hub.AssignmentSummary, topic string) error
	AppendStudentMark(ctx context.Context, id string, email string, mark float64) error
}

// GenerationService 生成流水线的执行侧，跑在队列worker里
type GenerationService struct {
	LLM                util.LLMClient
	DraftCacheMapper   *cache.DraftCacheMapper
	AssignmentMapper   AssignmentStore
	HubMapper          HubStore
	HubPageCacheMapper *cache.HubPageCacheMapper
	PubSub             *goredis.Client
	Dispatcher         mq.Dispatcher
}

var GenerationServiceSet = wire.NewSet(
	wire.Struct(new(GenerationService), "*"),
	wire.Bind(new(IGenerationService), new(*GenerationService)),
)

// Generate 按档位顺序逐个生成草稿，整张map一次写入再广播
// 同一会话加互斥锁，队列重复投递时直接让出
func (s *GenerationService) Generate(ctx context.Context, payload *mq.GenerateAssignmentPayload) error {
	mutex := lock.NewMutex(ctx, "generate:"+payload.SessionId, 200, 0)
	if err := mutex.Lock(); err != nil {
		log.CtxInfo(ctx, "生成会话 %s 已有worker处理，跳过", payload.SessionId)
		return nil
	}
	defer func() {
		if err := mutex.Unlock(); err != nil || mutex.Expired() {
			log.CtxError(ctx, "unlock error: %v, lock expired: %v", err, mutex.Expired())
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, mq.SoftTimeLimit)
	defer cancel()

	req := payload.Req
	tiers := consts.AllDifficulties
	if req.VariantCount == 1 {
		tiers = []string{consts.DifficultyMedium}
	}

	drafts := make(map[string]string, len(tiers))
	for _, tier := range tiers {
		userPrompt := buildGeneratePrompt(req, tier)
		text, err := s.LLM.ChatCompletion(cctx, generateSystemPrompt, userPrompt)
		if err != nil {
			return fmt.Errorf("生成%s档草稿失败: %w", tier, err)
		}
		drafts[tier] = text
	}

	if len(drafts) == 0 {
		log.CtxInfo(ctx, "生成会话 %s 无任何草稿，跳过写缓存", payload.SessionId)
		return nil
	}

	return s.stageAndPublish(ctx, payload.SessionId, drafts)
}

// Modify 重写某个难度档的草稿，其余档位原样保留
func (s *GenerationService) Modify(ctx context.Context, payload *mq.ModifyAssignmentPayload) error {
	drafts, err := s.DraftCacheMapper.Get(ctx, payload.SessionId)
	if err != nil {
		return consts.ErrGenerationNotFound
	}
	draft, ok := drafts[payload.Difficulty]
	if !ok {
		return consts.ErrGenerationNotFound
	}

	cctx, cancel := context.WithTimeout(ctx, mq.SoftTimeLimit)
	defer cancel()

	userPrompt := fmt.Sprintf(`Revise the following assignment according to my instructions:

%s

I want to make the following changes: %s.

Please modify the assignment to incorporate these changes and provide the revised version while
maintaining the overall format and %s assignment difficulty level.`,
		draft, payload.ChangesPrompt, payload.Difficulty)

	changed, err := s.LLM.ChatCompletion(cctx, modifySystemPrompt, userPrompt)
	if err != nil {
		return fmt.Errorf("修改草稿失败: %w", err)
	}

	drafts[payload.Difficulty] = changed
	return s.stageAndPublish(ctx, payload.SessionId, drafts)
}

// Materialize 把暂存草稿逐档落成作业文档，挂一条共享摘要到课堂
func (s *GenerationService) Materialize(ctx context.Context, payload *mq.MaterializeAssignmentPayload) error {
	drafts, err := s.DraftCacheMapper.Get(ctx, payload.SessionId)
	if err != nil {
		return consts.ErrGenerationNotFound
	}

	req := payload.Req
	h, err := s.HubMapper.FindOne(ctx, req.HubId)
	if err != nil {
		return fmt.Errorf("查询课堂失败: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, mq.SoftTimeLimit)
	defer cancel()

	questionPoints := make([]float64, 0, len(req.QuestionPoints))
	for _, p := range req.QuestionPoints {
		questionPoints = append(questionPoints, cast.ToFloat64(p))
	}
	due := time.Unix(req.Due, 0)

	ids := make([]string, 0, len(drafts))
	summary := &hub.AssignmentSummary{
		Uuid:        uuid.NewString(),
		Title:       req.Title,
		TotalPoints: req.TotalPoints,
		Topic:       req.Topic,
		Due:         due,
		CreatedAt:   time.Now(),
	}

	// 固定按easy/medium/hard顺序落库，摘要里的id顺序即生成顺序
	for _, tier := range consts.AllDifficulties {
		draft, ok := drafts[tier]
		if !ok {
			continue
		}

		structured, ok := s.parseStructuredQuestions(cctx, draft)
		if !ok {
			log.CtxInfo(ctx, "会话 %s %s档结构化失败，保留原始草稿", payload.SessionId, tier)
		}

		answer, err := s.LLM.ChatCompletion(cctx, answerSystemPrompt, buildAnswerPrompt(draft))
		if err != nil {
			return fmt.Errorf("生成%s档答案失败: %w", tier, err)
		}

		a := &assignment.Assignment{
			HubID:               req.HubId,
			Title:               req.Title,
			Difficulty:          tier,
			Instructions:        req.Instructions,
			TotalPoints:         req.TotalPoints,
			Question:            draft,
			StructuredQuestions: structured,
			Answer:              answer,
			QuestionPoints:      questionPoints,
			Due:                 due,
			Topic:               req.Topic,
			AutomaticGrading:    req.AutomaticGradingEnabled,
			AutomaticFeedback:   req.AutomaticFeedbackEnabled,
			PlagiarismDetection: req.PlagiarismCheckerEnabled,
		}
		if err := s.AssignmentMapper.Insert(ctx, a); err != nil {
			return fmt.Errorf("写入作业失败: %w", err)
		}
		summary.AssignmentIDs = append(summary.AssignmentIDs, a.ID)
		ids = append(ids, a.ID.Hex())
	}

	predicted, err := s.LLM.PredictDifficulty(cctx, h.StudentsAssignmentMarks)
	if err != nil {
		log.CtxError(ctx, "难度预测失败，使用默认档位: %v", err)
		predicted = consts.AllDifficulties
	}
	summary.PredictedDifficultyLevel = predicted

	if err := s.HubMapper.PushAssignmentSummary(ctx, req.HubId, summary, req.Topic); err != nil {
		return fmt.Errorf("登记作业摘要失败: %w", err)
	}

	if err := s.HubPageCacheMapper.DeletePage(ctx, req.HubId, 1); err != nil {
		log.CtxError(ctx, "失效时间线缓存失败: %v", err)
	}

	// 草稿已消费，会话就此终结
	if err := s.DraftCacheMapper.Delete(ctx, payload.SessionId); err != nil {
		log.CtxError(ctx, "删除暂存草稿失败: %v", err)
	}

	if req.AutomaticGradingEnabled {
		delay := time.Until(due)
		if delay < 0 {
			delay = 0
		}
		for _, id := range ids {
			task, err := mq.NewTask(mq.TypeAssignmentGrade, &mq.GradeAssignmentPayload{AssignmentId: id})
			if err != nil {
				log.CtxError(ctx, "构造批改任务失败: %v", err)
				continue
			}
			if _, err := s.Dispatcher.DispatchIn(ctx, task, delay); err != nil {
				log.CtxError(ctx, "投递批改任务失败: %v", err)
			}
		}
	}

	log.CtxInfo(ctx, "会话 %s 落库完成，共%d份作业", payload.SessionId, len(ids))
	return nil
}

// GradeDue 到期批改：对每份未批改的作答各做一次模型调用
func (s *GenerationService) GradeDue(ctx context.Context, payload *mq.GradeAssignmentPayload) error {
	a, err := s.AssignmentMapper.FindOne(ctx, payload.AssignmentId)
	if err != nil {
		return consts.ErrNotFound
	}
	if !a.AutomaticGrading {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, mq.SoftTimeLimit)
	defer cancel()

	for email, response := range a.Responses {
		if _, graded := a.Marks[email]; graded {
			continue
		}

		userPrompt := fmt.Sprintf("Assignment:\n%s\n\nAnswer key:\n%s\n\nTotal points: %d\n\nStudent submission:\n%s",
			a.Question, a.Answer, a.TotalPoints, response)
		raw, err := s.LLM.ChatCompletion(cctx, gradeSystemPrompt, userPrompt)
		if err != nil {
			log.CtxError(ctx, "批改 %s 的提交失败: %v", email, err)
			continue
		}

		extracted, ok := extractSentinelJSON(raw)
		if !ok {
			log.CtxError(ctx, "批改输出无法解析，跳过 %s", email)
			continue
		}
		var result struct {
			Marks       float64 `json:"marks"`
			Feedback    string  `json:"feedback"`
			Plagiarised bool    `json:"plagiarised"`
		}
		if err := json.Unmarshal([]byte(extracted), &result); err != nil {
			log.CtxError(ctx, "批改输出反序列化失败，跳过 %s: %v", email, err)
			continue
		}

		if a.PlagiarismDetection && result.Plagiarised {
			if err := s.AssignmentMapper.AddPlagiarisedEmail(ctx, payload.AssignmentId, email); err != nil {
				log.CtxError(ctx, "标记抄袭提交失败: %v", err)
			}
		}

		feedback := ""
		if a.AutomaticFeedback {
			feedback = result.Feedback
		}
		if err := s.AssignmentMapper.SetAssessment(ctx, payload.AssignmentId, email, result.Marks, feedback); err != nil {
			log.CtxError(ctx, "写入批改结果失败: %v", err)
			continue
		}
		if err := s.HubMapper.AppendStudentMark(ctx, a.HubID, email, result.Marks); err != nil {
			log.CtxError(ctx, "同步学生成绩失败: %v", err)
		}
	}
	return nil
}

// stageAndPublish 整张草稿map覆盖写入并在同名频道广播
func (s *GenerationService) stageAndPublish(ctx context.Context, sessionId string, drafts map[string]string) error {
	if err := s.DraftCacheMapper.Set(ctx, sessionId, drafts); err != nil {
		return fmt.Errorf("暂存草稿失败: %w", err)
	}

	data, err := json.Marshal(drafts)
	if err != nil {
		return fmt.Errorf("序列化草稿失败: %w", err)
	}
	channel := s.DraftCacheMapper.Key(sessionId)
	if err := s.PubSub.Publish(ctx, channel, string(data)).Err(); err != nil {
		log.CtxError(ctx, "广播草稿失败 channel=%s: %v", channel, err)
	}
	return nil
}

// parseStructuredQuestions 结构化转换的唯一解析边界
// 模型输出不合约定时返回空串和false，调用方保留原始草稿
func (s *GenerationService) parseStructuredQuestions(ctx context.Context, draft string) (string, bool) {
	raw, err := s.LLM.ChatCompletion(ctx, structureSystemPrompt, draft)
	if err != nil {
		log.CtxError(ctx, "结构化调用失败: %v", err)
		return "", false
	}
	extracted, ok := extractSentinelJSON(raw)
	if !ok {
		return "", false
	}
	return extracted, true
}

// extractSentinelJSON 从自由文本中按标记对提取JSON并校验合法性
func extractSentinelJSON(raw string) (string, bool) {
	start := strings.Index(raw, jsonStartMarker)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(jsonStartMarker):]
	end := strings.Index(rest, jsonEndMarker)
	if end < 0 {
		return "", false
	}
	payload := strings.TrimSpace(rest[:end])
	if !json.Valid([]byte(payload)) {
		return "", false
	}
	return payload, true
}

// buildGeneratePrompt 按档位拼装用户侧提示词
func buildGeneratePrompt(req *eduhub.GenerateAssignmentReq, difficulty string) string {
	topicsString := strings.Join(req.Topics, ", ")

	specificTopics := req.SpecificTopics
	if specificTopics == "" {
		specificTopics = "give equal attention to the previously mentioned topics"
	}
	instructions := req.InstructionsForAI
	if instructions == "" {
		instructions = "no special instruction is given by teacher"
	}

	// map遍历无序，题型描述按名称排序保证提示词稳定
	typeNames := make([]string, 0, len(req.TypesOfQuestions))
	for name := range req.TypesOfQuestions {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	typeParts := make([]string, 0, len(typeNames))
	for _, name := range typeNames {
		spec := req.TypesOfQuestions[name]
		typeParts = append(typeParts, fmt.Sprintf("%s: %d questions each worth %d points", name, spec.Count, spec.Points))
	}

	return fmt.Sprintf(`Generate a comprehensive assignment in Markdown format with the title '%s'. The assignment should cover the following topics: %s and give special attention to the specific topics: %s.

Follow the special instructions provided by the teacher: %s.

The assignment should include a mix of question types, specifically:
%s

Ensure the assignment is at %s difficulty level.

When generating the assignment, please format it in Markdown and use LaTeX equations for any mathematical equations.

If any question includes a diagram, write mermaid code for it inside markdown
code blocks specifying the mermaid language.

The assigment format is going to be:
Topics (h1 heading)
Question Type (h3 heading)
Questions (mentioning the number of points with each question at the end)

Questions should follow a numbered ordered list.

Create a comprehensive and challenging assignment that assesses the student's understanding of the topics. Ensure the questions are clear, concise, and relevant to the topics.`,
		req.Title, topicsString, specificTopics, instructions, strings.Join(typeParts, ", "), difficulty)
}

func buildAnswerPrompt(assignmentText string) string {
	return fmt.Sprintf(`Please answer the following assignment questions:

%s

Note: The assignment questions will be provided, and the system should respond
with the answers to each question in the format specified above maintaining
the markdown, latex and mermaid format.`, assignmentText)
}
