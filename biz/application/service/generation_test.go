package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"edu-hub/biz/application/dto/eduhub"
	"edu-hub/biz/infrastructure/cache"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/lock"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/biz/infrastructure/redis"
	"edu-hub/biz/infrastructure/repository/assignment"
	"edu-hub/biz/infrastructure/repository/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerationService(t *testing.T, llm *fakeLLM) *GenerationService {
	cfg := testConfig(t)
	return &GenerationService{
		LLM:                llm,
		DraftCacheMapper:   cache.NewDraftCacheMapper(cfg),
		HubPageCacheMapper: cache.NewHubPageCacheMapper(cfg),
		PubSub:             redis.GetPubSubClient(cfg),
		Dispatcher:         &mq.SyncDispatcher{},
	}
}

func generateReq() *eduhub.GenerateAssignmentReq {
	return &eduhub.GenerateAssignmentReq{
		HubId:  "h1",
		Title:  "Algebra Basics",
		Topics: []string{"linear equations", "polynomials"},
		TypesOfQuestions: map[string]*eduhub.QuestionTypeSpec{
			consts.QuestionDescriptive:   {Count: 2, Points: 10},
			consts.QuestionSingleCorrect: {Count: 5, Points: 2},
		},
		VariantCount: 3,
	}
}

func TestGenerateStagesAllTiers(t *testing.T) {
	llm := &fakeLLM{}
	s := newGenerationService(t, llm)

	err := s.Generate(context.Background(), &mq.GenerateAssignmentPayload{
		SessionId: "gen-all",
		Req:       generateReq(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, llm.calls)

	drafts, err := s.DraftCacheMapper.Get(context.Background(), "gen-all")
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	// 生成顺序固定easy/medium/hard
	assert.Equal(t, "draft-1", drafts[consts.DifficultyEasy])
	assert.Equal(t, "draft-2", drafts[consts.DifficultyMedium])
	assert.Equal(t, "draft-3", drafts[consts.DifficultyHard])
}

func TestGenerateSingleVariant(t *testing.T) {
	llm := &fakeLLM{}
	s := newGenerationService(t, llm)

	req := generateReq()
	req.VariantCount = 1
	err := s.Generate(context.Background(), &mq.GenerateAssignmentPayload{
		SessionId: "gen-one",
		Req:       req,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)

	drafts, err := s.DraftCacheMapper.Get(context.Background(), "gen-one")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Contains(t, drafts, consts.DifficultyMedium)
}

func TestGenerateYieldsWhenSessionLocked(t *testing.T) {
	llm := &fakeLLM{}
	s := newGenerationService(t, llm)

	held := lock.NewMutex(context.Background(), "generate:gen-dup", 200, 0)
	require.NoError(t, held.Lock())
	defer held.Unlock()

	err := s.Generate(context.Background(), &mq.GenerateAssignmentPayload{
		SessionId: "gen-dup",
		Req:       generateReq(),
	})
	require.NoError(t, err)
	assert.Zero(t, llm.calls)
}

func TestGeneratePublishesDrafts(t *testing.T) {
	cfg := testConfig(t)
	llm := &fakeLLM{}
	s := newGenerationService(t, llm)

	channel := s.DraftCacheMapper.Key("gen-pub")
	sub := redis.GetPubSubClient(cfg).Subscribe(context.Background(), channel)
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	req := generateReq()
	req.VariantCount = 1
	require.NoError(t, s.Generate(context.Background(), &mq.GenerateAssignmentPayload{
		SessionId: "gen-pub",
		Req:       req,
	}))

	msg := <-sub.Channel()
	var published map[string]string
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &published))
	assert.Equal(t, "draft-1", published[consts.DifficultyMedium])
}

func TestModifyMissingSession(t *testing.T) {
	s := newGenerationService(t, &fakeLLM{})

	err := s.Modify(context.Background(), &mq.ModifyAssignmentPayload{
		SessionId:     "never-staged",
		Difficulty:    consts.DifficultyMedium,
		ChangesPrompt: "add more questions",
	})
	assert.ErrorIs(t, err, consts.ErrGenerationNotFound)
}

func TestModifyRewritesSingleTier(t *testing.T) {
	llm := &fakeLLM{completion: func(_, _ string) (string, error) {
		return "revised medium draft", nil
	}}
	s := newGenerationService(t, llm)
	ctx := context.Background()

	staged := map[string]string{
		consts.DifficultyEasy:   "easy draft",
		consts.DifficultyMedium: "medium draft",
		consts.DifficultyHard:   "hard draft",
	}
	require.NoError(t, s.DraftCacheMapper.Set(ctx, "mod-1", staged))

	require.NoError(t, s.Modify(ctx, &mq.ModifyAssignmentPayload{
		SessionId:     "mod-1",
		Difficulty:    consts.DifficultyMedium,
		ChangesPrompt: "make question 2 harder",
	}))

	drafts, err := s.DraftCacheMapper.Get(ctx, "mod-1")
	require.NoError(t, err)
	assert.Equal(t, "easy draft", drafts[consts.DifficultyEasy])
	assert.Equal(t, "revised medium draft", drafts[consts.DifficultyMedium])
	assert.Equal(t, "hard draft", drafts[consts.DifficultyHard])
}

func TestModifyUnknownTier(t *testing.T) {
	s := newGenerationService(t, &fakeLLM{})
	ctx := context.Background()

	require.NoError(t, s.DraftCacheMapper.Set(ctx, "mod-2", map[string]string{
		consts.DifficultyMedium: "medium draft",
	}))

	err := s.Modify(ctx, &mq.ModifyAssignmentPayload{
		SessionId:     "mod-2",
		Difficulty:    consts.DifficultyHard,
		ChangesPrompt: "anything",
	})
	assert.ErrorIs(t, err, consts.ErrGenerationNotFound)
}

func TestMaterializeCreatesOneDocPerTier(t *testing.T) {
	llm := &fakeLLM{levels: []string{consts.DifficultyMedium}}
	s := newGenerationService(t, llm)
	store := newFakeAssignmentStore()
	hubStore := &fakeHubStore{hub: &hub.Hub{StudentsAssignmentMarks: map[string][]float64{"s@edu.io": {8}}}}
	s.AssignmentMapper = store
	s.HubMapper = hubStore
	dispatcher := s.Dispatcher.(*mq.SyncDispatcher)

	ctx := context.Background()
	require.NoError(t, s.DraftCacheMapper.Set(ctx, "mat-1", map[string]string{
		consts.DifficultyEasy:   "easy draft",
		consts.DifficultyMedium: "medium draft",
		consts.DifficultyHard:   "hard draft",
	}))

	err := s.Materialize(ctx, &mq.MaterializeAssignmentPayload{
		SessionId: "mat-1",
		Req: &eduhub.CreateAssignmentUsingAIReq{
			SessionId:               "mat-1",
			HubId:                   "h1",
			Title:                   "Algebra Basics",
			TotalPoints:             20,
			QuestionPoints:          []int64{10, 10},
			Due:                     time.Now().Add(time.Hour).Unix(),
			Topic:                   "algebra",
			AutomaticGradingEnabled: true,
		},
	})
	require.NoError(t, err)

	// 每个难度档各落一份文档，顺序固定
	require.Len(t, store.inserted, 3)
	tiers := make([]string, 0, 3)
	for _, a := range store.inserted {
		tiers = append(tiers, a.Difficulty)
		assert.Equal(t, "Algebra Basics", a.Title)
		assert.NotEmpty(t, a.Answer)
	}
	assert.Equal(t, consts.AllDifficulties, tiers)

	// 只有一条摘要，引用全部三个id
	require.Len(t, hubStore.summaries, 1)
	summary := hubStore.summaries[0]
	require.Len(t, summary.AssignmentIDs, 3)
	for i, a := range store.inserted {
		assert.Equal(t, a.ID, summary.AssignmentIDs[i])
	}
	assert.Equal(t, []string{consts.DifficultyMedium}, summary.PredictedDifficultyLevel)
	assert.Equal(t, []string{"algebra"}, hubStore.topics)

	// 草稿已消费，会话不可再用
	_, err = s.DraftCacheMapper.Get(ctx, "mat-1")
	assert.Error(t, err)

	// 自动批改开启时每份作业一个倒计时任务
	require.Len(t, dispatcher.Dispatched, 3)
	for i, task := range dispatcher.Dispatched {
		assert.Equal(t, mq.TypeAssignmentGrade, task.Type())
		assert.Greater(t, dispatcher.Delays[i], time.Duration(0))
	}
}

func TestMaterializeMissingSession(t *testing.T) {
	s := newGenerationService(t, &fakeLLM{})
	store := newFakeAssignmentStore()
	hubStore := &fakeHubStore{}
	s.AssignmentMapper = store
	s.HubMapper = hubStore

	err := s.Materialize(context.Background(), &mq.MaterializeAssignmentPayload{
		SessionId: "mat-gone",
		Req:       &eduhub.CreateAssignmentUsingAIReq{HubId: "h1"},
	})
	assert.ErrorIs(t, err, consts.ErrGenerationNotFound)
	assert.Empty(t, store.inserted)
	assert.Empty(t, hubStore.summaries)
}

func TestGradeDueFlagsPlagiarisedSubmission(t *testing.T) {
	llm := &fakeLLM{completion: func(_, _ string) (string, error) {
		return `<<<JSON>>>{"marks": 7, "feedback": "copied from answer key", "plagiarised": true}<<<END>>>`, nil
	}}
	s := newGenerationService(t, llm)
	store := newFakeAssignmentStore()
	hubStore := &fakeHubStore{}
	s.AssignmentMapper = store
	s.HubMapper = hubStore

	a := &assignment.Assignment{
		HubID:               "h1",
		TotalPoints:         10,
		Question:            "q",
		Answer:              "a",
		Responses:           map[string]string{"s@edu.io": "the answer"},
		AutomaticGrading:    true,
		AutomaticFeedback:   true,
		PlagiarismDetection: true,
	}
	require.NoError(t, store.Insert(context.Background(), a))

	require.NoError(t, s.GradeDue(context.Background(), &mq.GradeAssignmentPayload{AssignmentId: a.ID.Hex()}))
	assert.Equal(t, []string{"s@edu.io"}, store.plagiarised)
	assert.Equal(t, 7.0, store.assessments[a.ID.Hex()+"/s@edu.io"])
	assert.Equal(t, "copied from answer key", store.feedbacks[a.ID.Hex()+"/s@edu.io"])
	assert.Equal(t, []float64{7}, hubStore.marks["s@edu.io"])
}

func TestExtractSentinelJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"clean", `<<<JSON>>>{"marks": 8}<<<END>>>`, `{"marks": 8}`, true},
		{"surrounded", "Sure, here you go:\n<<<JSON>>>\n[1,2,3]\n<<<END>>>\nanything else?", "[1,2,3]", true},
		{"no markers", `{"marks": 8}`, "", false},
		{"missing end", `<<<JSON>>>{"marks": 8}`, "", false},
		{"invalid json", `<<<JSON>>>not json<<<END>>>`, "", false},
		{"empty payload", `<<<JSON>>><<<END>>>`, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := extractSentinelJSON(c.raw)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestBuildGeneratePromptDefaults(t *testing.T) {
	req := generateReq()
	prompt := buildGeneratePrompt(req, consts.DifficultyEasy)

	assert.Contains(t, prompt, "Algebra Basics")
	assert.Contains(t, prompt, "linear equations, polynomials")
	assert.Contains(t, prompt, "give equal attention to the previously mentioned topics")
	assert.Contains(t, prompt, "no special instruction is given by teacher")
	assert.Contains(t, prompt, "easy difficulty level")

	// 题型描述按名称排序，保证同一请求产出同一提示词
	descriptive := strings.Index(prompt, "descriptive: 2 questions each worth 10 points")
	single := strings.Index(prompt, "single_correct: 5 questions each worth 2 points")
	assert.Greater(t, descriptive, -1)
	assert.Greater(t, single, -1)
	assert.Less(t, descriptive, single)
}
