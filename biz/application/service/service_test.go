package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"
	"edu-hub/biz/infrastructure/repository/assignment"
	"edu-hub/biz/infrastructure/repository/hub"

	"github.com/alicebob/miniredis/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	testCfg  *config.Config
	testOnce sync.Once
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	testOnce.Do(func() {
		s, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		yaml := fmt.Sprintf(`Name: edu-hub-test
ListenOn: 0.0.0.0:0
State: test
Log:
  Mode: console
Auth:
  SecretKey: ""
  PublicKey: ""
  AccessExpire: 604800
Api:
  ChatCompletionURL: http://localhost:8001/v1/chat/completions
  EmbeddingURL: http://localhost:8002/v1/embed
  DifficultyURL: http://localhost:8003/v1/predict
  AuthHeader: ""
  ChatModel: chat-large
  EmbeddingModel: embed-base
Mongo:
  URL: mongodb://localhost:27017
  DB: test
Cache:
  - Host: %s
Redis:
  Host: %s
  Type: node
`, s.Addr(), s.Addr())
		path := filepath.Join(os.TempDir(), "eduhub-service-test.yaml")
		if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
			panic(err)
		}
		os.Setenv("CONFIG_PATH", path)
		testCfg, err = config.NewConfig()
		if err != nil {
			panic(err)
		}
	})
	return testCfg
}

// fakeLLM 可编程的模型替身
type fakeLLM struct {
	completion func(systemPrompt, userPrompt string) (string, error)
	embedding  []float64
	embedErr   error
	levels     []string
	levelsErr  error
	calls      int
}

func (f *fakeLLM) ChatCompletion(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.completion != nil {
		return f.completion(systemPrompt, userPrompt)
	}
	return fmt.Sprintf("draft-%d", f.calls), nil
}

func (f *fakeLLM) EmbedContent(_ context.Context, _ string) ([]float64, error) {
	return f.embedding, f.embedErr
}

func (f *fakeLLM) PredictDifficulty(_ context.Context, _ map[string][]float64) ([]string, error) {
	return f.levels, f.levelsErr
}

// fakeAssignmentStore 内存里的作业存储替身
type fakeAssignmentStore struct {
	docs        map[string]*assignment.Assignment
	inserted    []*assignment.Assignment
	assessments map[string]float64
	feedbacks   map[string]string
	plagiarised []string
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{
		docs:        map[string]*assignment.Assignment{},
		assessments: map[string]float64{},
		feedbacks:   map[string]string{},
	}
}

func (f *fakeAssignmentStore) Insert(_ context.Context, a *assignment.Assignment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.inserted = append(f.inserted, a)
	f.docs[a.ID.Hex()] = a
	return nil
}

func (f *fakeAssignmentStore) FindOne(_ context.Context, id string) (*assignment.Assignment, error) {
	a, ok := f.docs[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return a, nil
}

func (f *fakeAssignmentStore) SetAssessment(_ context.Context, id string, email string, mark float64, feedback string) error {
	f.assessments[id+"/"+email] = mark
	f.feedbacks[id+"/"+email] = feedback
	return nil
}

func (f *fakeAssignmentStore) AddPlagiarisedEmail(_ context.Context, _ string, email string) error {
	f.plagiarised = append(f.plagiarised, email)
	return nil
}

// fakeHubStore 内存里的课堂存储替身
type fakeHubStore struct {
	hub       *hub.Hub
	summaries []*hub.AssignmentSummary
	topics    []string
	marks     map[string][]float64
}

func (f *fakeHubStore) FindOne(_ context.Context, _ string) (*hub.Hub, error) {
	if f.hub == nil {
		return nil, consts.ErrNotFound
	}
	return f.hub, nil
}

func (f *fakeHubStore) PushAssignmentSummary(_ context.Context, _ string, summary *hub.AssignmentSummary, topic string) error {
	f.summaries = append(f.summaries, summary)
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakeHubStore) AppendStudentMark(_ context.Context, _ string, email string, mark float64) error {
	if f.marks == nil {
		f.marks = map[string][]float64{}
	}
	f.marks[email] = append(f.marks[email], mark)
	return nil
}
