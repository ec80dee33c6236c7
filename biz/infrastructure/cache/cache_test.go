package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"edu-hub/biz/infrastructure/config"
	"edu-hub/biz/infrastructure/consts"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
		path := filepath.Join(os.TempDir(), "eduhub-cache-test.yaml")
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

func TestDraftCacheMapperRoundTrip(t *testing.T) {
	m := NewDraftCacheMapper(testConfig(t))
	ctx := context.Background()

	drafts := map[string]string{
		consts.DifficultyEasy:   "easy draft",
		consts.DifficultyMedium: "medium draft",
		consts.DifficultyHard:   "hard draft",
	}
	require.NoError(t, m.Set(ctx, "s1", drafts))

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, drafts, got)

	require.NoError(t, m.Delete(ctx, "s1"))
	_, err = m.Get(ctx, "s1")
	assert.Error(t, err)
}

func TestDraftCacheMapperKeyIsChannelName(t *testing.T) {
	m := NewDraftCacheMapper(testConfig(t))
	assert.Equal(t, "generate_assignment_id_abc", m.Key("abc"))
}

func TestDraftCacheMapperMiss(t *testing.T) {
	m := NewDraftCacheMapper(testConfig(t))
	_, err := m.Get(context.Background(), "never-staged")
	assert.Error(t, err)
}

func TestConversationWindow(t *testing.T) {
	m := NewConversationCacheMapper(testConfig(t))
	ctx := context.Background()
	key := m.AttachmentKey("a1")

	history := strings.Repeat("x", 10050)
	require.NoError(t, m.rds.SetexCtx(ctx, key, history, consts.ConversationExpire))

	require.NoError(t, m.Append(ctx, key, "q", "a"))

	got, err := m.Get(ctx, key)
	require.NoError(t, err)
	turn := "user: q\nmodel: a\n"
	assert.Equal(t, consts.ConversationWindowChars+len(turn), len(got))
	assert.True(t, strings.HasSuffix(got, turn))
}

func TestConversationAppendFromEmpty(t *testing.T) {
	m := NewConversationCacheMapper(testConfig(t))
	ctx := context.Background()
	key := m.RoomKey("r1")

	require.NoError(t, m.Append(ctx, key, "what is calculus", "a branch of mathematics"))
	got, err := m.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "user: what is calculus\nmodel: a branch of mathematics\n", got)
}

func TestTruncateTail(t *testing.T) {
	assert.Equal(t, "abc", TruncateTail("abc", 5))
	assert.Equal(t, "cde", TruncateTail("abcde", 3))
	assert.Equal(t, "", TruncateTail("", 3))
	assert.Equal(t, "", TruncateTail("abc", 0))
}

func TestTruncateTailMultibyte(t *testing.T) {
	// 窗口按字符数而不是字节数，不能把多字节字符切成半个
	s := "ab一二三四五"
	got := TruncateTail(s, 4)
	assert.Equal(t, "二三四五", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 4, utf8.RuneCountInString(got))
}

func TestCounterIncrAndSet(t *testing.T) {
	m := NewCounterCacheMapper(testConfig(t))
	ctx := context.Background()

	attKey := m.AttachmentEmbeddingsKey("a2")
	require.NoError(t, m.Set(ctx, attKey, 7))
	n, err := m.Get(ctx, attKey)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	roomKey := m.RoomEmbeddingsKey("r2")
	require.NoError(t, m.Incr(ctx, roomKey, 3))
	require.NoError(t, m.Incr(ctx, roomKey, 4))
	n, err = m.Get(ctx, roomKey)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestCounterMissingKeyIsZero(t *testing.T) {
	m := NewCounterCacheMapper(testConfig(t))
	n, err := m.Get(context.Background(), m.AttachmentEmbeddingsKey("nope"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
