package service

import (
	"strings"
	"testing"

	"edu-hub/biz/infrastructure/consts"

	"github.com/stretchr/testify/assert"
)

func TestResultLimit(t *testing.T) {
	cases := []struct {
		count int64
		want  int64
	}{
		{0, 0},
		{-1, 0},
		{1, 1},
		{4, 2},
		{9, 3},
		{10, 4},
		{100, 10},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResultLimit(c.count), "count=%d", c.count)
	}
}

func TestBuildChatPrompt(t *testing.T) {
	prompt := BuildChatPrompt("what is a derivative", "a derivative measures change", "user: hi\nmodel: hello\n")

	assert.Contains(t, prompt, "Question: what is a derivative")
	assert.Contains(t, prompt, "Retrieved Context: a derivative measures change")
	assert.Contains(t, prompt, "Previous Conversation: user: hi\nmodel: hello\n")
	assert.Contains(t, prompt, "fall back to your own knowledge")
}

func TestBuildChatPromptTrimsHistoryWindow(t *testing.T) {
	history := strings.Repeat("h", consts.ConversationWindowChars+500)
	prompt := BuildChatPrompt("q", "ctx", history)

	assert.LessOrEqual(t, len(prompt), consts.PromptMaxChars)
	assert.NotContains(t, prompt, strings.Repeat("h", consts.ConversationWindowChars+1))
	assert.Contains(t, prompt, strings.Repeat("h", consts.ConversationWindowChars))
}

func TestBuildChatPromptHardTruncation(t *testing.T) {
	retrieved := strings.Repeat("r", consts.PromptMaxChars+1000)
	prompt := BuildChatPrompt("q", retrieved, "")

	assert.Len(t, prompt, consts.PromptMaxChars)
	// 尾部截断最先挤掉的是靠前的检索内容，收尾的兜底指令保留
	assert.True(t, strings.HasSuffix(prompt, "explicitly state that you are doing so."))
	assert.NotContains(t, prompt, "Instruction:")
}
