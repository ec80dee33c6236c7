package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInviteCode(t *testing.T) {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	s := &HubService{}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := s.generateInviteCode()
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	// 50次里全撞车的概率可以忽略
	assert.Greater(t, len(seen), 1)
}
