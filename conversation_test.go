package zeno_test

import (
	"strings"
	"testing"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/stretchr/testify/assert"
)

func TestTitleFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short message kept verbatim", "plan my trip to Kyoto", "plan my trip to Kyoto"},
		{"newlines collapsed", "first line\nsecond line", "first line second line"},
		{"empty message gets default", "", "New conversation"},
		{"whitespace only gets default", "  \n\t ", "New conversation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, zeno.TitleFromMessage(tt.content))
		})
	}

	t.Run("long message truncated to 80 runes", func(t *testing.T) {
		t.Parallel()
		got := zeno.TitleFromMessage(strings.Repeat("x", 200))
		assert.Len(t, []rune(got), 80)
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héllo", zeno.TruncateRunes("héllo", 5))
	assert.Equal(t, "hé...", zeno.TruncateRunes("héllo world", 5))
	assert.Equal(t, "hél", zeno.TruncateRunes("héllo", 3))
	assert.Equal(t, "", zeno.TruncateRunes("héllo", 0))
}

func TestConversation_Preview(t *testing.T) {
	t.Parallel()

	conv := &zeno.Conversation{}
	assert.Empty(t, conv.Preview())

	conv.Messages = []zeno.ChatMessage{
		zeno.NewUserMessage("question"),
		zeno.NewAssistantMessage(strings.Repeat("a", 150)),
	}
	got := conv.Preview()
	assert.Len(t, []rune(got), 100)
	assert.True(t, strings.HasPrefix(got, "aaa"))
}
