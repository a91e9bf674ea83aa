package zeno

import (
	"strings"
	"time"
)

// Conversation is a persisted chat session. The core only ever reads a
// bounded suffix of Messages and appends new turns; existing messages are
// never reordered or mutated in place.
type Conversation struct {
	SessionID string        `json:"sessionId"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ConversationMeta is the listing projection of a conversation: everything a
// sidebar needs without loading the full message history.
type ConversationMeta struct {
	SessionID    string    `json:"sessionId"`
	Title        string    `json:"title"`
	MessageCount int       `json:"messageCount"`
	LastMessage  string    `json:"lastMessage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	titleMaxRunes       = 80
	lastMessageMaxRunes = 100
)

// TitleFromMessage derives a conversation title from the first user message:
// a single-line, rune-safe snapshot truncated to 80 characters.
func TitleFromMessage(content string) string {
	title := strings.Join(strings.Fields(content), " ")
	if title == "" {
		return "New conversation"
	}
	return TruncateRunes(title, titleMaxRunes)
}

// Preview returns the trailing message's content truncated for listings.
func (c *Conversation) Preview() string {
	if len(c.Messages) == 0 {
		return ""
	}
	return TruncateRunes(c.Messages[len(c.Messages)-1].Content, lastMessageMaxRunes)
}

// TruncateRunes shortens s to at most max runes, appending "..." when
// anything was cut. Rune-based so multi-byte text is never split.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
