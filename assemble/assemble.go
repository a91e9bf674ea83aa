// Package assemble builds the bounded message window submitted to the
// completion engine: the most recent slice of conversation history, with
// uploaded-document context injected into the first retained user turn.
package assemble

import (
	"fmt"
	"strings"

	zeno "github.com/Dushyant-2004/Zeno"
)

const (
	// DefaultWindow is how many trailing messages are submitted per call.
	// Older history is silently dropped; there is no summarization.
	DefaultWindow = 20

	// DefaultDocumentBudget is the per-document character budget before
	// head+tail truncation kicks in.
	DefaultDocumentBudget = 6000
)

// Assembler produces provider-ready message lists. The zero value is not
// useful; use New.
type Assembler struct {
	window    int
	docBudget int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithWindow sets the history window size.
func WithWindow(n int) Option {
	return func(a *Assembler) { a.window = n }
}

// WithDocumentBudget sets the per-document character budget.
func WithDocumentBudget(n int) Option {
	return func(a *Assembler) { a.docBudget = n }
}

// New creates an Assembler with the given options.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		window:    DefaultWindow,
		docBudget: DefaultDocumentBudget,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Build returns the ordered message list for one completion call: the last
// window messages of conv, with the document context block prepended to the
// content of the first retained message when that message is a user turn.
// The source conversation is never mutated.
//
// File context rides with user intent: if the window boundary lands on an
// assistant message, no context is injected.
func (a *Assembler) Build(conv *zeno.Conversation, docs []zeno.Document) []zeno.ChatMessage {
	msgs := conv.Messages
	if len(msgs) > a.window {
		msgs = msgs[len(msgs)-a.window:]
	}

	out := make([]zeno.ChatMessage, len(msgs))
	copy(out, msgs)

	if len(out) == 0 || len(docs) == 0 {
		return out
	}
	if out[0].Role != zeno.RoleUser {
		return out
	}

	prefix := DocumentPrefix(docs, a.docBudget)
	if prefix != "" {
		out[0].Content = prefix + out[0].Content
	}
	return out
}

// DocumentPrefix concatenates the documents' texts into a single context
// block, truncating each to budget characters. The result is deterministic
// for the same documents in the same order.
func DocumentPrefix(docs []zeno.Document, budget int) string {
	var sb strings.Builder
	for _, doc := range docs {
		text := strings.TrimSpace(doc.Text)
		if text == "" {
			continue
		}
		sb.WriteString("--- Uploaded file: ")
		sb.WriteString(doc.OriginalName)
		sb.WriteString(" ---\n")
		sb.WriteString(truncateDocument(text, budget))
		sb.WriteString("\n\n")
	}
	if sb.Len() == 0 {
		return ""
	}
	sb.WriteString("--- End of uploaded files ---\n\n")
	return sb.String()
}

// truncateDocument applies a head+tail strategy to oversized text: keep the
// first and last halves of the budget and note how much was omitted in
// between.
func truncateDocument(text string, budget int) string {
	runes := []rune(text)
	if budget <= 0 || len(runes) <= budget {
		return text
	}
	head := budget / 2
	tail := budget - head
	omitted := len(runes) - head - tail
	return string(runes[:head]) +
		fmt.Sprintf("\n[... %d characters omitted ...]\n", omitted) +
		string(runes[len(runes)-tail:])
}
