package zeno

import "context"

// ConversationStore is the persistence boundary for conversations. The core
// treats it as an opaque repository: load or create by session id, append
// turns, list, delete. Implementations must keep message order append-only.
type ConversationStore interface {
	// Get loads a conversation by session id. Returns
	// ErrConversationNotFound when no such conversation exists.
	Get(ctx context.Context, sessionID string) (*Conversation, error)

	// Save upserts the conversation record (id, title, timestamps). It does
	// not write messages; Append does.
	Save(ctx context.Context, conv *Conversation) error

	// Append adds messages to the end of the conversation and bumps its
	// updated timestamp. Messages are never reordered or rewritten.
	Append(ctx context.Context, sessionID string, msgs ...ChatMessage) error

	// List returns conversation metadata, newest-updated first, at most
	// limit entries.
	List(ctx context.Context, limit int) ([]ConversationMeta, error)

	// Delete removes a conversation and its messages. Returns
	// ErrConversationNotFound when absent.
	Delete(ctx context.Context, sessionID string) error
}

// DocumentStore persists uploaded-file text for context injection. The
// assembler reads ready documents; the upload handler writes them.
type DocumentStore interface {
	// SaveDocument stores an uploaded document's extracted text and metadata.
	SaveDocument(ctx context.Context, doc *Document) error

	// ReadyDocuments returns the session's documents whose text extraction
	// completed, oldest first.
	ReadyDocuments(ctx context.Context, sessionID string) ([]Document, error)
}
