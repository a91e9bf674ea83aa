package mock

import (
	"context"

	zeno "github.com/Dushyant-2004/Zeno"
)

// Interface compliance checks.
var (
	_ zeno.ConversationStore = (*ConversationStore)(nil)
	_ zeno.DocumentStore     = (*DocumentStore)(nil)
)

// ConversationStore is a test double for zeno.ConversationStore.
// Set the function fields for the operations the test exercises; unset
// mutating operations are nil-safe no-ops so read-only tests stay short.
type ConversationStore struct {
	GetFn    func(ctx context.Context, sessionID string) (*zeno.Conversation, error)
	SaveFn   func(ctx context.Context, conv *zeno.Conversation) error
	AppendFn func(ctx context.Context, sessionID string, msgs ...zeno.ChatMessage) error
	ListFn   func(ctx context.Context, limit int) ([]zeno.ConversationMeta, error)
	DeleteFn func(ctx context.Context, sessionID string) error
}

// Get delegates to GetFn. Returns ErrConversationNotFound when GetFn is nil.
func (s *ConversationStore) Get(ctx context.Context, sessionID string) (*zeno.Conversation, error) {
	if s.GetFn == nil {
		return nil, zeno.ErrConversationNotFound
	}
	return s.GetFn(ctx, sessionID)
}

// Save delegates to SaveFn. No-op when nil.
func (s *ConversationStore) Save(ctx context.Context, conv *zeno.Conversation) error {
	if s.SaveFn == nil {
		return nil
	}
	return s.SaveFn(ctx, conv)
}

// Append delegates to AppendFn. No-op when nil.
func (s *ConversationStore) Append(ctx context.Context, sessionID string, msgs ...zeno.ChatMessage) error {
	if s.AppendFn == nil {
		return nil
	}
	return s.AppendFn(ctx, sessionID, msgs...)
}

// List delegates to ListFn. Returns nil when ListFn is nil.
func (s *ConversationStore) List(ctx context.Context, limit int) ([]zeno.ConversationMeta, error) {
	if s.ListFn == nil {
		return nil, nil
	}
	return s.ListFn(ctx, limit)
}

// Delete delegates to DeleteFn. No-op when nil.
func (s *ConversationStore) Delete(ctx context.Context, sessionID string) error {
	if s.DeleteFn == nil {
		return nil
	}
	return s.DeleteFn(ctx, sessionID)
}

// DocumentStore is a test double for zeno.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn   func(ctx context.Context, doc *zeno.Document) error
	ReadyDocumentsFn func(ctx context.Context, sessionID string) ([]zeno.Document, error)
}

// SaveDocument delegates to SaveDocumentFn. No-op when nil.
func (s *DocumentStore) SaveDocument(ctx context.Context, doc *zeno.Document) error {
	if s.SaveDocumentFn == nil {
		return nil
	}
	return s.SaveDocumentFn(ctx, doc)
}

// ReadyDocuments delegates to ReadyDocumentsFn. Returns nil when unset.
func (s *DocumentStore) ReadyDocuments(ctx context.Context, sessionID string) ([]zeno.Document, error) {
	if s.ReadyDocumentsFn == nil {
		return nil, nil
	}
	return s.ReadyDocumentsFn(ctx, sessionID)
}
