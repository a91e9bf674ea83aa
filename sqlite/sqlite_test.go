package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	zeno "github.com/Dushyant-2004/Zeno"
	"github.com/Dushyant-2004/Zeno/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "zeno.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func saveConversation(t *testing.T, store *sqlite.Store, sessionID, title string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.Save(context.Background(), &zeno.Conversation{
		SessionID: sessionID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestStore_SaveAndGet(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	saveConversation(t, store, "s1", "First chat")
	require.NoError(t, store.Append(ctx, "s1",
		zeno.NewUserMessage("Hello"),
		zeno.NewAssistantMessage("Hi there"),
	))

	conv, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", conv.SessionID)
	assert.Equal(t, "First chat", conv.Title)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, zeno.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "Hello", conv.Messages[0].Content)
	assert.Equal(t, zeno.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, "Hi there", conv.Messages[1].Content)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()
	store := openStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, zeno.ErrConversationNotFound)
}

func TestStore_SaveIsUpsert(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	saveConversation(t, store, "s1", "Old title")
	saveConversation(t, store, "s1", "New title")

	conv, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "New title", conv.Title)
}

func TestStore_AppendPreservesOrder(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	saveConversation(t, store, "s1", "Chat")
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, "s1", zeno.NewUserMessage(string(rune('a'+i)))))
	}

	conv, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 5)
	for i, m := range conv.Messages {
		assert.Equal(t, string(rune('a'+i)), m.Content)
	}
}

func TestStore_AppendMissingConversation(t *testing.T) {
	t.Parallel()
	store := openStore(t)

	err := store.Append(context.Background(), "nope", zeno.NewUserMessage("hi"))
	assert.ErrorIs(t, err, zeno.ErrConversationNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, store.Save(ctx, &zeno.Conversation{
			SessionID: id,
			Title:     "Chat " + id,
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.Append(ctx, "s3", zeno.NewUserMessage("latest message")))

	metas, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, metas, 3)
	assert.Equal(t, "s3", metas[0].SessionID, "most recently updated comes first")
	assert.Equal(t, 1, metas[0].MessageCount)
	assert.Equal(t, "latest message", metas[0].LastMessage)
	assert.Equal(t, 0, metas[1].MessageCount)
	assert.Equal(t, "", metas[1].LastMessage)
}

func TestStore_ListCapped(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 60; i++ {
		require.NoError(t, store.Save(ctx, &zeno.Conversation{
			SessionID: fmt.Sprintf("session-%02d", i),
			Title:     "Chat",
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	metas, err := store.List(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, metas, 50)
}

func TestStore_ListTruncatesPreview(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	saveConversation(t, store, "s1", "Chat")
	require.NoError(t, store.Append(ctx, "s1", zeno.NewAssistantMessage(strings.Repeat("x", 150))))

	metas, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Len(t, []rune(metas[0].LastMessage), 100)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	saveConversation(t, store, "s1", "Chat")
	require.NoError(t, store.Append(ctx, "s1", zeno.NewUserMessage("hi")))

	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, zeno.ErrConversationNotFound)

	err = store.Delete(ctx, "s1")
	assert.ErrorIs(t, err, zeno.ErrConversationNotFound)
}

func TestStore_Documents(t *testing.T) {
	t.Parallel()
	store := openStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	ready := &zeno.Document{
		ID:           "doc-1",
		SessionID:    "s1",
		OriginalName: "notes.txt",
		MimeType:     "text/plain",
		SizeBytes:    42,
		WordCount:    7,
		PageCount:    1,
		Status:       zeno.DocumentReady,
		Text:         "seven words of extracted document text here",
		UploadedAt:   now,
	}
	pending := &zeno.Document{
		ID:           "doc-2",
		SessionID:    "s1",
		OriginalName: "big.pdf",
		MimeType:     "application/pdf",
		SizeBytes:    1000,
		Status:       zeno.DocumentPending,
		UploadedAt:   now.Add(time.Second),
	}
	other := &zeno.Document{
		ID:           "doc-3",
		SessionID:    "s2",
		OriginalName: "other.md",
		MimeType:     "text/markdown",
		SizeBytes:    10,
		Status:       zeno.DocumentReady,
		Text:         "other",
		UploadedAt:   now,
	}
	require.NoError(t, store.SaveDocument(ctx, ready))
	require.NoError(t, store.SaveDocument(ctx, pending))
	require.NoError(t, store.SaveDocument(ctx, other))

	docs, err := store.ReadyDocuments(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, docs, 1, "pending documents and other sessions are excluded")
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "seven words of extracted document text here", docs[0].Text)

	// Upsert flips the pending document to ready.
	pending.Status = zeno.DocumentReady
	pending.Text = "extracted later"
	pending.WordCount = 2
	require.NoError(t, store.SaveDocument(ctx, pending))

	docs, err = store.ReadyDocuments(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID, "oldest first")
	assert.Equal(t, "doc-2", docs[1].ID)
}
