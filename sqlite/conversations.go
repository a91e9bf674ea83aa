package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	zeno "github.com/Dushyant-2004/Zeno"
)

// lastMessagePreviewRunes bounds the listing preview of the latest message.
const lastMessagePreviewRunes = 100

// Get loads a conversation and its full message history.
func (s *Store) Get(ctx context.Context, sessionID string) (*zeno.Conversation, error) {
	conv := &zeno.Conversation{SessionID: sessionID}

	err := s.db.QueryRowContext(ctx,
		`SELECT title, created_at, updated_at FROM conversations WHERE session_id = ?`,
		sessionID,
	).Scan(&conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, zeno.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to load conversation: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, created_at FROM messages WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m zeno.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan message: %w", err)
		}
		conv.Messages = append(conv.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate messages: %w", err)
	}

	return conv, nil
}

// Save upserts the conversation record. Messages are written by Append only.
func (s *Store) Save(ctx context.Context, conv *zeno.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (session_id, title, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			title = excluded.title,
			updated_at = excluded.updated_at`,
		conv.SessionID, conv.Title, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save conversation: %w", err)
	}
	return nil
}

// Append adds messages to the end of the conversation in a single
// transaction and bumps the updated timestamp.
func (s *Store) Append(ctx context.Context, sessionID string, msgs ...zeno.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE session_id = ?`,
		time.Now().UTC(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to touch conversation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return zeno.ErrConversationNotFound
	}

	for _, m := range msgs {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
			sessionID, m.Role, m.Content, ts,
		); err != nil {
			return fmt.Errorf("sqlite: failed to append message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit append: %w", err)
	}
	return nil
}

// List returns conversation metadata, newest-updated first. The limit is
// capped at 50.
func (s *Store) List(ctx context.Context, limit int) ([]zeno.ConversationMeta, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.session_id, c.title, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.session_id = c.session_id),
			COALESCE((SELECT content FROM messages m WHERE m.session_id = c.session_id ORDER BY m.id DESC LIMIT 1), '')
		 FROM conversations c
		 ORDER BY c.updated_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list conversations: %w", err)
	}
	defer rows.Close()

	metas := []zeno.ConversationMeta{}
	for rows.Next() {
		var meta zeno.ConversationMeta
		var lastMessage string
		if err := rows.Scan(&meta.SessionID, &meta.Title, &meta.CreatedAt, &meta.UpdatedAt, &meta.MessageCount, &lastMessage); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan conversation: %w", err)
		}
		meta.LastMessage = zeno.TruncateRunes(lastMessage, lastMessagePreviewRunes)
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate conversations: %w", err)
	}

	return metas, nil
}

// Delete removes a conversation, its messages and its documents.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete conversation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return zeno.ErrConversationNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("sqlite: failed to delete documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: failed to commit delete: %w", err)
	}
	return nil
}
