package sqlite

import (
	"context"
	"fmt"

	zeno "github.com/Dushyant-2004/Zeno"
)

// SaveDocument stores a document's extracted text and metadata.
func (s *Store) SaveDocument(ctx context.Context, doc *zeno.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, session_id, original_name, mime_type, size_bytes, word_count, page_count, status, text, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			word_count = excluded.word_count,
			page_count = excluded.page_count,
			status = excluded.status,
			text = excluded.text`,
		doc.ID, doc.SessionID, doc.OriginalName, doc.MimeType, doc.SizeBytes,
		doc.WordCount, doc.PageCount, doc.Status, doc.Text, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save document: %w", err)
	}
	return nil
}

// ReadyDocuments returns the session's extracted documents, oldest first.
func (s *Store) ReadyDocuments(ctx context.Context, sessionID string) ([]zeno.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, original_name, mime_type, size_bytes, word_count, page_count, status, text, uploaded_at
		 FROM documents
		 WHERE session_id = ? AND status = ?
		 ORDER BY uploaded_at, id`,
		sessionID, zeno.DocumentReady,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []zeno.Document
	for rows.Next() {
		var d zeno.Document
		if err := rows.Scan(&d.ID, &d.SessionID, &d.OriginalName, &d.MimeType, &d.SizeBytes,
			&d.WordCount, &d.PageCount, &d.Status, &d.Text, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate documents: %w", err)
	}

	return docs, nil
}
