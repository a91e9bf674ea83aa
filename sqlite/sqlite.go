// Package sqlite persists conversations and uploaded documents in a SQLite
// database via database/sql and the modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	zeno "github.com/Dushyant-2004/Zeno"
	_ "modernc.org/sqlite"
)

// maxListLimit caps conversation listings regardless of the requested limit.
const maxListLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	session_id TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES conversations(session_id) ON DELETE CASCADE,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);

CREATE TABLE IF NOT EXISTS documents (
	id            TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL,
	original_name TEXT NOT NULL,
	mime_type     TEXT NOT NULL,
	size_bytes    INTEGER NOT NULL,
	word_count    INTEGER NOT NULL,
	page_count    INTEGER NOT NULL,
	status        TEXT NOT NULL,
	text          TEXT NOT NULL,
	uploaded_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_id, uploaded_at);
`

// Interface compliance checks.
var (
	_ zeno.ConversationStore = (*Store)(nil)
	_ zeno.DocumentStore     = (*Store)(nil)
)

// Store implements [zeno.ConversationStore] and [zeno.DocumentStore] on a
// SQLite database. Appends run in transactions, which serializes concurrent
// writers on the same session.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// Single connection avoids SQLITE_BUSY on concurrent writes; SQLite
	// serializes writers anyway.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	return nil
}
