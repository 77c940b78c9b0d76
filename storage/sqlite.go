package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

const documentSQL = `
CREATE TABLE IF NOT EXISTS document (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	body BLOB NOT NULL,
	updated_datetime TIMESTAMP NOT NULL
);`

// SQLiteStore keeps the document as a single row in a sqlite database.
// Still an opaque blob: sqlite only buys atomic replace semantics, the
// document is never queried by field.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore connects to the sqlite database at the given filename and
// creates the document table if not present.
func NewSQLiteStore(ctx context.Context, filename string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}
	if _, err := conn.ExecContext(ctx, documentSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error running base sql: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load reads the whole document.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.conn.QueryRowContext(ctx, `SELECT body FROM document WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading document: %w", err)
	}
	return body, nil
}

// Save overwrites the whole document.
func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO document (id, body, updated_datetime) VALUES (1, $1, $2)
		     ON CONFLICT (id) DO UPDATE SET body = $1, updated_datetime = $2`,
		data, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error saving document: %w", err)
	}
	return nil
}
