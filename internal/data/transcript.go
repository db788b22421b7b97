package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/repo"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// transcriptRepo implements the Transcript repository
type transcriptRepo struct {
	db *sql.DB
}

// NewTranscriptRepo creates a new Transcript repository
func NewTranscriptRepo(dbPath string) (repo.TranscriptRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transcripts (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			seq INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transcripts_session ON transcripts(session_id, seq)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &transcriptRepo{db: db}, nil
}

// Append stores one message under a session id
func (r *transcriptRepo) Append(ctx context.Context, sessionID string, msg domain.ChatMessage) error {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM transcripts WHERE session_id = ?
	`, sessionID)

	var lastSeq int64
	if err := row.Scan(&lastSeq); err != nil {
		return fmt.Errorf("failed to query last seq: %w", err)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transcripts (id, session_id, role, content, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		sessionID,
		string(msg.Role),
		msg.Content,
		time.Now().Unix(),
		lastSeq+1,
	)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// History returns the stored messages for a session in append order
func (r *transcriptRepo) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT role, content FROM transcripts
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, domain.ChatMessage{Role: domain.Role(role), Content: content})
	}

	return messages, rows.Err()
}

// Close closes the database connection
func (r *transcriptRepo) Close() error {
	return r.db.Close()
}
