package repo

import (
	"context"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
)

// TranscriptRepo is the chat transcript persistence interface (SQLite)
type TranscriptRepo interface {
	// Append stores one message under a session id
	Append(ctx context.Context, sessionID string, msg domain.ChatMessage) error

	// History returns the stored messages for a session in append order
	History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)

	// Close closes the underlying store
	Close() error
}
