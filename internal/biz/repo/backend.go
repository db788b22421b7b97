package repo

import (
	"context"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
)

// ChatRequest is the body sent to POST /chat/web
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserName  string `json:"user_name"`
}

// BackendRepo is the backend retrieval interface.
// Implementations perform a single attempt per call; retry policy, if
// any, belongs to the caller.
type BackendRepo interface {
	// FetchStats retrieves the current stats snapshot
	FetchStats(ctx context.Context) (*domain.StatsSnapshot, error)

	// FetchAppointments retrieves the current appointments snapshot
	FetchAppointments(ctx context.Context) (*domain.AppointmentsSnapshot, error)

	// Healthy reports whether GET /health answers 200
	Healthy(ctx context.Context) bool
}

// ChatRepo is the chat exchange interface
type ChatRepo interface {
	// Send posts one message and returns the agent's reply text
	Send(ctx context.Context, req ChatRequest) (string, error)
}
