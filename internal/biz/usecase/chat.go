package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/repo"
)

// defaultChatTimeout bounds one /chat/web exchange
const defaultChatTimeout = 30 * time.Second

// ChatUsecase owns one chat session: its identity, its message history
// and the request/response lifecycle against the backend chat endpoint.
// At most one request is outstanding at a time; a submit while a request
// is pending is ignored rather than queued.
type ChatUsecase struct {
	chat        repo.ChatRepo
	transcripts repo.TranscriptRepo // optional, nil disables persistence
	userName    string
	timeout     time.Duration

	mu      sync.Mutex
	session *domain.ChatSession
	pending bool

	now func() time.Time
}

// NewChatUsecase creates a new chat usecase. transcripts may be nil.
func NewChatUsecase(chat repo.ChatRepo, transcripts repo.TranscriptRepo, userName string, timeout time.Duration) *ChatUsecase {
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	return &ChatUsecase{
		chat:        chat,
		transcripts: transcripts,
		userName:    userName,
		timeout:     timeout,
		now:         time.Now,
	}
}

// Submit sends one operator message to the agent and returns the updated
// transcript. Blank input and submits while a request is pending are
// ignored. The user message is appended optimistically before the
// request is issued and is never rolled back; on any failure the
// returned error wraps domain.ErrChatFailed and no assistant message is
// appended.
func (uc *ChatUsecase) Submit(ctx context.Context, text string) ([]domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return uc.Transcript(), nil
	}

	uc.mu.Lock()
	session := uc.ensureSession()
	if uc.pending {
		transcript := session.Transcript()
		uc.mu.Unlock()
		return transcript, nil
	}
	session.AppendUser(text)
	uc.persist(ctx, session.ID, domain.ChatMessage{Role: domain.RoleUser, Content: text})
	sessionID := session.ID
	uc.pending = true
	uc.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.chat.Send(reqCtx, repo.ChatRequest{
		Message:   text,
		SessionID: sessionID,
		UserName:  uc.userName,
	})

	uc.mu.Lock()
	defer uc.mu.Unlock()

	// A reset may have replaced the session while the request was in
	// flight; the stale response belongs to the old session and is
	// discarded. The pending flag now tracks the new session, so it is
	// left alone.
	if uc.session.ID != sessionID {
		return uc.session.Transcript(), nil
	}
	uc.pending = false

	if err != nil {
		return uc.session.Transcript(), fmt.Errorf("%w: %v", domain.ErrChatFailed, err)
	}

	uc.session.AppendAssistant(reply)
	uc.persist(ctx, sessionID, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})
	return uc.session.Transcript(), nil
}

// Reset clears the message history and regenerates the session id from
// the current wall-clock time. A request still in flight for the old
// session will have its response discarded on arrival.
func (uc *ChatUsecase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session = domain.NewChatSession(uc.now())
	uc.pending = false
}

// SessionID returns the current session id, creating the session on
// first use
func (uc *ChatUsecase) SessionID() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ensureSession().ID
}

// Transcript returns a copy of the current message history
func (uc *ChatUsecase) Transcript() []domain.ChatMessage {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ensureSession().Transcript()
}

// ensureSession lazily creates the session. Callers must hold uc.mu.
func (uc *ChatUsecase) ensureSession() *domain.ChatSession {
	if uc.session == nil {
		uc.session = domain.NewChatSession(uc.now())
	}
	return uc.session
}

// persist mirrors a message to the transcript store, best effort.
// Callers must hold uc.mu.
func (uc *ChatUsecase) persist(ctx context.Context, sessionID string, msg domain.ChatMessage) {
	if uc.transcripts == nil {
		return
	}
	if err := uc.transcripts.Append(ctx, sessionID, msg); err != nil {
		fmt.Printf("[Chat] Failed to persist message: %v\n", err)
	}
}
