package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/repo"
)

// Mock implementations

type mockChatRepo struct {
	mu       sync.Mutex
	calls    int
	requests []repo.ChatRequest
	reply    string
	err      error

	// When set, Send blocks until release is closed and signals started
	started chan struct{}
	release chan struct{}
}

func (m *mockChatRepo) Send(ctx context.Context, req repo.ChatRequest) (string, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	started := m.started
	release := m.release
	m.mu.Unlock()

	if started != nil {
		close(started)
		m.mu.Lock()
		m.started = nil
		m.mu.Unlock()
	}
	if release != nil {
		<-release
	}
	return m.reply, m.err
}

func (m *mockChatRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockTranscriptRepo struct {
	mu       sync.Mutex
	appended map[string][]domain.ChatMessage
}

func (m *mockTranscriptRepo) Append(ctx context.Context, sessionID string, msg domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appended == nil {
		m.appended = make(map[string][]domain.ChatMessage)
	}
	m.appended[sessionID] = append(m.appended[sessionID], msg)
	return nil
}

func (m *mockTranscriptRepo) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appended[sessionID], nil
}

func (m *mockTranscriptRepo) Close() error { return nil }

// Tests

func TestSubmit_Success(t *testing.T) {
	chatRepo := &mockChatRepo{reply: "Booked for tomorrow at 3pm"}
	uc := NewChatUsecase(chatRepo, nil, "Dashboard User", time.Second)

	transcript, err := uc.Submit(context.Background(), "Book appointment tomorrow at 3pm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(transcript) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(transcript))
	}
	if transcript[0].Role != domain.RoleUser {
		t.Errorf("Expected user message first, got %s", transcript[0].Role)
	}
	if transcript[1].Role != domain.RoleAssistant || transcript[1].Content != "Booked for tomorrow at 3pm" {
		t.Errorf("Unexpected assistant message: %+v", transcript[1])
	}

	req := chatRepo.requests[0]
	if req.UserName != "Dashboard User" {
		t.Errorf("Expected user_name to be carried, got %q", req.UserName)
	}
	if req.SessionID != uc.SessionID() {
		t.Errorf("Expected session id %q, got %q", uc.SessionID(), req.SessionID)
	}
}

func TestSubmit_BlankInputIgnored(t *testing.T) {
	chatRepo := &mockChatRepo{}
	uc := NewChatUsecase(chatRepo, nil, "Dashboard User", time.Second)

	transcript, err := uc.Submit(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(transcript) != 0 {
		t.Errorf("Expected empty transcript, got %d messages", len(transcript))
	}
	if chatRepo.callCount() != 0 {
		t.Errorf("Expected no request for blank input, got %d", chatRepo.callCount())
	}
}

func TestSubmit_FailureKeepsUserMessage(t *testing.T) {
	chatRepo := &mockChatRepo{err: errors.New("status 500")}
	uc := NewChatUsecase(chatRepo, nil, "Dashboard User", time.Second)

	transcript, err := uc.Submit(context.Background(), "hello")
	if !errors.Is(err, domain.ErrChatFailed) {
		t.Fatalf("Expected ErrChatFailed, got %v", err)
	}

	if len(transcript) != 1 {
		t.Fatalf("Expected only the user message, got %d messages", len(transcript))
	}
	if transcript[0].Role != domain.RoleUser || transcript[0].Content != "hello" {
		t.Errorf("Unexpected message: %+v", transcript[0])
	}

	// The next submit proceeds normally
	chatRepo.err = nil
	chatRepo.reply = "hi"
	transcript, err = uc.Submit(context.Background(), "again")
	if err != nil {
		t.Fatalf("Unexpected error after failure: %v", err)
	}
	if len(transcript) != 3 {
		t.Errorf("Expected 3 messages, got %d", len(transcript))
	}
}

func TestSubmit_RejectedWhilePending(t *testing.T) {
	chatRepo := &mockChatRepo{
		reply:   "done",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := NewChatUsecase(chatRepo, nil, "Dashboard User", time.Minute)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = uc.Submit(context.Background(), "first")
	}()
	<-chatRepo.started

	transcript, err := uc.Submit(context.Background(), "second")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(transcript) != 1 {
		t.Errorf("Expected only the first user message, got %d", len(transcript))
	}
	if chatRepo.callCount() != 1 {
		t.Errorf("Expected a single in-flight request, got %d", chatRepo.callCount())
	}

	close(chatRepo.release)
	<-done

	transcript = uc.Transcript()
	if len(transcript) != 2 {
		t.Errorf("Expected first exchange only, got %d messages", len(transcript))
	}
}

func TestReset_NewSessionID(t *testing.T) {
	uc := NewChatUsecase(&mockChatRepo{reply: "ok"}, nil, "Dashboard User", time.Second)

	base := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	first := uc.SessionID()
	if first != "web-20250115093000" {
		t.Errorf("Unexpected session id format: %q", first)
	}

	if _, err := uc.Submit(context.Background(), "hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	uc.now = func() time.Time { return base.Add(time.Second) }
	uc.Reset()

	if uc.SessionID() == first {
		t.Error("Expected a new session id after reset")
	}
	if len(uc.Transcript()) != 0 {
		t.Error("Expected empty history after reset")
	}
}

func TestReset_DiscardsInFlightResponse(t *testing.T) {
	chatRepo := &mockChatRepo{
		reply:   "stale reply",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := NewChatUsecase(chatRepo, nil, "Dashboard User", time.Minute)

	done := make(chan []domain.ChatMessage, 1)
	go func() {
		transcript, _ := uc.Submit(context.Background(), "first")
		done <- transcript
	}()
	<-chatRepo.started

	uc.Reset()
	close(chatRepo.release)
	returned := <-done

	if len(returned) != 0 {
		t.Errorf("Expected the stale response to see the new empty session, got %d messages", len(returned))
	}
	if len(uc.Transcript()) != 0 {
		t.Errorf("Expected no messages in the new session, got %d", len(uc.Transcript()))
	}

	// The new session is idle and accepts a submit
	chatRepo.mu.Lock()
	chatRepo.started = nil
	chatRepo.release = nil
	chatRepo.reply = "fresh reply"
	chatRepo.mu.Unlock()

	transcript, err := uc.Submit(context.Background(), "second")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(transcript) != 2 || transcript[1].Content != "fresh reply" {
		t.Errorf("Unexpected transcript after reset: %+v", transcript)
	}
}

func TestSubmit_PersistsTranscript(t *testing.T) {
	transcripts := &mockTranscriptRepo{}
	uc := NewChatUsecase(&mockChatRepo{reply: "ok"}, transcripts, "Dashboard User", time.Second)

	if _, err := uc.Submit(context.Background(), "hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stored, _ := transcripts.History(context.Background(), uc.SessionID())
	if len(stored) != 2 {
		t.Fatalf("Expected 2 persisted messages, got %d", len(stored))
	}
	if stored[0].Role != domain.RoleUser || stored[1].Role != domain.RoleAssistant {
		t.Errorf("Unexpected persisted roles: %+v", stored)
	}
}
