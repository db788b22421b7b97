package domain

import (
	"testing"
	"time"
)

func TestNewChatSession_IDFormat(t *testing.T) {
	at := time.Date(2025, 1, 15, 9, 30, 45, 999000000, time.UTC)
	session := NewChatSession(at)

	if session.ID != "web-20250115093045" {
		t.Errorf("Unexpected session id: %q", session.ID)
	}
	if len(session.Messages) != 0 {
		t.Errorf("Expected empty history, got %d messages", len(session.Messages))
	}

	// Same second yields the same id; accepted edge case
	other := NewChatSession(at.Add(500 * time.Millisecond))
	if other.ID != session.ID {
		t.Errorf("Expected identical ids within one second, got %q and %q", session.ID, other.ID)
	}
}

func TestChatSession_AppendOrder(t *testing.T) {
	session := NewChatSession(time.Now())
	session.AppendUser("hello")
	session.AppendAssistant("hi")
	session.AppendUser("book me in")

	if len(session.Messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(session.Messages))
	}
	want := []Role{RoleUser, RoleAssistant, RoleUser}
	for i, role := range want {
		if session.Messages[i].Role != role {
			t.Errorf("Message %d: expected role %s, got %s", i, role, session.Messages[i].Role)
		}
	}
}

func TestChatSession_TranscriptIsACopy(t *testing.T) {
	session := NewChatSession(time.Now())
	session.AppendUser("hello")

	transcript := session.Transcript()
	transcript[0].Content = "mutated"

	if session.Messages[0].Content != "hello" {
		t.Error("Expected transcript mutation not to affect session state")
	}
}
