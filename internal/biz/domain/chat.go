package domain

import "time"

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in a session transcript
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatSession holds the identity and message history for one operator's
// chat interaction. Messages grow strictly by append; only a full reset
// replaces the session.
type ChatSession struct {
	ID       string
	Messages []ChatMessage
}

// NewChatSession creates a session whose id is derived from the given
// wall-clock time at second precision. Two sessions created in the same
// second share an id; that edge case is accepted, not guarded.
func NewChatSession(t time.Time) *ChatSession {
	return &ChatSession{
		ID: "web-" + t.Format("20060102150405"),
	}
}

// AppendUser appends an operator message
func (s *ChatSession) AppendUser(content string) {
	s.Messages = append(s.Messages, ChatMessage{Role: RoleUser, Content: content})
}

// AppendAssistant appends an agent reply
func (s *ChatSession) AppendAssistant(content string) {
	s.Messages = append(s.Messages, ChatMessage{Role: RoleAssistant, Content: content})
}

// Transcript returns a copy of the message history so callers cannot
// mutate session state
func (s *ChatSession) Transcript() []ChatMessage {
	out := make([]ChatMessage, len(s.Messages))
	copy(out, s.Messages)
	return out
}
