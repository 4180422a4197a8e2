package models

import "time"

// Roles recognized in a conversation. Anything else is ignored by the
// prompt formatter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamEvent is one decoded unit of a streaming completion. Elapsed is
// the wall-clock time since the completion request was initiated.
type StreamEvent struct {
	Text    string
	Elapsed time.Duration
}

// FirstSystem returns the first encountered message with role 'system'
func FirstSystem(msgs []Message) (Message, bool) {
	for _, msg := range msgs {
		if msg.Role == RoleSystem {
			return msg, true
		}
	}
	return Message{}, false
}

// LastUser returns the last encountered message with role 'user'
func LastUser(msgs []Message) (Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return msgs[i], true
		}
	}
	return Message{}, false
}
