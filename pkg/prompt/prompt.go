// Package prompt flattens chat-style conversations into the single
// prompt string which Phi-family instruct models expect on the
// completions endpoint.
package prompt

import (
	"strings"

	"github.com/melkersson/lais/pkg/models"
)

// Delimiter tokens of the Phi instruct template.
const (
	SystemToken    = "<|system|>"
	UserToken      = "<|user|>"
	AssistantToken = "<|assistant|>"
	EndToken       = "<|end|>"
	EndOfTextToken = "<|endoftext|>"
)

// StopTokens returns the sequences at which generation should stop, so
// that the model does not continue past its own turn.
func StopTokens() []string {
	return []string{EndOfTextToken, EndToken}
}

// Format renders a conversation as '<|system|>S<|end|><|user|>U<|end|><|assistant|>'.
// Only the first system message and the last user message are consumed,
// always in that order regardless of their position in msgs. Messages
// with any other role are ignored, this client is single-turn. An empty
// conversation yields an empty string, and without a user message the
// trailing assistant cue is omitted.
func Format(msgs []models.Message) string {
	var sb strings.Builder
	if sysMsg, ok := models.FirstSystem(msgs); ok {
		sb.WriteString(SystemToken)
		sb.WriteString(sysMsg.Content)
		sb.WriteString(EndToken)
	}
	if usrMsg, ok := models.LastUser(msgs); ok {
		sb.WriteString(UserToken)
		sb.WriteString(usrMsg.Content)
		sb.WriteString(EndToken)
		sb.WriteString(AssistantToken)
	}
	return sb.String()
}
