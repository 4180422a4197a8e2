package prompt

import (
	"testing"

	"github.com/melkersson/lais/pkg/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		msgs []models.Message
		want string
	}{
		{
			name: "system and user",
			msgs: []models.Message{
				{Role: "system", Content: "S"},
				{Role: "user", Content: "U"},
			},
			want: "<|system|>S<|end|><|user|>U<|end|><|assistant|>",
		},
		{
			name: "user only",
			msgs: []models.Message{
				{Role: "user", Content: "U"},
			},
			want: "<|user|>U<|end|><|assistant|>",
		},
		{
			name: "system only omits assistant cue",
			msgs: []models.Message{
				{Role: "system", Content: "S"},
			},
			want: "<|system|>S<|end|>",
		},
		{
			name: "last user message wins",
			msgs: []models.Message{
				{Role: "user", Content: "first"},
				{Role: "assistant", Content: "ignored"},
				{Role: "user", Content: "last"},
			},
			want: "<|user|>last<|end|><|assistant|>",
		},
		{
			name: "first system message wins",
			msgs: []models.Message{
				{Role: "system", Content: "first"},
				{Role: "system", Content: "second"},
				{Role: "user", Content: "U"},
			},
			want: "<|system|>first<|end|><|user|>U<|end|><|assistant|>",
		},
		{
			name: "system after user still leads",
			msgs: []models.Message{
				{Role: "user", Content: "U"},
				{Role: "system", Content: "S"},
			},
			want: "<|system|>S<|end|><|user|>U<|end|><|assistant|>",
		},
		{
			name: "assistant messages are ignored",
			msgs: []models.Message{
				{Role: "assistant", Content: "A"},
			},
			want: "",
		},
		{
			name: "empty input",
			msgs: []models.Message{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.msgs); got != tt.want {
				t.Fatalf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStopTokens(t *testing.T) {
	got := StopTokens()
	want := []string{"<|endoftext|>", "<|end|>"}
	if len(got) != len(want) {
		t.Fatalf("StopTokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("StopTokens()[%v] = %q, want %q", i, got[i], want[i])
		}
	}
}
