package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "role prefix stripped and first line kept",
			raw:  "Chatbot: Sure, happy to help!\nExtra line",
			want: "Sure, happy to help!",
		},
		{
			name: "leading whitespace trimmed",
			raw:  "   \n  Nice to meet you.",
			want: "Nice to meet you.",
		},
		{
			name: "multi line without prefix keeps first line",
			raw:  "First thought.\nSecond thought.",
			want: "First thought.",
		},
		{
			name: "plain reply untouched",
			raw:  "Just a normal answer",
			want: "Just a normal answer",
		},
		{
			name: "empty output substituted",
			raw:  "",
			want: Clarification,
		},
		{
			name: "whitespace only substituted",
			raw:  "  \n\t ",
			want: Clarification,
		},
		{
			name: "single character substituted",
			raw:  "K",
			want: Clarification,
		},
		{
			name: "prefix leaving nothing substituted",
			raw:  "Chatbot:",
			want: Clarification,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostProcess(tt.raw))
		})
	}
}
