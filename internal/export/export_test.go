package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbuddy/internal/memory"
)

func testTurns() []memory.Turn {
	ts := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	return []memory.Turn{
		{Role: memory.RoleUser, Content: "hello", Timestamp: ts},
		{Role: memory.RoleAssistant, Content: "Hello! How can I help you today?", Timestamp: ts.Add(time.Second)},
	}
}

func TestConversationExport(t *testing.T) {
	e := NewExporter()
	e.startedAt = time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	e.now = func() time.Time {
		return time.Date(2026, 8, 30, 14, 30, 5, 0, time.UTC)
	}

	conv := e.Conversation(testTurns())

	assert.NotEmpty(t, conv.Metadata.SessionID)
	assert.Equal(t, 2, conv.Metadata.MessageCount)
	assert.Equal(t, "30m5s", conv.Metadata.SessionDuration)
	assert.Equal(t, "2026-08-30T14:30:05Z", conv.Metadata.SavedAt)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "You", conv.Messages[0].Sender)
	assert.True(t, conv.Messages[0].IsUser)
	assert.Equal(t, "Chatbot", conv.Messages[1].Sender)
	assert.False(t, conv.Messages[1].IsUser)
	assert.False(t, conv.Messages[1].IsError)
}

func TestConversationExportEmpty(t *testing.T) {
	e := NewExporter()

	conv := e.Conversation(nil)
	assert.Equal(t, 0, conv.Metadata.MessageCount)
	assert.Empty(t, conv.Messages)
}

func TestTextExport(t *testing.T) {
	e := NewExporter()

	text := e.Text(testTurns())
	assert.Equal(t, "[14:30:00] You: hello\n[14:30:01] Chatbot: Hello! How can I help you today?\n", text)
}
