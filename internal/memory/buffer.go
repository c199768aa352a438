// Package memory holds the short-term conversation state that is fed
// to the model backend as context.
package memory

import (
	"strings"
	"sync"
	"time"
)

// Roles a turn can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in the conversation, immutable once
// appended.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultMaxTurns is used when no pair bound is configured.
const DefaultMaxTurns = 10

// Buffer is a bounded FIFO of conversation turns. It retains at most
// maxTurns user/assistant pairs; when the bound is exceeded the two
// oldest turns are evicted together so the head keeps alternating
// roles. All mutation is serialized behind the mutex.
type Buffer struct {
	mu           sync.Mutex
	systemPrompt string
	maxTurns     int
	turns        []Turn
}

func NewBuffer(systemPrompt string, maxTurns int) *Buffer {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Buffer{systemPrompt: systemPrompt, maxTurns: maxTurns}
}

// Append records a turn, evicting the oldest pair when the bound is
// exceeded. It never fails.
func (b *Buffer) Append(role, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.turns = append(b.turns, Turn{Role: role, Content: content, Timestamp: time.Now()})
	if len(b.turns) > 2*b.maxTurns {
		b.turns = append(b.turns[:0], b.turns[2:]...)
	}
}

// Render flattens the retained turns into the transcript used as the
// model prompt: an optional system line followed by one
// "User: ..." or "Chatbot: ..." line per turn, trailing whitespace
// trimmed.
func (b *Buffer) Render(includeSystemPrompt bool) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sb strings.Builder
	if includeSystemPrompt && b.systemPrompt != "" {
		sb.WriteString("System: ")
		sb.WriteString(b.systemPrompt)
		sb.WriteByte('\n')
	}
	for _, t := range b.turns {
		sb.WriteString(roleLabel(t.Role))
		sb.WriteString(": ")
		sb.WriteString(t.Content)
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}

// Snapshot returns a copy of the retained turns; mutating it does not
// affect the buffer.
func (b *Buffer) Snapshot() []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Turn, len(b.turns))
	copy(out, b.turns)
	return out
}

// Len reports the number of retained turns.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.turns)
}

// Reset clears all turns. The system prompt is kept.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turns = nil
}

func roleLabel(role string) string {
	if role == RoleAssistant {
		return "Chatbot"
	}
	return "User"
}
