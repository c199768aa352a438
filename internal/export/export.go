// Package export serializes the retained conversation for download,
// mirroring the desktop client's save format.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"chatbuddy/internal/memory"
)

// Metadata describes the exported conversation.
type Metadata struct {
	SessionID       string `json:"session_id"`
	SavedAt         string `json:"saved_at"`
	MessageCount    int    `json:"message_count"`
	SessionDuration string `json:"session_duration"`
}

// Message is one exported turn.
type Message struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsUser    bool      `json:"is_user"`
	IsError   bool      `json:"is_error"`
}

// Conversation is the JSON export payload.
type Conversation struct {
	Metadata Metadata  `json:"metadata"`
	Messages []Message `json:"messages"`
}

// Exporter renders conversation snapshots. One exporter exists per
// serving process, so the session identity covers the whole run.
type Exporter struct {
	sessionID uuid.UUID
	startedAt time.Time
	now       func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{
		sessionID: uuid.New(),
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Conversation builds the JSON export payload for the turns.
func (e *Exporter) Conversation(turns []memory.Turn) Conversation {
	now := e.now()

	messages := make([]Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, Message{
			Sender:    senderFor(t.Role),
			Message:   t.Content,
			Timestamp: t.Timestamp,
			IsUser:    t.Role == memory.RoleUser,
		})
	}

	return Conversation{
		Metadata: Metadata{
			SessionID:       e.sessionID.String(),
			SavedAt:         now.Format(time.RFC3339),
			MessageCount:    len(turns),
			SessionDuration: now.Sub(e.startedAt).Round(time.Second).String(),
		},
		Messages: messages,
	}
}

// Text renders a plain-text transcript with timestamps.
func (e *Exporter) Text(turns []memory.Turn) string {
	var sb strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&sb, "[%s] %s: %s\n",
			t.Timestamp.Format("15:04:05"), senderFor(t.Role), t.Content)
	}
	return sb.String()
}

func senderFor(role string) string {
	if role == memory.RoleUser {
		return "You"
	}
	return "Chatbot"
}
