// Package fallback provides rule-based canned replies used when no
// model backend is available or every generation attempt fails.
package fallback

import (
	"strings"
	"unicode"
)

// categories are checked in priority order; the first keyword hit
// wins. Single-word keywords match on word boundaries, phrases match
// as substrings.
var categories = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"hello", "hey", "hi", "good morning", "good evening"},
		reply:    "Hello! How can I help you today?",
	},
	{
		keywords: []string{"how are you", "how's it going", "how are things"},
		reply:    "I'm doing well, thank you for asking! How can I help you?",
	},
	{
		keywords: []string{"goodbye", "bye", "see you", "farewell"},
		reply:    "Goodbye! It was nice chatting with you.",
	},
	{
		keywords: []string{"thank", "thanks", "appreciate"},
		reply:    "You're welcome! Is there anything else I can help with?",
	},
	{
		keywords: []string{"help", "what can you do", "assist"},
		reply:    "I can chat about the weather, tell jokes, give you the time, or just talk. What would you like?",
	},
}

const defaultReply = "I see. Tell me more about that."

// Responder maps messages to canned replies by keyword category.
type Responder struct{}

func NewResponder() *Responder {
	return &Responder{}
}

// Respond is total: any input, including the empty string, yields a
// non-empty canned reply.
func (r *Responder) Respond(text string) string {
	lower := strings.ToLower(text)
	words := wordSet(lower)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if matches(lower, words, kw) {
				return c.reply
			}
		}
	}
	return defaultReply
}

func matches(lower string, words map[string]bool, keyword string) bool {
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(lower, keyword)
	}
	return words[keyword]
}

func wordSet(lower string) map[string]bool {
	fields := strings.FieldsFunc(lower, func(c rune) bool {
		return !unicode.IsLetter(c) && c != '\''
	})
	words := make(map[string]bool, len(fields))
	for _, w := range fields {
		words[w] = true
	}
	return words
}
