package llm

import "strings"

// Replies shorter than this many runes are replaced with the
// clarification request.
const minReplyLength = 2

// Clarification is substituted when the model produces an empty or
// degenerate reply.
const Clarification = "I understand your message. Could you please provide more details?"

// PostProcess cleans raw model output: drops everything up to and
// including the first role-prefix delimiter ("Chatbot:"), keeps only
// the first line, and substitutes a clarification request for
// too-short replies.
func PostProcess(raw string) string {
	reply := strings.TrimSpace(raw)

	if idx := strings.Index(reply, ":"); idx >= 0 {
		reply = strings.TrimSpace(reply[idx+1:])
	}

	if idx := strings.IndexByte(reply, '\n'); idx >= 0 {
		reply = strings.TrimSpace(reply[:idx])
	}

	if len([]rune(reply)) < minReplyLength {
		return Clarification
	}
	return reply
}
