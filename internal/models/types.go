package models

// ChatRequest is the body accepted by POST /chat and by the NATS chat
// subject.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned for every chat request, success or failure.
// Reply always carries user-facing natural language; Error, when set,
// holds the machine-readable detail for diagnostics.
type ChatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// User-facing replies for failure responses.
const (
	ReplyNotJSON      = "Error: Request must be JSON"
	ReplyBlankMessage = "Please provide a message."
	ReplyUnavailable  = "I apologize, but my language model is currently unavailable. Please try again later."
	ReplyExhausted    = "I apologize, but I'm having trouble connecting to my language model. Please try again in a moment."
	ReplyInternal     = "I apologize, but I'm having trouble processing your message. Please try again."
)

// Error details reported alongside the replies above.
const (
	ErrorInvalidContentType = "Invalid content type"
	ErrorBlankMessage       = "Message is blank"
	ErrorNotConfigured      = "Model not configured"
)
