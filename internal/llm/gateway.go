// Package llm wraps hosted text-generation backends behind a gateway
// that applies per-attempt timeouts, bounded retry and response
// post-processing.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// GenerationConfig enumerates the sampling knobs passed to the model
// on every attempt. Timeout bounds a single attempt, not the whole
// retry loop.
type GenerationConfig struct {
	MaxNewTokens      int
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
	StopSequences     []string
	Timeout           time.Duration
}

// DefaultGenerationConfig returns the sampling defaults used by the
// chat pipeline.
func DefaultGenerationConfig(timeout time.Duration) GenerationConfig {
	return GenerationConfig{
		MaxNewTokens:      150,
		Temperature:       0.8,
		TopP:              0.95,
		RepetitionPenalty: 1.2,
		StopSequences:     []string{"\nUser:", "\nChatbot:", "<|endoftext|>"},
		Timeout:           timeout,
	}
}

// Gateway issues generation calls against a model backend.
type Gateway interface {
	// Generate produces a post-processed reply for the prompt.
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
	// Available reports whether a backend is actually configured.
	Available() bool
}

// ErrNotConfigured is returned when no model backend is configured.
var ErrNotConfigured = errors.New("model backend not configured")

// Attempt outcomes.
const (
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

// Attempt records one generation try. Attempts live only for the
// duration of a single Generate call.
type Attempt struct {
	Number  int
	Outcome string
	Err     error
}

// ExhaustedError reports that every attempt failed. LastErr carries
// the detail of the final attempt.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Unavailable is the gateway used when no backend is configured. It
// fails fast so the caller can pick an error response or a rule-based
// fallback.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, string, GenerationConfig) (string, error) {
	return "", ErrNotConfigured
}

func (Unavailable) Available() bool { return false }
