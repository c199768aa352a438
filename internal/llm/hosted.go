package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Model is the minimal generation surface the gateway needs. Any
// langchaingo LLM satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// HostedGateway calls a hosted model with bounded retry. Each attempt
// gets its own timeout and a fixed backoff separates attempts, so a
// full Generate call is bounded by maxAttempts*(timeout+backoff).
type HostedGateway struct {
	model       Model
	maxAttempts int
	backoff     time.Duration
}

func NewHostedGateway(model Model, maxAttempts int, backoff time.Duration) *HostedGateway {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &HostedGateway{model: model, maxAttempts: maxAttempts, backoff: backoff}
}

func (g *HostedGateway) Available() bool { return g.model != nil }

func (g *HostedGateway) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	if g.model == nil {
		return "", ErrNotConfigured
	}

	var last Attempt
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		raw, err := g.generateOnce(ctx, prompt, cfg)
		if err == nil {
			return PostProcess(raw), nil
		}

		last = Attempt{Number: attempt, Outcome: OutcomeError, Err: err}
		if errors.Is(err, context.DeadlineExceeded) {
			last.Outcome = OutcomeTimeout
		}
		log.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", g.maxAttempts).
			Str("outcome", last.Outcome).
			Msg("generation attempt failed")

		if attempt == g.maxAttempts {
			break
		}
		select {
		case <-time.After(g.backoff):
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "waiting to retry")
		}
	}

	return "", &ExhaustedError{Attempts: g.maxAttempts, LastErr: last.Err}
}

type generation struct {
	text string
	err  error
}

// defaultAttemptTimeout keeps a single attempt bounded when the
// caller leaves GenerationConfig.Timeout unset.
const defaultAttemptTimeout = 30 * time.Second

// generateOnce bounds a single model call. The call runs in its own
// goroutine so a backend that ignores cancellation still produces a
// timeout outcome here; a result arriving after expiry is discarded.
func (g *HostedGateway) generateOnce(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan generation, 1)
	go func() {
		resp, err := g.model.GenerateContent(attemptCtx,
			[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
			llms.WithMaxTokens(cfg.MaxNewTokens),
			llms.WithTemperature(cfg.Temperature),
			llms.WithTopP(cfg.TopP),
			llms.WithRepetitionPenalty(cfg.RepetitionPenalty),
			llms.WithStopWords(cfg.StopSequences),
		)
		if err != nil {
			done <- generation{err: err}
			return
		}
		if len(resp.Choices) == 0 {
			done <- generation{err: errors.New("backend returned no choices")}
			return
		}
		done <- generation{text: resp.Choices[0].Content}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-attemptCtx.Done():
		return "", attemptCtx.Err()
	}
}
