// Package chat orchestrates reply generation: intent short-circuit,
// conversation memory, model gateway and rule-based fallback.
package chat

import (
	"context"

	"github.com/rs/zerolog/log"

	"chatbuddy/internal/fallback"
	"chatbuddy/internal/intents"
	"chatbuddy/internal/llm"
	"chatbuddy/internal/memory"
	"chatbuddy/internal/nlu"
)

// Mode selects the total-failure policy.
type Mode string

const (
	// ModeStrict surfaces gateway failures to the caller.
	ModeStrict Mode = "strict"
	// ModeGraceful substitutes a rule-based reply on gateway failure.
	ModeGraceful Mode = "graceful"
)

// ParseMode maps a configured mode name to a Mode, defaulting to
// strict.
func ParseMode(s string) Mode {
	if s == string(ModeGraceful) {
		return ModeGraceful
	}
	return ModeStrict
}

// Pipeline produces one assistant reply per user message. All
// collaborators are injected at construction so the pipeline can be
// exercised without network access.
type Pipeline struct {
	resolver *nlu.Resolver
	handlers *intents.Registry
	buffer   *memory.Buffer
	gateway  llm.Gateway
	rules    *fallback.Responder
	genCfg   llm.GenerationConfig
	mode     Mode
}

func NewPipeline(
	resolver *nlu.Resolver,
	handlers *intents.Registry,
	buffer *memory.Buffer,
	gateway llm.Gateway,
	rules *fallback.Responder,
	genCfg llm.GenerationConfig,
	mode Mode,
) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		handlers: handlers,
		buffer:   buffer,
		gateway:  gateway,
		rules:    rules,
		genCfg:   genCfg,
		mode:     mode,
	}
}

// Reply produces the assistant reply for one user message. The
// message must already be validated non-blank by the transport.
//
// In strict mode gateway failures are returned to the caller:
// llm.ErrNotConfigured when no backend exists, llm.ExhaustedError
// after retries. In graceful mode both are replaced by a rule-based
// reply. A returned error means no assistant turn was recorded.
func (p *Pipeline) Reply(ctx context.Context, message string) (string, error) {
	result := p.resolver.Resolve(ctx, message)

	if result.Intent != nlu.IntentGeneral {
		reply, err := p.handlers.Handle(ctx, result.Intent, result.Entities)
		switch {
		case err != nil:
			log.Error().Err(err).Str("intent", result.Intent).
				Msg("intent handler failed, falling through to model")
		case reply != "":
			log.Info().Str("intent", result.Intent).Msg("intent handled")
			p.buffer.Append(memory.RoleUser, message)
			p.buffer.Append(memory.RoleAssistant, reply)
			return reply, nil
		}
	}

	if !p.gateway.Available() {
		if p.mode == ModeGraceful {
			return p.respondWithRules(message), nil
		}
		return "", llm.ErrNotConfigured
	}

	p.buffer.Append(memory.RoleUser, message)
	prompt := p.buffer.Render(true)

	reply, err := p.gateway.Generate(ctx, prompt, p.genCfg)
	if err != nil {
		if p.mode == ModeGraceful {
			log.Warn().Err(err).Msg("generation failed, substituting rule-based reply")
			reply = p.rules.Respond(message)
			p.buffer.Append(memory.RoleAssistant, reply)
			return reply, nil
		}
		return "", err
	}

	p.buffer.Append(memory.RoleAssistant, reply)
	return reply, nil
}

func (p *Pipeline) respondWithRules(message string) string {
	reply := p.rules.Respond(message)
	p.buffer.Append(memory.RoleUser, message)
	p.buffer.Append(memory.RoleAssistant, reply)
	return reply
}
