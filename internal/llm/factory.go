package llm

import (
	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms/huggingface"
	"github.com/tmc/langchaingo/llms/openai"

	"chatbuddy/internal/config"
)

// Providers selectable through MODEL_PROVIDER.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderNone        = "none"
)

// NewGateway builds the gateway matching the configured provider.
// Missing credentials degrade to the unavailable gateway rather than
// failing startup.
func NewGateway(cfg *config.Config) (Gateway, error) {
	switch cfg.ModelProvider {
	case ProviderHuggingFace:
		if cfg.HuggingFaceToken == "" {
			return Unavailable{}, nil
		}
		model, err := huggingface.New(
			huggingface.WithToken(cfg.HuggingFaceToken),
			huggingface.WithModel(cfg.HuggingFaceModel),
		)
		if err != nil {
			return nil, errors.Wrap(err, "initializing hugging face model")
		}
		return NewHostedGateway(model, cfg.ModelMaxAttempts, cfg.ModelRetryBackoff), nil

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return Unavailable{}, nil
		}
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.OpenAIModel),
		)
		if err != nil {
			return nil, errors.Wrap(err, "initializing openai model")
		}
		return NewHostedGateway(model, cfg.ModelMaxAttempts, cfg.ModelRetryBackoff), nil

	case ProviderNone:
		return Unavailable{}, nil
	}

	return nil, errors.Errorf("unknown model provider %q", cfg.ModelProvider)
}
