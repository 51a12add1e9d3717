// Package ai provides the uniform adapter over the generative AI providers
// used for text simplification and vocabulary translation.
package ai

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/snonux/leveltext/internal/level"
)

// Provider names accepted by the factory.
const (
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Adapter is the contract consumed by the leveling and labeling engines.
// Implementations translate transport and provider errors into ServiceError.
type Adapter interface {
	// Name returns the provider identity used in cache keys and error
	// attribution.
	Name() string

	// Simplify rewrites German text so it only uses vocabulary at or below
	// the target level. contextText optionally carries surrounding text so
	// a fragment is simplified coherently.
	Simplify(ctx context.Context, text string, target level.Level, contextText string) (string, error)

	// Translate renders a German lemma in the target language.
	// contextSentence optionally disambiguates the lemma.
	Translate(ctx context.Context, lemma, contextSentence, targetLanguage string) (string, error)

	// TranslateBatch translates several lemmas in one provider call.
	// Lemmas missing from the response are absent from the result map;
	// callers fall back to Translate for those.
	TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string // provider-specific model identifier, empty for default
	Timeout  time.Duration
}

// DefaultConfig returns an offline configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderNone,
		Timeout:  30 * time.Second,
	}
}

// New creates the adapter for the configured provider. Provider identity is
// decided here once; the engines never branch on it.
func New(ctx context.Context, cfg *Config) (Adapter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	switch cfg.Provider {
	case ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude: API key is required")
		}
		return newClaude(cfg), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini: API key is required")
		}
		return newGemini(ctx, cfg)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai: API key is required")
		}
		return newOpenAI(cfg), nil
	case ProviderNone, "":
		return NewOffline(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
