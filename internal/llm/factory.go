package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/hanzidrill/internal/store"
)

// ErrNotConfigured is returned by NewProvider when no provider is selected
// and none could be discovered.
var ErrNotConfigured = errors.New("llm: no provider configured")

// NewProvider builds the configured provider wrapped as
// caller -> retry -> logging -> provider. A nil events repo disables
// request recording.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo, logger *slog.Logger) (Provider, error) {
	if !cfg.Discover() {
		return nil, ErrNotConfigured
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, events, logger), cfg.Retry, logger), nil
}
