package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware, together with the provider's ImageGenerator. The image
// generator is nil for providers without an image backend and is never
// retried.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, ImageGenerator, error) {
	var base Provider
	var images ImageGenerator
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		var p *OpenAIProvider
		p, err = NewOpenAIProvider(cfg.OpenAI)
		base, images = p, p
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		var p *GeminiProvider
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
		base, images = p, p
	case "mock":
		return NewMockProvider(), NewMockImageGenerator(), nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry, log)

	if images != nil {
		images = WithImageLogging(images, cfg.Provider, eventRepo, log)
	}

	return retried, images, nil
}
