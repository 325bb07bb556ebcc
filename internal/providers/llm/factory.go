package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

// NewProvider creates the response generator named by cfg.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	opts := Options{
		Temperature: cfg.GetTemperature(),
		MaxTokens:   cfg.GetMaxTokens(),
	}
	model := cfg.GetModel()

	switch cfg.GetProvider() {
	case "openai":
		return NewOpenAI(cfg.GetOpenAIAPIKey(), model, opts), nil
	case "anthropic":
		return NewAnthropic(cfg.GetAnthropicAPIKey(), model, opts), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), model, opts), nil
	case "ollama":
		return NewOllama(cfg.GetOllamaBaseURL(), cfg.GetOllamaAPIKey(), model, opts), nil
	case "custom":
		return NewCustomOpenAI(cfg.GetCustomOpenAIBaseURL(), cfg.GetCustomOpenAIAPIKey(), model, opts), nil
	case "gemini":
		return NewGemini(ctx, cfg.GetGeminiAPIKey(), model, opts)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
