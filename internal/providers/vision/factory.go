package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

var ErrDisabled = errors.New("image captioning is disabled")

// disabled always fails, so callers fall back to their placeholder caption.
type disabled struct{}

func (disabled) Caption(context.Context, []byte, string) (string, error) {
	return "", ErrDisabled
}

// NewCaptioner builds the captioner for cfg. Missing keys fall back to the
// matching LLM provider key.
func NewCaptioner(ctx context.Context, cfg *config.VisionConfig, llmCfg core.ProviderConfig) (core.Captioner, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting image captioner")

	key := func(fallback string) string {
		if cfg.APIKey != "" {
			return cfg.APIKey
		}
		return fallback
	}
	baseURL := func(fallback string) string {
		if cfg.BaseURL != "" {
			return cfg.BaseURL
		}
		return fallback
	}

	switch cfg.Provider {
	case "", "none":
		return disabled{}, nil
	case "openrouter":
		return NewOpenAICaptioner(baseURL("https://openrouter.ai/api"), key(llmCfg.GetOpenRouterAPIKey()),
			cfg.Model, cfg.Prompt, cfg.Timeout, map[string]string{
				"HTTP-Referer": core.AppRepositoryURL,
				"X-Title":      core.AppName,
			}), nil
	case "openai":
		return NewOpenAICaptioner(baseURL("https://api.openai.com"), key(llmCfg.GetOpenAIAPIKey()),
			cfg.Model, cfg.Prompt, cfg.Timeout, nil), nil
	case "ollama":
		return NewOpenAICaptioner(baseURL(llmCfg.GetOllamaBaseURL()), key(llmCfg.GetOllamaAPIKey()),
			cfg.Model, cfg.Prompt, cfg.Timeout, nil), nil
	case "custom":
		return NewOpenAICaptioner(baseURL(llmCfg.GetCustomOpenAIBaseURL()), key(llmCfg.GetCustomOpenAIAPIKey()),
			cfg.Model, cfg.Prompt, cfg.Timeout, nil), nil
	case "gemini":
		return NewGeminiCaptioner(ctx, key(llmCfg.GetGeminiAPIKey()), cfg.Model, cfg.Prompt)
	default:
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
}
