package config

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/anjali/pkg/log"
)

type LLMConfig struct {
	Provider    string        `env:"ANJALI_LLM_PROVIDER" envDefault:"openrouter"`
	Model       string        `env:"ANJALI_LLM_MODEL" envDefault:"mistralai/mistral-7b-instruct:free"`
	Temperature float64       `env:"ANJALI_LLM_TEMPERATURE" envDefault:"0.8"`
	MaxTokens   int           `env:"ANJALI_LLM_MAX_TOKENS" envDefault:"500"`
	Timeout     time.Duration `env:"ANJALI_LLM_TIMEOUT" envDefault:"60s"`

	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey     string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey        string `env:"GEMINI_API_KEY"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`

	mu sync.RWMutex
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c, err := ParseLLMConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func ParseLLMConfig() (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *LLMConfig) GetProvider() string {
	return c.Provider
}

func (c *LLMConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel switches the model for the current process only.
func (c *LLMConfig) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("model name is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
	return nil
}

func (c *LLMConfig) GetTemperature() float64 {
	return c.Temperature
}

func (c *LLMConfig) GetMaxTokens() int {
	return c.MaxTokens
}

func (c *LLMConfig) GetTimeout() time.Duration {
	return c.Timeout
}

func (c *LLMConfig) GetOpenRouterAPIKey() string {
	return c.OpenRouterAPIKey
}

func (c *LLMConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c *LLMConfig) GetAnthropicAPIKey() string {
	return c.AnthropicAPIKey
}

func (c *LLMConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

func (c *LLMConfig) GetOllamaBaseURL() string {
	return c.OllamaBaseURL
}

func (c *LLMConfig) GetOllamaAPIKey() string {
	return c.OllamaAPIKey
}

func (c *LLMConfig) GetCustomOpenAIBaseURL() string {
	return c.CustomOpenAIBaseURL
}

func (c *LLMConfig) GetCustomOpenAIAPIKey() string {
	return c.CustomOpenAIAPIKey
}
