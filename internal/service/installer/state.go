package installer

import (
	"github.com/sandevgo/anjali/pkg/env"
)

// Settings is what the wizard collects. Empty fields are left out of the
// written .env so the config defaults apply.
type Settings struct {
	PersonaName string `env:"ANJALI_PERSONA_NAME"`
	DefaultMood string `env:"ANJALI_DEFAULT_MOOD"`

	Provider            string `env:"ANJALI_LLM_PROVIDER"`
	Model               string `env:"ANJALI_LLM_MODEL"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey     string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey        string `env:"GEMINI_API_KEY"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`

	City          string `env:"ANJALI_CITY"`
	WeatherAPIKey string `env:"WEATHER_API_KEY"`

	// Transport flags are strings so "false" is written explicitly.
	EnableCLI      string `env:"ANJALI_ENABLE_CLI"`
	EnableTelegram string `env:"ANJALI_ENABLE_TELEGRAM"`
	EnableHTTP     string `env:"ANJALI_ENABLE_HTTP"`

	TelegramToken   string `env:"TELEGRAM_TOKEN"`
	TelegramOwnerID string `env:"TELEGRAM_OWNER_ID"`

	Debug string `env:"ANJALI_DEBUG"`
}

type InstallState struct {
	Settings Settings
	Channel  string
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

// SetAPIKey stores key in the field the chosen provider reads.
func (s *InstallState) SetAPIKey(key string) {
	switch s.Settings.Provider {
	case "openrouter":
		s.Settings.OpenRouterAPIKey = key
	case "openai":
		s.Settings.OpenAIAPIKey = key
	case "anthropic":
		s.Settings.AnthropicAPIKey = key
	case "gemini":
		s.Settings.GeminiAPIKey = key
	case "ollama":
		s.Settings.OllamaAPIKey = key
	case "custom":
		s.Settings.CustomOpenAIAPIKey = key
	}
}

func (s *InstallState) Env() (string, error) {
	return env.MarshalEnv(&s.Settings)
}
