package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetVectorDir() string
	GetPersonaName() string
	GetDefaultMood() string
	GetContextWindowSize() int
	GetRecallLimit() int
	GetHistoryTokenBudget() int
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	SetModel(model string) error
	GetTemperature() float64
	GetMaxTokens() int
	GetTimeout() time.Duration
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetGeminiAPIKey() string
	GetOllamaAPIKey() string
	GetOllamaBaseURL() string
	GetCustomOpenAIBaseURL() string
	GetCustomOpenAIAPIKey() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
