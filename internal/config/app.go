package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/anjali/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ANJALI_RUNTIME_PATH" envDefault:".anjali"`
	DBPath      string `env:"ANJALI_DB_PATH"`
	VectorDir   string `env:"ANJALI_VECTOR_DIR"`

	PersonaName string `env:"ANJALI_PERSONA_NAME" envDefault:"Anjali"`
	DefaultMood string `env:"ANJALI_DEFAULT_MOOD" envDefault:"friendly"`

	// Context Management
	ContextWindowSize  int `env:"ANJALI_CONTEXT_WINDOW" envDefault:"10"`
	RecallLimit        int `env:"ANJALI_RECALL_LIMIT" envDefault:"3"`
	HistoryTokenBudget int `env:"ANJALI_HISTORY_TOKEN_BUDGET" envDefault:"0"`

	// Transport Flags
	EnableTelegram bool   `env:"ANJALI_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool   `env:"ANJALI_ENABLE_CLI" envDefault:"true"`
	EnableHTTP     bool   `env:"ANJALI_ENABLE_HTTP" envDefault:"false"`
	HTTPAddr       string `env:"ANJALI_HTTP_ADDR" envDefault:"127.0.0.1:8501"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func (c *AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c *AppConfig) GetDatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.RuntimePath, "anjali_memory.db")
}

func (c *AppConfig) GetVectorDir() string {
	if c.VectorDir != "" {
		return c.VectorDir
	}
	return filepath.Join(c.RuntimePath, "vector_db")
}

func (c *AppConfig) GetPersonaName() string {
	return c.PersonaName
}

func (c *AppConfig) GetDefaultMood() string {
	return c.DefaultMood
}

func (c *AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

func (c *AppConfig) GetRecallLimit() int {
	return c.RecallLimit
}

func (c *AppConfig) GetHistoryTokenBudget() int {
	return c.HistoryTokenBudget
}

func (c *AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c *AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}

func (c *AppConfig) IsHTTPSelected() bool {
	return c.EnableHTTP
}
