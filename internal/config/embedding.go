package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/anjali/pkg/log"
)

// EmbeddingConfig selects the embedder behind the semantic store.
// "hash" works offline and needs no model.
type EmbeddingConfig struct {
	Provider   string `env:"ANJALI_EMBEDDING_PROVIDER" envDefault:"hash"`
	Model      string `env:"ANJALI_EMBEDDING_MODEL" envDefault:"nomic-embed-text"`
	Dimensions int    `env:"ANJALI_EMBEDDING_DIM" envDefault:"256"`
	BaseURL    string `env:"ANJALI_EMBEDDING_BASE_URL"`
	APIKey     string `env:"ANJALI_EMBEDDING_API_KEY"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return c
}
