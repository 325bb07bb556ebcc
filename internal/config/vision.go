package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/anjali/pkg/log"
)

type VisionConfig struct {
	Provider string        `env:"ANJALI_VISION_PROVIDER" envDefault:"openrouter"`
	Model    string        `env:"ANJALI_VISION_MODEL" envDefault:"google/gemini-2.0-flash-exp:free"`
	BaseURL  string        `env:"ANJALI_VISION_BASE_URL"`
	APIKey   string        `env:"ANJALI_VISION_API_KEY"`
	Prompt   string        `env:"ANJALI_VISION_PROMPT" envDefault:"Describe this image in one short sentence."`
	Timeout  time.Duration `env:"ANJALI_VISION_TIMEOUT" envDefault:"30s"`
}

func NewVisionConfig(ctx context.Context) *VisionConfig {
	c := &VisionConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Vision config")
	}
	return c
}
