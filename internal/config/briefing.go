package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/anjali/pkg/log"
)

type BriefingConfig struct {
	WeatherAPIKey  string        `env:"WEATHER_API_KEY"`
	WeatherBaseURL string        `env:"ANJALI_WEATHER_URL" envDefault:"http://api.weatherapi.com/v1"`
	City           string        `env:"ANJALI_CITY" envDefault:"Jalandhar"`
	QuoteBaseURL   string        `env:"ANJALI_QUOTE_URL" envDefault:"https://zenquotes.io"`
	Timeout        time.Duration `env:"ANJALI_BRIEFING_TIMEOUT" envDefault:"5s"`
}

func NewBriefingConfig(ctx context.Context) *BriefingConfig {
	c := &BriefingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Briefing config")
	}
	return c
}
