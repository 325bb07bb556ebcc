package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/anjali/pkg/log"
)

type SpeechConfig struct {
	Enabled  bool          `env:"ANJALI_SPEECH_ENABLED" envDefault:"false"`
	BaseURL  string        `env:"ANJALI_SPEECH_BASE_URL" envDefault:"https://api.openai.com"`
	APIKey   string        `env:"ANJALI_SPEECH_API_KEY"`
	STTModel string        `env:"ANJALI_STT_MODEL" envDefault:"whisper-1"`
	TTSModel string        `env:"ANJALI_TTS_MODEL" envDefault:"tts-1"`
	Voice    string        `env:"ANJALI_TTS_VOICE" envDefault:"nova"`
	Language string        `env:"ANJALI_SPEECH_LANGUAGE" envDefault:"en"`
	Timeout  time.Duration `env:"ANJALI_SPEECH_TIMEOUT" envDefault:"30s"`
}

func NewSpeechConfig(ctx context.Context) *SpeechConfig {
	c := &SpeechConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Speech config")
	}
	return c
}
