package core

import "context"

// AIProvider is the response generator.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
	Models(ctx context.Context) ([]Model, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Captioner interface {
	Caption(ctx context.Context, image []byte, mimeType string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (Weather, error)
}

type QuoteProvider interface {
	RandomQuote(ctx context.Context) (Quote, error)
}
