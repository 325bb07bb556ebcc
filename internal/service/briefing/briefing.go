package briefing

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
	"golang.org/x/sync/errgroup"
)

const (
	header          = "Good morning! Here's your daily briefing:"
	weatherUnset    = "Weather information isn't set up."
	weatherFailed   = "Sorry, I couldn't fetch the weather right now."
	quoteFailed     = "Let's make today a great day!"
	defaultDeadline = 5 * time.Second
)

// Briefing composes the two-line daily briefing. Either collaborator may
// be nil, in which case its fallback sentence is used.
type Briefing struct {
	weather core.WeatherProvider
	quotes  core.QuoteProvider
	turns   core.ConversationsRepository
	city    string
	timeout time.Duration
}

type Options struct {
	City    string
	Timeout time.Duration
}

func NewBriefing(
	weather core.WeatherProvider,
	quotes core.QuoteProvider,
	turns core.ConversationsRepository,
	opts Options,
) *Briefing {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultDeadline
	}
	return &Briefing{
		weather: weather,
		quotes:  quotes,
		turns:   turns,
		city:    opts.City,
		timeout: opts.Timeout,
	}
}

// Compose fetches weather and quote concurrently. Collaborator failures
// never surface as errors.
func (b *Briefing) Compose(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var weatherLine, quoteLine string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		weatherLine = b.weatherLine(gctx)
		return nil
	})
	g.Go(func() error {
		quoteLine = b.quoteLine(gctx)
		return nil
	})
	_ = g.Wait()

	return fmt.Sprintf("%s\n\n- **Weather**: %s\n- **Inspiration**: %s", header, weatherLine, quoteLine)
}

// Deliver composes the briefing and records it as an assistant turn.
func (b *Briefing) Deliver(ctx context.Context, mood core.Mood) (string, error) {
	text := b.Compose(ctx)
	if b.turns == nil {
		return text, nil
	}

	_, err := b.turns.AddTurn(ctx, core.ConversationTurn{
		Role:    core.RoleAssistant,
		Content: text,
		Mood:    mood,
	})
	if err != nil {
		return text, fmt.Errorf("persist briefing: %w", err)
	}
	return text, nil
}

func (b *Briefing) weatherLine(ctx context.Context) string {
	if b.weather == nil || b.city == "" {
		return weatherUnset
	}

	w, err := b.weather.CurrentWeather(ctx, b.city)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("city", b.city).Msg("weather fetch failed")
		return weatherFailed
	}
	return FormatWeather(w)
}

func (b *Briefing) quoteLine(ctx context.Context) string {
	if b.quotes == nil {
		return quoteFailed
	}
	q, err := b.quotes.RandomQuote(ctx)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("quote fetch failed")
		return quoteFailed
	}
	return FormatQuote(q)
}

func FormatWeather(w core.Weather) string {
	return fmt.Sprintf("The weather in %s is currently %.1f°C and feels like %s.", w.City, w.TempC, w.Condition)
}

func FormatQuote(q core.Quote) string {
	return fmt.Sprintf("Quote of the day: \"%s\" - %s", q.Text, q.Author)
}
