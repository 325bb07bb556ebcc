package briefing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeather struct {
	w   core.Weather
	err error
}

func (f fakeWeather) CurrentWeather(_ context.Context, city string) (core.Weather, error) {
	if f.err != nil {
		return core.Weather{}, f.err
	}
	w := f.w
	w.City = city
	return w, nil
}

type fakeQuotes struct {
	q   core.Quote
	err error
}

func (f fakeQuotes) RandomQuote(context.Context) (core.Quote, error) {
	return f.q, f.err
}

type slowQuotes struct{}

func (slowQuotes) RandomQuote(ctx context.Context) (core.Quote, error) {
	<-ctx.Done()
	return core.Quote{}, ctx.Err()
}

type turnLog struct {
	turns []core.ConversationTurn
}

func (l *turnLog) AddTurn(_ context.Context, t core.ConversationTurn) (int64, error) {
	l.turns = append(l.turns, t)
	return int64(len(l.turns)), nil
}

func (l *turnLog) RecentTurns(context.Context, int) ([]core.ConversationTurn, error) {
	return l.turns, nil
}

func TestCompose(t *testing.T) {
	b := NewBriefing(
		fakeWeather{w: core.Weather{TempC: 28, Condition: "Partly cloudy"}},
		fakeQuotes{q: core.Quote{Text: "Stay curious.", Author: "Unknown"}},
		nil,
		Options{City: "Jalandhar"},
	)

	want := "Good morning! Here's your daily briefing:\n\n" +
		"- **Weather**: The weather in Jalandhar is currently 28.0°C and feels like Partly cloudy.\n" +
		"- **Inspiration**: Quote of the day: \"Stay curious.\" - Unknown"
	assert.Equal(t, want, b.Compose(context.Background()))
}

func TestCompose_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		weather core.WeatherProvider
		quotes  core.QuoteProvider
		city    string
		wantW   string
		wantQ   string
	}{
		{
			name:  "nothing configured",
			wantW: weatherUnset,
			wantQ: quoteFailed,
		},
		{
			name:    "no city",
			weather: fakeWeather{},
			quotes:  fakeQuotes{err: errors.New("down")},
			wantW:   weatherUnset,
			wantQ:   quoteFailed,
		},
		{
			name:    "both fail",
			weather: fakeWeather{err: errors.New("401")},
			quotes:  fakeQuotes{err: errors.New("down")},
			city:    "Pune",
			wantW:   weatherFailed,
			wantQ:   quoteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBriefing(tt.weather, tt.quotes, nil, Options{City: tt.city})
			out := b.Compose(context.Background())
			assert.Contains(t, out, "- **Weather**: "+tt.wantW)
			assert.Contains(t, out, "- **Inspiration**: "+tt.wantQ)
		})
	}
}

func TestCompose_Timeout(t *testing.T) {
	b := NewBriefing(nil, slowQuotes{}, nil, Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	out := b.Compose(context.Background())
	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, out, quoteFailed)
}

func TestDeliver_PersistsAssistantTurn(t *testing.T) {
	log := &turnLog{}
	b := NewBriefing(nil, fakeQuotes{q: core.Quote{Text: "Go.", Author: "Rob"}}, log, Options{})

	text, err := b.Deliver(context.Background(), core.MoodFunny)
	require.NoError(t, err)
	require.Len(t, log.turns, 1)
	assert.Equal(t, core.RoleAssistant, log.turns[0].Role)
	assert.Equal(t, text, log.turns[0].Content)
	assert.Equal(t, core.MoodFunny, log.turns[0].Mood)
}
