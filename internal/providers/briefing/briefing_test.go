package briefing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "Jalandhar", r.URL.Query().Get("q"))
		assert.Equal(t, "no", r.URL.Query().Get("aqi"))
		w.Write([]byte(`{"current":{"temp_c":31.5,"condition":{"text":"Sunny"}}}`))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "secret", time.Second)
	assert.True(t, c.Configured())

	got, err := c.CurrentWeather(context.Background(), "Jalandhar")
	require.NoError(t, err)
	assert.Equal(t, core.Weather{City: "Jalandhar", TempC: 31.5, Condition: "Sunny"}, got)
}

func TestWeatherClient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewWeatherClient(srv.URL, "bad", time.Second).CurrentWeather(context.Background(), "x")
	assert.ErrorContains(t, err, "403")
}

func TestQuoteClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/random", r.URL.Path)
		w.Write([]byte(`[{"q":"Well begun is half done.","a":"Aristotle","h":"<blockquote/>"}]`))
	}))
	defer srv.Close()

	got, err := NewQuoteClient(srv.URL, time.Second).RandomQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Quote{Text: "Well begun is half done.", Author: "Aristotle"}, got)
}

func TestQuoteClient_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewQuoteClient(srv.URL, time.Second).RandomQuote(context.Background())
	assert.Error(t, err)
}
