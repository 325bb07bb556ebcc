package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/anjali/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestOpenAICaptioner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var payload struct {
			Messages []struct {
				Content []contentPart `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Messages, 1)
		parts := payload.Messages[0].Content
		require.Len(t, parts, 2)
		assert.Equal(t, "describe", parts[0].Text)
		assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,"))

		w.Write([]byte(`{"choices":[{"message":{"content":" a cat on a sofa \n"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICaptioner(srv.URL, "key", "vision-model", "describe", time.Second, nil)
	caption, err := c.Caption(context.Background(), pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "a cat on a sofa", caption)
}

func TestOpenAICaptioner_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewOpenAICaptioner(srv.URL, "", "m", "describe", time.Second, nil)

	_, err := c.Caption(context.Background(), pngHeader, "image/png")
	assert.ErrorContains(t, err, "502")

	_, err = c.Caption(context.Background(), nil, "image/png")
	assert.Error(t, err)
}

func TestNewCaptioner_Disabled(t *testing.T) {
	c, err := NewCaptioner(context.Background(), &config.VisionConfig{Provider: "none"}, &config.LLMConfig{})
	require.NoError(t, err)

	_, err = c.Caption(context.Background(), pngHeader, "")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewCaptioner(context.Background(), &config.VisionConfig{Provider: "blip"}, &config.LLMConfig{})
	assert.Error(t, err)
}
