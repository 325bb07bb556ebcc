package embed

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/anjali/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

func TestHashEmbedder(t *testing.T) {
	e := NewHashEmbedder(0)
	ctx := context.Background()

	a, err := e.Embed(ctx, "I love Mangoes!")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "i LOVE mangoes")
	require.NoError(t, err)

	assert.Len(t, a, DefaultHashDimensions)
	assert.Equal(t, a, b, "case and punctuation must not matter")
	assert.InDelta(t, 1.0, norm(a), 1e-5)

	empty, err := e.Embed(ctx, "   ")
	require.NoError(t, err)
	assert.Zero(t, norm(empty))
}

func TestOllamaEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello", req.Prompt)
		_ = json.NewEncoder(w).Encode(ollamaResponse{Embedding: []float32{0.1, 0.2}})
	}))
	defer srv.Close()

	vec, err := NewOllamaEmbedder(srv.URL, "").Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vec)
}

func TestOpenAIEmbedder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[{"embedding":[1,0,0]}]}`))
	}))
	defer srv.Close()

	vec, err := NewOpenAIEmbedder(srv.URL, "key", "").Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vec)
}

func TestOpenAIEmbedder_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewOpenAIEmbedder(srv.URL, "key", "").Embed(context.Background(), "hello")
	assert.ErrorContains(t, err, "429")
}

func TestNewEmbedder(t *testing.T) {
	ctx := context.Background()

	e, err := NewEmbedder(ctx, &config.EmbeddingConfig{Provider: "hash", Dimensions: 64})
	require.NoError(t, err)
	assert.IsType(t, &HashEmbedder{}, e)

	_, err = NewEmbedder(ctx, &config.EmbeddingConfig{Provider: "bogus"})
	assert.Error(t, err)
}
