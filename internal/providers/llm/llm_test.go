package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestOpenAICompatible_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var payload struct {
			Model       string         `json:"model"`
			Messages    []core.Message `json:"messages"`
			Temperature float64        `json:"temperature"`
			MaxTokens   int            `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-model", payload.Model)
		assert.InDelta(t, 0.8, payload.Temperature, 1e-9)
		assert.Equal(t, 500, payload.MaxTokens)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, core.RoleSystem, payload.Messages[0].Role)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi! [sentiment: positive]"}}]}`))
	}))
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL, "key", "test-model", Options{Temperature: 0.8, MaxTokens: 500})
	msg, err := p.Chat(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "persona"},
		{Role: core.RoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, core.RoleAssistant, msg.Role)
	assert.Equal(t, "Hi! [sentiment: positive]", msg.Content)
}

func TestOpenAICompatible_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`},
		{name: "api error", status: http.StatusOK, body: `{"error":{"message":"rate limited"}}`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "malformed", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewCustomOpenAI(srv.URL, "", "m", Options{}).Chat(context.Background(), nil)
			assert.Error(t, err)
		})
	}
}

func TestOpenAICompatible_Models(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"a"},{"id":"b","name":"Model B","context_length":8192}]}`))
	}))
	defer srv.Close()

	models, err := NewCustomOpenAI(srv.URL, "", "m", Options{}).Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Model{
		{ID: "a", Name: "a"},
		{ID: "b", Name: "Model B", ContextLength: 8192},
	}, models)
}

func TestAnthropic_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "persona", payload["system"])
		assert.Len(t, payload["messages"], 1)

		w.Write([]byte(`{"content":[{"type":"text","text":"Hello"},{"type":"text","text":" there"}]}`))
	}))
	defer srv.Close()

	a := NewAnthropic("key", "claude", Options{MaxTokens: 500})
	a.baseURL = srv.URL

	msg, err := a.Chat(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "persona"},
		{Role: core.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", msg.Content)
}

func TestAnthropic_ChatDropsBlankMessages(t *testing.T) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	var sent []msg
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []msg `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		sent = payload.Messages
		w.Write([]byte(`{"content":[{"type":"text","text":"Nice photo!"}]}`))
	}))
	defer srv.Close()

	a := NewAnthropic("key", "claude", Options{})
	a.baseURL = srv.URL

	_, err := a.Chat(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "persona"},
		{Role: core.RoleUser, Content: ""},
		{Role: core.RoleAssistant, Content: "What a lovely cat."},
		{Role: core.RoleUser, Content: "  "},
		{Role: core.RoleUser, Content: "\nThe user has shared an image with me. I see: a dog"},
	})
	require.NoError(t, err)

	require.Len(t, sent, 2)
	for _, m := range sent {
		assert.NotEmpty(t, strings.TrimSpace(m.Content))
	}
	assert.Equal(t, core.RoleAssistant, sent[0].Role)
	assert.Equal(t, core.RoleUser, sent[1].Role)
}

func TestOllama_Models(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3:8b"}]}`))
	}))
	defer srv.Close()

	models, err := NewOllama(srv.URL, "", "llama3:8b", Options{}).Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Model{{ID: "llama3:8b", Name: "llama3:8b"}}, models)
}

func TestToGeminiContents(t *testing.T) {
	system, contents := toGeminiContents([]core.Message{
		{Role: core.RoleSystem, Content: "persona"},
		{Role: core.RoleSystem, Content: "Here's what I remember:\n- tea"},
		{Role: core.RoleUser, Content: "hi"},
		{Role: core.RoleAssistant, Content: "hello"},
		{Role: core.RoleUser, Content: " "},
	})

	assert.Equal(t, "persona\n\nHere's what I remember:\n- tea", system)
	require.Len(t, contents, 2)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "hello", contents[1].Parts[0].Text)
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		provider string
		want     any
	}{
		{"openrouter", &OpenRouter{}},
		{"openai", &OpenAI{}},
		{"anthropic", &Anthropic{}},
		{"ollama", &Ollama{}},
		{"custom", &CustomOpenAI{}},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewProvider(ctx, &config.LLMConfig{Provider: tt.provider, Model: "m"})
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}

	_, err := NewProvider(ctx, &config.LLMConfig{Provider: "nope"})
	assert.Error(t, err)
}

func TestDynamicProvider_SetModel(t *testing.T) {
	ctx := context.Background()
	cfg := &config.LLMConfig{Provider: "openrouter", Model: "first"}

	d, err := NewDynamicProvider(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, d.SetModel(ctx, "second"))
	assert.Equal(t, "second", d.GetModel())
	assert.Equal(t, "second", d.load().(*OpenRouter).model)

	assert.Error(t, d.SetModel(ctx, ""))
	assert.Equal(t, "second", d.GetModel())
}
