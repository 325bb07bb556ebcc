package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/anjali/internal/core"
	"google.golang.org/genai"
)

type Gemini struct {
	client *genai.Client
	model  string
	opts   Options
}

func NewGemini(ctx context.Context, apiKey, model string, opts Options) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, opts: opts}, nil
}

func (g *Gemini) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	system, contents := toGeminiContents(history)

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if g.opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(g.opts.Temperature))
	}
	if g.opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(g.opts.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return core.Message{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return core.Message{}, fmt.Errorf("empty gemini response")
	}
	return core.Message{Role: core.RoleAssistant, Content: text}, nil
}

func (g *Gemini) Models(ctx context.Context) ([]core.Model, error) {
	page, err := g.client.Models.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	models := make([]core.Model, 0, len(page.Items))
	for _, m := range page.Items {
		models = append(models, core.Model{
			ID:            strings.TrimPrefix(m.Name, "models/"),
			Name:          m.DisplayName,
			ContextLength: int(m.InputTokenLimit),
		})
	}
	return models, nil
}

// toGeminiContents folds system messages into one instruction and maps the
// assistant role to Gemini's "model" role. Blank messages are skipped since
// a content with no text part is rejected.
func toGeminiContents(history []core.Message) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		switch m.Role {
		case core.RoleSystem:
			system = append(system, m.Content)
		case core.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}
