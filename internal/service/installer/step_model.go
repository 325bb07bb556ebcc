package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/providers/llm"
)

// ModelStep lists the provider's models. On a fetch error the user may
// retry or keep the configured default.
type ModelStep struct {
	list     list.Model
	loading  bool
	fetching bool
	err      error
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

// llmConfigFrom builds a provider config from what the wizard has so far.
func llmConfigFrom(st Settings) *config.LLMConfig {
	cfg := &config.LLMConfig{
		Provider:            st.Provider,
		OpenRouterAPIKey:    st.OpenRouterAPIKey,
		OpenAIAPIKey:        st.OpenAIAPIKey,
		AnthropicAPIKey:     st.AnthropicAPIKey,
		GeminiAPIKey:        st.GeminiAPIKey,
		OllamaBaseURL:       st.OllamaBaseURL,
		OllamaAPIKey:        st.OllamaAPIKey,
		CustomOpenAIBaseURL: st.CustomOpenAIBaseURL,
		CustomOpenAIAPIKey:  st.CustomOpenAIAPIKey,
		Model:               "default",
	}
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = "http://localhost:11434"
	}
	return cfg
}

func fetchModels(settings Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		p, err := llm.NewProvider(ctx, llmConfigFrom(settings))
		if err != nil {
			return errMsg(err)
		}
		models, err := p.Models(ctx)
		if err != nil {
			return errMsg(err)
		}

		var items []list.Item
		for _, mod := range models {
			desc := fmt.Sprintf("ID: %s", mod.ID)
			if mod.ContextLength > 0 {
				desc += fmt.Sprintf(" | Context: %d", mod.ContextLength)
			}
			items = append(items, item{id: mod.ID, title: mod.Name, desc: desc})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		s.fetching = true
		return s, fetchModels(state.Settings)
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			switch msg.String() {
			case "enter":
				s.err = nil
				s.loading = true
				s.fetching = false
			case "s":
				return nil, nil
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.Settings.Model = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n(press enter to retry, s to keep the default model, ctrl+c to quit)\n"
	}
	if s.loading {
		return fmt.Sprintf("Fetching models from %s...\n", providerTitle(state.Settings.Provider))
	}
	return s.list.View()
}
