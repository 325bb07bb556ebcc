package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// ChoiceStep is a single-select list.
type ChoiceStep struct {
	prompt  string
	choices []choice
	cursor  int
	apply   func(state *InstallState, value string)
}

func NewProviderStep() Step {
	return &ChoiceStep{
		prompt: "Select your AI Provider:",
		choices: []choice{
			{"OpenRouter (free models available)", "openrouter"},
			{"OpenAI", "openai"},
			{"Anthropic", "anthropic"},
			{"Google Gemini", "gemini"},
			{"Ollama (local)", "ollama"},
			{"Custom OpenAI-compatible", "custom"},
		},
		apply: func(state *InstallState, value string) {
			state.Settings.Provider = value
		},
	}
}

func NewMoodStep() Step {
	return &ChoiceStep{
		prompt: "How should your companion feel by default?",
		choices: []choice{
			{"Friendly", "friendly"},
			{"Romantic", "romantic"},
			{"Funny", "funny"},
			{"Supportive", "supportive"},
			{"Thinking", "thinking"},
		},
		apply: func(state *InstallState, value string) {
			state.Settings.DefaultMood = value
		},
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		prompt: "Where will you chat?",
		choices: []choice{
			{"Terminal", "cli"},
			{"Telegram", "telegram"},
			{"HTTP API", "http"},
		},
		apply: func(state *InstallState, value string) {
			state.Channel = value
			state.Settings.EnableCLI = fmt.Sprint(value == "cli")
			state.Settings.EnableTelegram = fmt.Sprint(value == "telegram")
			state.Settings.EnableHTTP = fmt.Sprint(value == "http")
		},
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.choices[s.cursor].value)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
