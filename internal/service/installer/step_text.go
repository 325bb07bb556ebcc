package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextStep collects one line of input. A step whose skip func reports
// true completes without showing anything.
type TextStep struct {
	input    textinput.Model
	prompt   func(state *InstallState) string
	optional func(state *InstallState) bool
	skip     func(state *InstallState) bool
	validate func(value string) error
	apply    func(state *InstallState, value string)
	err      error
}

func newTextInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func NewPersonaStep() Step {
	return &TextStep{
		input:    newTextInput("Anjali", false),
		prompt:   fixed("What should your companion be called?"),
		optional: always,
		apply: func(state *InstallState, value string) {
			state.Settings.PersonaName = value
		},
	}
}

func NewAPIKeyStep() Step {
	return &TextStep{
		input: newTextInput("sk-...", true),
		prompt: func(state *InstallState) string {
			return fmt.Sprintf("Enter your %s API key:", providerTitle(state.Settings.Provider))
		},
		optional: localOllama,
		skip: func(state *InstallState) bool {
			return state.Settings.Provider == ""
		},
		apply: func(state *InstallState, value string) {
			state.SetAPIKey(value)
		},
	}
}

func NewBaseURLStep() Step {
	return &TextStep{
		input: newTextInput("https://api.example.com/v1", false),
		prompt: func(state *InstallState) string {
			return fmt.Sprintf("Enter the %s base URL:", providerTitle(state.Settings.Provider))
		},
		optional: localOllama,
		skip: func(state *InstallState) bool {
			p := state.Settings.Provider
			return p != "ollama" && p != "custom"
		},
		validate: func(value string) error {
			if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
				return fmt.Errorf("URL must start with http:// or https://")
			}
			return nil
		},
		apply: func(state *InstallState, value string) {
			if state.Settings.Provider == "ollama" {
				state.Settings.OllamaBaseURL = value
				return
			}
			state.Settings.CustomOpenAIBaseURL = value
		},
	}
}

func NewCityStep() Step {
	return &TextStep{
		input:    newTextInput("Jalandhar", false),
		prompt:   fixed("Which city should the daily briefing cover?"),
		optional: always,
		apply: func(state *InstallState, value string) {
			state.Settings.City = value
		},
	}
}

func NewWeatherKeyStep() Step {
	return &TextStep{
		input:    newTextInput("weatherapi.com key", true),
		prompt:   fixed("Enter your weatherapi.com API key:"),
		optional: always,
		apply: func(state *InstallState, value string) {
			state.Settings.WeatherAPIKey = value
		},
	}
}

func NewTelegramTokenStep() Step {
	return &TextStep{
		input:  newTextInput("123456789:ABCDEF...", true),
		prompt: fixed("Enter your Telegram Bot Token:"),
		skip:   telegramNotSelected,
		apply: func(state *InstallState, value string) {
			state.Settings.TelegramToken = value
		},
	}
}

func NewTelegramOwnerStep() Step {
	return &TextStep{
		input:  newTextInput("123456789", false),
		prompt: fixed("Enter your Telegram User ID (Owner):"),
		skip:   telegramNotSelected,
		validate: func(value string) error {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return fmt.Errorf("owner id must be a number")
			}
			return nil
		},
		apply: func(state *InstallState, value string) {
			state.Settings.TelegramOwnerID = value
		},
	}
}

func telegramNotSelected(state *InstallState) bool {
	return state.Channel != "telegram"
}

func fixed(prompt string) func(*InstallState) string {
	return func(*InstallState) string { return prompt }
}

func always(*InstallState) bool { return true }

// localOllama needs no key, and its URL has a default.
func localOllama(state *InstallState) bool {
	return state.Settings.Provider == "ollama"
}

func (s *TextStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TextStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.isOptional(state) {
			s.err = fmt.Errorf("a value is required")
			return s, nil
		}
		if s.validate != nil && val != "" {
			if err := s.validate(val); err != nil {
				s.err = err
				return s, nil
			}
		}
		s.apply(state, val)
		return nil, nil
	}
	return s, cmd
}

func (s *TextStep) isOptional(state *InstallState) bool {
	return s.optional != nil && s.optional(state)
}

func providerTitle(p string) string {
	switch p {
	case "openrouter":
		return "OpenRouter"
	case "openai":
		return "OpenAI"
	case "anthropic":
		return "Anthropic"
	case "gemini":
		return "Gemini"
	case "ollama":
		return "Ollama"
	default:
		return "custom provider"
	}
}

func (s *TextStep) View(state *InstallState) string {
	if s.skip != nil && s.skip(state) {
		return "Skipping...\n"
	}

	hint := "(press enter to confirm)"
	if s.isOptional(state) {
		hint = "(optional, press enter to skip)"
	}

	view := s.prompt(state) + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + hint + "\n"
}
