package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills derived values before the .env is written.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Settings.Debug == "" {
		state.Settings.Debug = "0"
	}
	if state.Settings.EnableCLI == "" {
		state.Settings.EnableCLI = "true"
	}
	// A weather key without a city would use the default city.
	if state.Settings.WeatherAPIKey == "" {
		state.Settings.City = ""
	}
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
