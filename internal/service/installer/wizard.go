package installer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/anjali/internal/core"
)

var ErrInterrupted = errors.New("installation interrupted")

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("205"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step is one screen of the wizard. Update returns nil once the step is
// done; returning another Step replaces the current one.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps() []Step {
	return []Step{
		NewPersonaStep(),
		NewMoodStep(),
		NewProviderStep(),
		NewBaseURLStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewCityStep(),
		NewWeatherKeyStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewInitializeStoresStep(),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error
type nextMsg struct{}

type wizard struct {
	steps     []Step
	current   int
	state     *InstallState
	bar       progress.Model
	cancelled bool
	width     int
	height    int
}

func newWizard(steps []Step) wizard {
	return wizard{
		steps: steps,
		state: NewInstallState(),
		bar:   progress.New(progress.WithGradient("#FF87D7", "#AF87FF"), progress.WithoutPercentage()),
	}
}

func (w wizard) done() bool {
	return w.current >= len(w.steps)
}

func (w wizard) Init() tea.Cmd {
	if w.done() {
		return tea.Quit
	}
	return w.steps[w.current].Init()
}

func (w wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width, w.height = msg.Width, msg.Height
		w.bar.Width = min(msg.Width-4, 60)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.cancelled = true
			return w, tea.Quit
		}
	}

	if w.done() {
		return w, tea.Quit
	}

	next, cmd := w.steps[w.current].Update(msg, w.state, w.width, w.height)
	if next != nil {
		w.steps[w.current] = next
		return w, cmd
	}

	// A skipped step finishes on its first update, driven by its Init cmd.
	w.current++
	if w.done() {
		return w, tea.Quit
	}
	return w, tea.Batch(cmd, w.steps[w.current].Init())
}

func (w wizard) View() string {
	if w.cancelled {
		return "Installation cancelled.\n"
	}
	if w.done() {
		return w.summary()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Setting up %s 💫", core.AppName)))
	b.WriteString("\n")
	b.WriteString(w.bar.ViewAs(float64(w.current) / float64(len(w.steps))))
	b.WriteString(" ")
	b.WriteString(stepStyle.Render(fmt.Sprintf("%d/%d", w.current+1, len(w.steps))))
	b.WriteString("\n\n")
	b.WriteString(w.steps[w.current].View(w.state))
	return b.String()
}

func (w wizard) summary() string {
	s := w.state.Settings
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s is ready 💫", s.PersonaName)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  mood      %s\n", s.DefaultMood)
	fmt.Fprintf(&b, "  provider  %s (%s)\n", s.Provider, s.Model)
	fmt.Fprintf(&b, "  channel   %s\n", w.state.Channel)
	return b.String()
}

// RunWizard runs the setup TUI and returns the collected settings.
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(newWizard(getSteps()), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(wizard)
	if final.cancelled {
		return nil, ErrInterrupted
	}
	return final.state, nil
}
