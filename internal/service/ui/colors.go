package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (cyan), readable on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle is dimmed so descriptions sit behind names.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Chat styles for the terminal transport.
	PersonaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	ReplyStyle   = lipgloss.NewStyle().PaddingLeft(2)
	StatusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true).PaddingLeft(2)
	NoticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)
