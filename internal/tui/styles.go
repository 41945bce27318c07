package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary = lipgloss.Color("4")
	ColorAccent  = lipgloss.Color("6")
	ColorDanger  = lipgloss.Color("1")
	ColorMuted   = lipgloss.Color("8")

	// Title styles
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// Note list
	SelectedNoteStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	NoteStyle         = lipgloss.NewStyle()
	TimestampStyle    = lipgloss.NewStyle().Foreground(ColorMuted)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	// Help text
	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// Errors surfaced in the status bar
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger)
)
