package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6b7280")
	danger = lipgloss.Color("#e53935")
)

type styles struct {
	Title    lipgloss.Style
	Greeting lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Frame    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Greeting: lipgloss.NewStyle().Bold(true),
		Status:   lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(danger),
		Help:     lipgloss.NewStyle().Foreground(muted).Italic(true),
		Frame:    lipgloss.NewStyle().Padding(1, 2),
	}
}
