package tui

import "github.com/charmbracelet/lipgloss"

const (
	phosphor    = lipgloss.Color("46")
	phosphorDim = lipgloss.Color("28")
	alert       = lipgloss.Color("196")
	amber       = lipgloss.Color("214")
)

type styles struct {
	Title   lipgloss.Style
	Screen  lipgloss.Style
	Text    lipgloss.Style
	Dim     lipgloss.Style
	Input   lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
	Button  lipgloss.Style
	Card    lipgloss.Style
	Tagline lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(phosphor),
		Screen:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(phosphorDim).Padding(0, 1),
		Text:    lipgloss.NewStyle().Foreground(phosphor),
		Dim:     lipgloss.NewStyle().Foreground(phosphorDim),
		Input:   lipgloss.NewStyle().Foreground(phosphor).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(alert).Bold(true),
		Hint:    lipgloss.NewStyle().Foreground(amber),
		Button:  lipgloss.NewStyle().Foreground(phosphor).Bold(true),
		Card:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(phosphorDim).Padding(0, 1),
		Tagline: lipgloss.NewStyle().Italic(true).Foreground(amber),
	}
}
