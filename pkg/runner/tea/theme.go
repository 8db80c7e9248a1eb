package teaui

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the viewer.
type Theme struct {
	Axis   lipgloss.Style
	Status lipgloss.Style
	Mode   lipgloss.Style
	Help   lipgloss.Style
	Prompt lipgloss.Style
	Error  lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Axis:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Mode: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
