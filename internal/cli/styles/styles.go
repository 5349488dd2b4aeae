// Package styles holds the lipgloss styles for CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the command surface.
type Theme struct {
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	ErrorText lipgloss.Style
}

// Default returns the standard CLI theme.
func Default() *Theme {
	return &Theme{
		Title:     lipgloss.NewStyle().Bold(true),
		Subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ErrorText: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
