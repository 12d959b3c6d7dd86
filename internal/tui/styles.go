package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used across views
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Spinner  lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Subtle   lipgloss.Style
	Key      lipgloss.Style
	Box      lipgloss.Style
}

// DefaultStyles returns the default style set
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b8bb26", Dark: "#b8bb26"}).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83a598"}),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#fe8019", Dark: "#fe8019"}),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"}),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"}),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"}).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#928374", Dark: "#7c6f64"}),
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#d3869b", Dark: "#d3869b"}).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#504945"}).
			Padding(1, 2),
	}
}
