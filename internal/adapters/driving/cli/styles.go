package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette of terminal output.
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles holds the styles commands render with. Colour is dropped
// automatically when output is not a terminal.
type Styles struct {
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Valid      lipgloss.Style
	Invalid    lipgloss.Style
	Suggestion lipgloss.Style
	Warning    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Valid: lipgloss.NewStyle().
			Foreground(theme.Success),
		Invalid: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),
		Suggestion: lipgloss.NewStyle().
			Foreground(theme.Primary),
		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),
	}
}

var styles = NewStyles(nil)

const (
	markValid   = "✓"
	markInvalid = "✗"
)
