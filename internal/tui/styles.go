// Package tui provides the interactive REPL.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Primary    lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
}

// DefaultTheme returns the default whence theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:    lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"},
		Success:    lipgloss.AdaptiveColor{Light: "#1e8e3e", Dark: "#81c995"},
		Error:      lipgloss.AdaptiveColor{Light: "#d93025", Dark: "#f28b82"},
		Muted:      lipgloss.AdaptiveColor{Light: "#80868b", Dark: "#6e7681"},
		Foreground: lipgloss.AdaptiveColor{Light: "#202124", Dark: "#e8eaed"},
	}
}

// Styles holds the styled components for the TUI.
type Styles struct {
	theme Theme

	Title  lipgloss.Style
	Prompt lipgloss.Style
	Input  lipgloss.Style
	Result lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates a new Styles with the default theme.
func NewStyles() *Styles {
	return NewStylesWithTheme(DefaultTheme())
}

// NewStylesWithTheme creates a new Styles with a custom theme.
func NewStylesWithTheme(theme Theme) *Styles {
	s := &Styles{theme: theme}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary).
		MarginBottom(1)

	s.Prompt = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Input = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Result = lipgloss.NewStyle().
		Foreground(theme.Success)

	s.Error = lipgloss.NewStyle().
		Foreground(theme.Error)

	s.Muted = lipgloss.NewStyle().
		Foreground(theme.Muted)

	s.Help = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	return s
}
