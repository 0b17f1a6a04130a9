// Package ui - Interactive terminal estimator.
// A bubbletea program that mounts the estimator inside the studio page flow.
package ui

import "github.com/charmbracelet/lipgloss"

// Studio palette
const (
	ColorDark     = lipgloss.Color("#0a0a0a")
	ColorChrome   = lipgloss.Color("#c0c0c0")
	ColorSilver   = lipgloss.Color("#d0d0d0")
	ColorElectric = lipgloss.Color("#00bfff")
	ColorMuted    = lipgloss.Color("#6b7280")
	ColorWarning  = lipgloss.Color("#f59e0b")
)

// Theme holds the styles the views are drawn with
type Theme struct {
	Title    lipgloss.Style
	Card     lipgloss.Style
	Heading  lipgloss.Style
	Selected lipgloss.Style
	Option   lipgloss.Style
	Price    lipgloss.Style
	Muted    lipgloss.Style
	Total    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme returns the chrome-on-dark studio theme
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorSilver),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorChrome).Padding(0, 2).MarginBottom(1),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(ColorChrome),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorElectric),
		Option:   lipgloss.NewStyle().Foreground(ColorSilver),
		Price:    lipgloss.NewStyle().Bold(true).Foreground(ColorChrome),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
		Total:    lipgloss.NewStyle().Bold(true).Foreground(ColorElectric),
		Error:    lipgloss.NewStyle().Foreground(ColorWarning),
		Help:     lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
	}
}

// PlainTheme renders without any styling
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Title: s, Card: s, Heading: s, Selected: s, Option: s,
		Price: s, Muted: s, Total: s, Error: s, Help: s,
	}
}
