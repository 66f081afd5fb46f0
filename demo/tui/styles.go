package tui

import "github.com/charmbracelet/lipgloss"

// Palette: muted teal/amber, readable on light and dark terminals.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0E7C7B", Dark: "#35C6C4"}
	colorSaved  = lipgloss.AdaptiveColor{Light: "#3A7D44", Dark: "#8FD694"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#B3412E", Dark: "#E8735C"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6E6A63", Dark: "#8A867E"}
	colorPaper  = lipgloss.AdaptiveColor{Light: "#FFFDF7", Dark: "#1C1B18"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorMuted).
			MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorSaved)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarn)

	InfoStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(colorMuted)

	// BoxStyle frames the summary, the centerpiece of detail/preview.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorAccent).
			PaddingLeft(2).
			MarginLeft(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPaper).
			Background(colorAccent).
			Padding(0, 1)
)
