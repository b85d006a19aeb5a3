package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorAccent = lipgloss.Color("#FFD166") // Amber for titles/accents
	ColorDim    = lipgloss.Color("#6c757d") // Muted secondary text
	ColorText   = lipgloss.Color("#E0E0E0") // Primary text
	ColorAlert  = lipgloss.Color("#FF6B6B") // Errors / rejected values
	ColorGood   = lipgloss.Color("#4ECDC4") // Applied / clean state
	ColorWarn   = lipgloss.Color("#FFE66D") // Pending changes
)

// Styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true)

	StyleStatusGood = lipgloss.NewStyle().Foreground(ColorGood)
	StyleStatusBad  = lipgloss.NewStyle().Foreground(ColorAlert)
	StyleStatusWarn = lipgloss.NewStyle().Foreground(ColorWarn)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleApp = lipgloss.NewStyle().
			Padding(0, 1)

	StylePrompt = lipgloss.NewStyle().
			Foreground(ColorAccent)
)
