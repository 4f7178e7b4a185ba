package utils

import "github.com/charmbracelet/lipgloss"

var (
	ColorHigh    = lipgloss.Color("#ef5350")
	ColorMedium  = lipgloss.Color("#fff59d")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorPrimary = lipgloss.Color("#64b5f6")
)

// Console styles. lipgloss drops the colors when stdout is not a terminal.
var (
	StyleHeader  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleHigh    = lipgloss.NewStyle().Foreground(ColorHigh).Bold(true)
	StyleMedium  = lipgloss.NewStyle().Foreground(ColorMedium)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
)
