package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// --- Color Palette ---
var (
	ColorPrimary = lipgloss.Color("#7D56F4") // Indigo
	ColorGood    = lipgloss.Color("#04B575") // Green
	ColorError   = lipgloss.Color("#FF5F87") // Pink/Red
	ColorWarning = lipgloss.Color("#FFAF00") // Gold
	ColorSubtle  = lipgloss.Color("#767676") // Gray
	ColorBorder  = lipgloss.Color("#3C3C3C") // Dark Gray
	ColorBanner  = lipgloss.Color("#7D56F4")
)

var (
	Active = lipgloss.NewStyle().Foreground(ColorGood)
	Warn   = lipgloss.NewStyle().Foreground(ColorWarning)
	Error  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	Subtle = lipgloss.NewStyle().Foreground(ColorSubtle)
	Title  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	PassBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorGood).
			Bold(true).
			Padding(0, 2)

	FailBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorError).
			Bold(true).
			Padding(0, 2)
)
