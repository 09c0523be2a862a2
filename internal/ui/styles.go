package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors, resolved against the terminal background at startup.
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorError     lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
)

func initializeColors() {
	if lipgloss.HasDarkBackground() {
		ColorPrimary = lipgloss.Color("205")
		ColorSecondary = lipgloss.Color("33")
		ColorSuccess = lipgloss.Color("10")
		ColorError = lipgloss.Color("9")
		ColorText = lipgloss.Color("252")
		ColorTextMuted = lipgloss.Color("244")
		ColorTextDim = lipgloss.Color("240")
		ColorBorder = lipgloss.Color("238")
	} else {
		ColorPrimary = lipgloss.Color("125")
		ColorSecondary = lipgloss.Color("24")
		ColorSuccess = lipgloss.Color("22")
		ColorError = lipgloss.Color("160")
		ColorText = lipgloss.Color("232")
		ColorTextMuted = lipgloss.Color("240")
		ColorTextDim = lipgloss.Color("244")
		ColorBorder = lipgloss.Color("248")
	}
	initializeStyles()
}

var (
	StyleTitle    lipgloss.Style
	StyleSubtitle lipgloss.Style
	StyleLabel    lipgloss.Style
	StyleFocused  lipgloss.Style
	StyleMuted    lipgloss.Style
	StyleError    lipgloss.Style
	StyleStatus   lipgloss.Style
	StyleDisabled lipgloss.Style
	StylePreview  lipgloss.Style
	StyleHelp     lipgloss.Style
)

func initializeStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	StyleLabel = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	StyleFocused = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	StyleMuted = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	StyleError = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	StyleStatus = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	StyleDisabled = lipgloss.NewStyle().
		Foreground(ColorTextDim)

	StylePreview = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	StyleHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim)
}
