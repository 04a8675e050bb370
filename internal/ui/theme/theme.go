package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — bright arcade banana
var (
	Primary   = lipgloss.Color("#FACC15") // Banana Yellow
	Secondary = lipgloss.Color("#22C55E") // Jungle Green
	Accent    = lipgloss.Color("#FB923C") // Mango Orange
	Success   = lipgloss.Color("#4ADE80") // Lime
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#FEFCE8") // Cream
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgDark    = lipgloss.Color("#1C1917") // Charcoal
	BgCard    = lipgloss.Color("#292524") // Dark Stone
	Border    = lipgloss.Color("#57534E") // Warm Gray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
