package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: soft teal on slate, nothing loud.
var (
	Primary   = lipgloss.Color("#14B8A6") // Teal
	Secondary = lipgloss.Color("#5EEAD4") // Light Teal
	Accent    = lipgloss.Color("#FBBF24") // Warm Amber
	Success   = lipgloss.Color("#34D399") // Mint
	Error     = lipgloss.Color("#FB7185") // Soft Rose
	Text      = lipgloss.Color("#F1F5F9") // Off White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
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

	// Word is the large target word on a card.
	Word = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Pronunciation = lipgloss.NewStyle().
			Foreground(TextDim)

	Example = lipgloss.NewStyle().
		Foreground(Text).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
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

	Warning = lipgloss.NewStyle().
		Foreground(Error)
)
