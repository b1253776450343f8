package tui

import "github.com/charmbracelet/lipgloss"

// Shared colors for the converter's terminal output: the progress view,
// the post-batch summary, and the inspect listing.
var (
	ColorInk       = lipgloss.Color("#E5E9F0")
	ColorDim       = lipgloss.Color("#7A8291")
	ColorAccent    = lipgloss.Color("#88C0D0")
	ColorAccentAlt = lipgloss.Color("#81A1C1")
	ColorSuccess   = lipgloss.Color("#A3BE8C")
	ColorWarn      = lipgloss.Color("#EBCB8B")
)
