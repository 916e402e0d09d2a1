package tui

import "charm.land/lipgloss/v2"

var (
	primary = lipgloss.Color("#8B5CF6")
	accent  = lipgloss.Color("#14B8A6")
	danger  = lipgloss.Color("#F43F5E")
	dim     = lipgloss.Color("#94A3B8")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primary)
	stepStyle    = lipgloss.NewStyle().Foreground(dim)
	promptStyle  = lipgloss.NewStyle().Bold(true)
	resultStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	errorStyle   = lipgloss.NewStyle().Foreground(danger)
	hintStyle    = lipgloss.NewStyle().Foreground(dim).Italic(true)
	collegeStyle = lipgloss.NewStyle().PaddingLeft(2)
)
