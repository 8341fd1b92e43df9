// Package tui is the interactive terminal front end: a single
// page that takes a company name, shows search progress and
// renders the resulting prospect list.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7C3AED") // Violet
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	successColor = lipgloss.Color("#22C55E") // Green

	fgColor     = lipgloss.Color("#CDD6F4") // Light foreground
	mutedColor  = lipgloss.Color("#6C7086") // Muted text
	borderColor = lipgloss.Color("#45475A") // Border
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(fgColor).
	Background(primaryColor).
	Padding(0, 2).
	MarginBottom(1)

var subtitleStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Italic(true)

var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	MarginTop(1)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Padding(1, 2)

var successStyle = lipgloss.NewStyle().
	Foreground(successColor).
	Bold(true)

var errorStyle = lipgloss.NewStyle().
	Foreground(errorColor).
	Bold(true)

var progressStyle = lipgloss.NewStyle().
	Foreground(accentColor)

var prospectNameStyle = lipgloss.NewStyle().
	Foreground(fgColor).
	Bold(true)

var prospectDetailStyle = lipgloss.NewStyle().
	Foreground(mutedColor)
