// Package tui holds the terminal screens of certgen: the job wizard, the
// generation progress view and the sheet picker for PDF export.
package tui

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves a screen without confirming.
var ErrCancelled = errors.New("cancelled by user")

type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	help     lipgloss.Style
	progress lipgloss.Style
	checked  lipgloss.Style
	err      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		checked: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Padding(0, 1),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}
