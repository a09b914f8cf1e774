// Package style provides consistent terminal styling using Lipgloss.
package style

import "github.com/charmbracelet/lipgloss"

var (
	// Title style for screen headings
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")). // Blue
		Bold(true)

	// Success style for positive outcomes
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // Green
		Bold(true)

	// Error style for failures
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")). // Red
		Bold(true)

	// Dim style for secondary information (dates, hints)
	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")) // Gray

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().
		Bold(true)

	// Card frames feed items (news and ads)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(64)

	// Link style for external URLs and deep links
	Link = lipgloss.NewStyle().
		Foreground(lipgloss.Color("14")). // Cyan
		Underline(true)

	// SuccessPrefix is the checkmark prefix for success messages
	SuccessPrefix = Success.Render("✓")

	// ErrorPrefix is the error prefix
	ErrorPrefix = Error.Render("✗")
)
