package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary   = "#2563EB"
	colorSuccess   = "#16A34A"
	colorError     = "#DC2626"
	colorInfo      = "#6B7280"
	colorHighlight = "#F8FAFC"
	colorBorder    = "#93C5FD"
	colorUrgent    = "#EA580C"
)

// Styles for the terminal browser
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary))

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	UrgentStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorUrgent))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHighlight)).
		Background(lipgloss.Color(colorPrimary))

	ActiveTagStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorHighlight)).
		Background(lipgloss.Color(colorSuccess)).
		Padding(0, 1)

	TagStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorPrimary)).
		Padding(0, 1)
)

func categoryStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
