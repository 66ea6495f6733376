// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7FB069")
	// AlertColor indicates fired reminders and errors.
	AlertColor = lipgloss.Color("#E07A5F")
	// WarningColor indicates unresolved issues.
	WarningColor = lipgloss.Color("#F2CC8F")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#8D8D8D")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// AlertStyle formats fired-reminder and error messages.
	AlertStyle = lipgloss.NewStyle().
			Foreground(AlertColor)

	// WarningStyle formats warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SubtleStyle formats secondary text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// HeaderStyle formats table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	BellIcon     = "🔔"
	FlagIcon     = "🚩"
	ChartIcon    = "📊"
	PiggyIcon    = "🐷"
	ResolvedIcon = "✅"
)

// FormatTitle renders a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatSuccess renders a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError renders an error message with icon.
func FormatError(message string) string {
	return AlertStyle.Render(ErrorIcon + " " + message)
}

// FormatFired renders a fired-reminder line with icon.
func FormatFired(message string) string {
	return AlertStyle.Render(BellIcon + " " + message)
}

// FormatSubtle renders secondary text.
func FormatSubtle(message string) string {
	return SubtleStyle.Render(message)
}
