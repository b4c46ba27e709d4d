// Package cli provides styled terminal output for the shelf commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#7BD389") // Green
	// WarningColor indicates partial results.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates failures.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent text.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// LabelStyle formats the left column of key/value listings.
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(labelWidth)

	// BoxStyle is used for bordered summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

const labelWidth = 20

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	ShelfIcon   = "🥤"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title with the shelf icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(ShelfIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// Field is one line of a key/value listing.
type Field struct {
	Label string
	Value string
}

// F builds a Field, formatting value with %v.
func F(label string, value any) Field {
	return Field{Label: label, Value: fmt.Sprint(value)}
}

// RenderFields lays fields out as aligned "label value" lines.
func RenderFields(fields ...Field) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = LabelStyle.Render(f.Label) + f.Value
	}
	return strings.Join(lines, "\n")
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
