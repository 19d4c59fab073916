// Package cli renders bolt identifications for the terminal using lipgloss
// and drives the line-based wizard and batch runs.
package cli

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (zinc-plated steel).
	PrimaryColor = lipgloss.Color("#7AA2F7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#9ECE6A") // Green
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#E0AF68") // Brass
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#F7768E") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#7DCFFF") // Light blue
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
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

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// ProgressStyle is used for progress indicators.
	ProgressStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// IconStyle is used for icons in the UI.
	IconStyle = lipgloss.NewStyle().
			Bold(true).
			MarginRight(1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	TipIcon     = "💡"
	BoltIcon    = "🔩"
	RulerIcon   = "📏"
	GaugeIcon   = "⚙️"
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

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTip formats a tip with icon.
func FormatTip(message string) string {
	return SubtleStyle.Render(TipIcon + " " + message)
}

// FormatTitle formats a title with the bolt icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BoltIcon + " " + title)
}

// FormatConfidence renders a 0..1 confidence as a coloured percentage.
func FormatConfidence(confidence float64) string {
	text := fmt.Sprintf("%.0f%%", confidence*100)
	switch {
	case confidence >= 0.85:
		return SuccessStyle.Render(text)
	case confidence >= 0.6:
		return WarningStyle.Render(text)
	default:
		return ErrorStyle.Render(text)
	}
}

// FormatRecommendation renders a recommendation with the icon of its type.
func FormatRecommendation(rec model.Recommendation) string {
	var line string
	switch rec.Type {
	case model.RecommendationError:
		line = FormatError(rec.Message)
	case model.RecommendationWarning:
		line = FormatWarning(rec.Message)
	case model.RecommendationSuccess:
		line = FormatSuccess(rec.Message)
	case model.RecommendationTip:
		line = FormatTip(rec.Message)
	default:
		line = FormatInfo(rec.Message)
	}
	if rec.Action != "" {
		line += "\n  " + SubtleStyle.Render("→ "+rec.Action)
	}
	return line
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
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
