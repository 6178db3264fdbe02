// Package theme holds the lipgloss palette and styles used by jdkswitch's
// terminal output.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Primary   = lipgloss.Color("#f89820")
	Secondary = lipgloss.Color("#5382a1")

	Success = lipgloss.Color("#00d26a")
	Error   = lipgloss.Color("#ff3b30")
	Warning = lipgloss.Color("#ffcc00")
	Info    = lipgloss.Color("#5ac8fa")

	Text      = lipgloss.Color("#ffffff")
	TextFaint = lipgloss.Color("#8e8e93")
	Highlight = lipgloss.Color("#ff6b35")
)

var (
	Title = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Underline(true)

	Subtitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info)

	Faint = lipgloss.NewStyle().
		Foreground(TextFaint).
		Faint(true)

	Code = lipgloss.NewStyle().
		Foreground(Highlight)

	// CurrentStyle marks the JDK the home variable points at.
	CurrentStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(Info)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(1, 2)

	SuccessBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Padding(1, 3).
			Align(lipgloss.Center)
)

func SuccessMessage(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

func ErrorMessage(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

func WarningMessage(msg string) string {
	return WarningStyle.Render("⚠ " + msg)
}

func InfoMessage(msg string) string {
	return InfoStyle.Render("ℹ " + msg)
}

// PadRight pads s with spaces to width cells, measuring rendered width so
// that styled text lines up.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// KeyValue renders "label value" with the label padded to width.
func KeyValue(label, value string, width int) string {
	return PadRight(LabelStyle.Render(label), width) + " " + value
}
