package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Box style
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Content styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	ContentStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Status styles
	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// Helper functions
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderSection(name string) string {
	return SectionStyle.Render("== " + name + " ==")
}

func RenderError(err string) string {
	return ErrorMessageStyle.Render("Error: " + err)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// RenderContent shows a String's bytes quoted, so zero bytes and
// whitespace stay visible
func RenderContent(content string) string {
	return ContentStyle.Render(fmt.Sprintf("%q", content))
}

// RenderField renders an aligned "label: value" line
func RenderField(label string, value interface{}) string {
	return LabelStyle.Render(fmt.Sprintf("%-10s", label+":")) + " " + ValueStyle.Render(fmt.Sprint(value))
}

// RenderStatus renders a PASS or FAIL marker
func RenderStatus(ok bool) string {
	if ok {
		return StatusOKStyle.Render("PASS")
	}
	return StatusErrorStyle.Render("FAIL")
}

// RenderBox frames the given lines
func RenderBox(lines ...string) string {
	return BoxStyle.Render(strings.Join(lines, "\n"))
}
