package cmd

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerColor  = lipgloss.Color("#F780FF") // Bright pink
	promptColor  = lipgloss.Color("#8BE9FD") // Cyan
	answerColor  = lipgloss.Color("#E9E9F4") // Light purple/white
	contextColor = lipgloss.Color("#6272A4") // Muted purple
	errorColor   = lipgloss.Color("#FF5555") // Red
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(headerColor).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(promptColor).
			Italic(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(answerColor)

	contextStyle = lipgloss.NewStyle().
			Foreground(contextColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// answerWidth is the word wrap width for rendered answers.
const answerWidth = 100

// renderAnswer renders markdown answers (code blocks, lists) for the
// terminal. It falls back to the plain answer style.
func renderAnswer(text string) string {
	text = strings.TrimSpace(text)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(answerWidth),
	)
	if err != nil {
		return answerStyle.Render(text)
	}
	out, err := r.Render(text)
	if err != nil {
		return answerStyle.Render(text)
	}
	return strings.TrimRight(out, "\n")
}
