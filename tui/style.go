package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleImpact = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	styleHPLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindImpact
	kindHPLine
	kindDialogue
	kindSystem
	kindError
	kindTrace
)

// impactPrefixes mark the battle lines worth shouting about.
var impactPrefixes = []string{
	"A wild ",
	"A shiny wild ",
	"It's super effective",
	"Critical hit",
	"Gotcha!",
	"What? ",
	"You earned the",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "-- "):
		return kindHPLine
	case strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "There is no"):
		return kindError
	case strings.Contains(line, "fainted!"),
		strings.Contains(line, "grew to level"),
		strings.Contains(line, "evolved into"):
		return kindImpact
	case containsQuotedSpeech(line):
		return kindDialogue
	}
	for _, p := range impactPrefixes {
		if strings.HasPrefix(line, p) {
			return kindImpact
		}
	}
	return kindNarration
}

// containsQuotedSpeech checks if a line contains trainer dialogue in
// double quotes.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '"' {
			if inQuote && quoteLen > 3 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
