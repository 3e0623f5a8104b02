package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// commands are the control-mode commands with their help text.
var commands = []struct {
	name string
	help string
}{
	{"help", "Print this help"},
	{"check", "Toggle cross-checking results on the expr VM"},
	{"tree", "Toggle printing expression trees"},
	{"tokens", "Toggle printing tokens"},
	{"clear", "Clear the screen"},
	{"quit", "Exit the REPL"},
}

type commandSource struct{}

func (commandSource) String(i int) string { return commands[i].name }
func (commandSource) Len() int            { return len(commands) }

// complete returns the commands matching input, best first. Empty input
// matches every command in declaration order.
func complete(input string) fuzzy.Matches {
	input = strings.TrimSpace(input)
	if input == "" {
		all := make(fuzzy.Matches, len(commands))
		for i, c := range commands {
			all[i] = fuzzy.Match{Str: c.name, Index: i}
		}

		return all
	}

	return fuzzy.FindFrom(input, commandSource{})
}

// renderCandidates draws matches on one line, highlighting the matched
// characters and the selected candidate.
func renderCandidates(matches fuzzy.Matches, selected int) string {
	parts := make([]string, len(matches))

	for i, m := range matches {
		var sb strings.Builder

		hit := make(map[int]bool, len(m.MatchedIndexes))
		for _, j := range m.MatchedIndexes {
			hit[j] = true
		}

		for j, r := range m.Str {
			s := string(r)
			if hit[j] {
				s = lipgloss.NewStyle().Bold(true).Render(s)
			}

			sb.WriteString(s)
		}

		style := suggestionStyle
		if i == selected {
			style = selectedStyle
		}

		parts[i] = style.Render(sb.String())
	}

	return strings.Join(parts, " ")
}

func helpMessage() string {
	var sb strings.Builder

	sb.WriteString("Commands (press Esc to toggle mode):\n\n")

	for _, c := range commands {
		sb.WriteString("  " + c.name + strings.Repeat(" ", 8-len(c.name)) + c.help + "\n")
	}

	sb.WriteString(`
Usage:
  Type an arithmetic expression to evaluate it: + - * / ^ and parentheses
  Press Tab / Shift-Tab to cycle command candidates
  Use Up/Down arrows for history within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit
`)

	return sb.String()
}
