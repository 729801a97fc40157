package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabiz/internal/ui/theme"
)

// MultiChoice is a numbered option list. Options are chosen by number
// (1-based) or by moving the cursor and confirming.
type MultiChoice struct {
	Options  []string
	Selected int

	// Chosen and Correct are set by Reveal; -1 until then.
	Chosen  int
	Correct int
}

// NewMultiChoice creates a selector over options with the cursor on the first.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1, Correct: -1}
}

// Revealed reports whether the answer has been shown.
func (m MultiChoice) Revealed() bool {
	return m.Chosen >= 0
}

// Up moves the cursor up, stopping at the first option.
func (m *MultiChoice) Up() {
	if m.Selected > 0 {
		m.Selected--
	}
}

// Down moves the cursor down, stopping at the last option.
func (m *MultiChoice) Down() {
	if m.Selected < len(m.Options)-1 {
		m.Selected++
	}
}

// Pick returns the option labelled n (1-based).
func (m *MultiChoice) Pick(n int) (string, bool) {
	if n < 1 || n > len(m.Options) {
		return "", false
	}
	m.Selected = n - 1
	return m.Options[m.Selected], true
}

// Current returns the option under the cursor.
func (m MultiChoice) Current() (string, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return "", false
	}
	return m.Options[m.Selected], true
}

// Reveal marks which option was chosen and which one was right.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.Chosen = chosen
	m.Correct = correct
}

// View renders the options, highlighting the result once revealed.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed() && i == m.Correct:
			style = theme.Correct
		case m.Revealed() && i == m.Chosen:
			style = theme.Incorrect
		case m.Revealed():
			style = theme.Muted
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
