package drill

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	core "github.com/abhisek/vocabiz/internal/drill"
	"github.com/abhisek/vocabiz/internal/ui/components"
	"github.com/abhisek/vocabiz/internal/ui/layout"
	"github.com/abhisek/vocabiz/internal/ui/theme"
)

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.session.State() == core.StateComplete:
		return []layout.KeyHint{
			{Key: "r", Description: "Restart"},
			{Key: "Enter", Description: "Lessons"},
		}
	case s.session.Paused():
		return []layout.KeyHint{
			{Key: "p", Description: "Resume"},
			{Key: "r", Description: "Restart"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		hint(s.keys.Choose),
		{Key: "↑↓", Description: "Move"},
		hint(s.keys.Confirm),
		hint(s.keys.Pause),
		hint(s.keys.Restart),
		{Key: "Esc", Description: "Quit"},
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (s *DrillScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.Center(theme.Incorrect.Render("Could not start drill: "+s.errMsg), width, height)
	}

	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.session.State() == core.StateComplete:
		body = s.renderSummary(cw)
	case s.session.Paused():
		body = s.renderStatus(cw) + "\n\n" + theme.Paused.Render("Paused. Press p to resume.")
	default:
		body = s.renderStatus(cw) + "\n\n" + s.renderWord(cw)
	}
	return components.Center(body, width, height)
}

func (s *DrillScreen) renderStatus(cw int) string {
	st := s.session.Stats()
	bar := components.NewProgressBar("Progress", s.session.Position(), st.TotalWords, cw).View()
	counters := theme.Muted.Render(fmt.Sprintf("Accuracy: %d%%   Attempts: %d", st.Accuracy, st.TotalAttempts))
	return lipgloss.JoinVertical(lipgloss.Center, bar, counters)
}

func (s *DrillScreen) renderWord(cw int) string {
	word, _ := s.session.CurrentWord()
	if s.result != nil {
		word = s.result.Pair
	}

	var b strings.Builder
	b.WriteString(theme.Muted.Render("Translate"))
	b.WriteString("\n\n")
	b.WriteString(theme.Word.Render(word.Source))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Align(lipgloss.Left).Render(s.choices.View()))

	if s.result != nil {
		b.WriteString("\n\n")
		if s.result.IsCorrect {
			b.WriteString(theme.Correct.Render(s.feedback))
		} else {
			b.WriteString(theme.Incorrect.Render(s.feedback))
			b.WriteString("\n")
			b.WriteString(theme.Muted.Render("Answer: " + s.result.CorrectAnswer))
		}
	}
	return components.Card(b.String(), cw)
}

func (s *DrillScreen) renderSummary(cw int) string {
	st := s.session.Stats()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Lesson complete!"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Words: %d\n", st.TotalWords)
	fmt.Fprintf(&b, "Attempts: %d\n", st.TotalAttempts)
	fmt.Fprintf(&b, "Accuracy: %d%%\n", st.Accuracy)
	if s.session.RecordErr() != nil {
		b.WriteString(theme.Incorrect.Render("Progress could not be saved."))
	} else {
		b.WriteString(theme.Correct.Render(completedLine(st.CompletionCount)))
	}
	b.WriteString("\n\n")
	b.WriteString(components.ButtonRow(
		components.Button{Key: "r", Label: "Restart"},
		components.Button{Key: "Enter", Label: "Lessons", Active: true},
	))
	return components.Card(b.String(), cw)
}

func completedLine(n int) string {
	if n == 1 {
		return "Completed: 1 time"
	}
	return fmt.Sprintf("Completed: %d times", n)
}
