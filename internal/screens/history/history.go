package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabiz/internal/router"
	"github.com/abhisek/vocabiz/internal/screen"
	"github.com/abhisek/vocabiz/internal/store"
	"github.com/abhisek/vocabiz/internal/ui/components"
	"github.com/abhisek/vocabiz/internal/ui/layout"
	"github.com/abhisek/vocabiz/internal/ui/theme"
)

// Limit is the number of sessions listed.
const Limit = 50

type historyLoadedMsg struct {
	sessions []store.SessionEvent
	err      error
}

// HistoryScreen lists the learner's completed drill sessions.
type HistoryScreen struct {
	events    store.EventRepo
	learnerID string
	sessions  []store.SessionEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	err       error

	up, down, toggle key.Binding
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo, learnerID string) *HistoryScreen {
	return &HistoryScreen{
		events:    events,
		learnerID: learnerID,
		expanded:  make(map[int]bool),
		up:        key.NewBinding(key.WithKeys("up", "k")),
		down:      key.NewBinding(key.WithKeys("down", "j")),
		toggle:    key.NewBinding(key.WithKeys("enter")),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, learner := s.events, s.learnerID
	return func() tea.Msg {
		sessions, err := events.RecentSessions(context.Background(), learner, Limit)
		return historyLoadedMsg{sessions: sessions, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.err = msg.err
		s.sessions = msg.sessions
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case msg.String() == "esc":
			return s, router.PopCmd
		case key.Matches(msg, s.up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.down):
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case key.Matches(msg, s.toggle):
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return components.Center(theme.Incorrect.Render("Error: "+s.err.Error()), width, height)
	case !s.loaded:
		return components.Center(theme.Hint.Render("Loading history..."), width, height)
	case len(s.sessions) == 0:
		return components.Center(theme.Hint.Render("No completed drills yet. Finish a lesson to see it here."), width, height)
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sess := range s.sessions {
		acc := store.AnswerStats{Attempts: sess.Attempts, Correct: sess.Correct}.Percent()

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %s  %d%% accuracy",
			prefix, sess.Timestamp.Local().Format("Jan 02, 2006 15:04"), sess.LessonKey, acc)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("Words: %d  Attempts: %d  Correct: %d  Time: %s",
				sess.TotalWords, sess.Attempts, sess.Correct, clock(sess.DurationSecs))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Muted.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
