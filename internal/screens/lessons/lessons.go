package lessons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/vocabiz/internal/router"
	"github.com/abhisek/vocabiz/internal/screen"
	"github.com/abhisek/vocabiz/internal/store"
	"github.com/abhisek/vocabiz/internal/ui/components"
	"github.com/abhisek/vocabiz/internal/ui/layout"
	"github.com/abhisek/vocabiz/internal/ui/theme"
	"github.com/abhisek/vocabiz/internal/vocab"
)

// Deps are the collaborators of the lessons screen.
type Deps struct {
	Dir       string
	Progress  store.ProgressRepo
	LearnerID string
	Logger    logrus.FieldLogger

	// StartDrill builds the drill screen for a lesson.
	StartDrill func(*vocab.Lesson) screen.Screen

	// Generate builds the lesson generator screen. Nil hides the option.
	Generate func() screen.Screen

	// History builds the session history screen. Nil hides the option.
	History func() screen.Screen
}

type loadedMsg struct {
	lessons []*vocab.Lesson
	counts  map[string]int
	err     error
}

// LessonsScreen lists the lessons in a directory with completion counts.
type LessonsScreen struct {
	deps    Deps
	lessons []*vocab.Lesson
	counts  map[string]int
	menu    components.Menu
	loading bool
	err     error

	up, down, start, reload, generate, history key.Binding
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)
var _ screen.Focuser = (*LessonsScreen)(nil)

func New(deps Deps) *LessonsScreen {
	return &LessonsScreen{
		deps:     deps,
		loading:  true,
		up:       key.NewBinding(key.WithKeys("up", "k")),
		down:     key.NewBinding(key.WithKeys("down", "j")),
		start:    key.NewBinding(key.WithKeys("enter")),
		reload:   key.NewBinding(key.WithKeys("r")),
		generate: key.NewBinding(key.WithKeys("g")),
		history:  key.NewBinding(key.WithKeys("h")),
	}
}

func (s *LessonsScreen) Init() tea.Cmd {
	return s.load()
}

// Focus reloads counts when returning from a drill.
func (s *LessonsScreen) Focus() tea.Cmd {
	return s.load()
}

func (s *LessonsScreen) Title() string {
	return "Lessons"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "r", Description: "Reload"},
	}
	if s.deps.Generate != nil {
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Generate"})
	}
	if s.deps.History != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *LessonsScreen) load() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		lessons, err := vocab.LoadDir(deps.Dir, deps.Logger)
		if err != nil {
			return loadedMsg{err: err}
		}
		counts := map[string]int{}
		if deps.Progress != nil {
			counts, err = deps.Progress.Counts(context.Background(), deps.LearnerID)
			if err != nil && deps.Logger != nil {
				deps.Logger.WithError(err).Warn("failed to load completion counts")
			}
		}
		return loadedMsg{lessons: lessons, counts: counts}
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.err = msg.err
		s.lessons = msg.lessons
		s.counts = msg.counts
		s.menu.SetItems(s.items())
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, s.up):
			s.menu.Up()
		case key.Matches(msg, s.down):
			s.menu.Down()
		case key.Matches(msg, s.reload):
			s.loading = true
			return s, s.load()
		case key.Matches(msg, s.generate):
			if s.deps.Generate != nil {
				return s, router.PushCmd(s.deps.Generate())
			}
		case key.Matches(msg, s.history):
			if s.deps.History != nil {
				return s, router.PushCmd(s.deps.History())
			}
		case key.Matches(msg, s.start):
			if l := s.Selected(); l != nil && s.deps.StartDrill != nil {
				return s, router.PushCmd(s.deps.StartDrill(l))
			}
		}
	}
	return s, nil
}

// Selected returns the lesson under the cursor, or nil.
func (s *LessonsScreen) Selected() *vocab.Lesson {
	if s.menu.Selected < 0 || s.menu.Selected >= len(s.lessons) {
		return nil
	}
	return s.lessons[s.menu.Selected]
}

func (s *LessonsScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, len(s.lessons))
	for i, l := range s.lessons {
		items[i] = components.MenuItem{
			Label:  l.Title,
			Detail: fmt.Sprintf("%d words  Completed: %d times", l.Len(), s.counts[l.Key]),
		}
	}
	return items
}

func (s *LessonsScreen) View(width, height int) string {
	var body string
	switch {
	case s.loading:
		body = theme.Hint.Render("Loading lessons...")
	case errors.Is(s.err, vocab.ErrNoLessons):
		msg := fmt.Sprintf("No lessons found in %s.\nAdd word1.txt with a title line and \"word - translation\" lines.", s.deps.Dir)
		if s.deps.Generate != nil {
			msg += "\nOr press g to generate one."
		}
		body = theme.Body.Render(msg)
	case s.err != nil:
		body = theme.Incorrect.Render("Could not load lessons: " + s.err.Error())
	default:
		var b strings.Builder
		b.WriteString(theme.Title.Render("Choose a lesson"))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
		body = b.String()
	}
	return components.Center(body, width, height)
}
