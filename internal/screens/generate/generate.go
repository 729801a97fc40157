package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/vocabiz/internal/lessongen"
	"github.com/abhisek/vocabiz/internal/router"
	"github.com/abhisek/vocabiz/internal/screen"
	"github.com/abhisek/vocabiz/internal/ui/components"
	"github.com/abhisek/vocabiz/internal/ui/layout"
	"github.com/abhisek/vocabiz/internal/ui/theme"
	"github.com/abhisek/vocabiz/internal/vocab"
)

// Generator produces a lesson for a topic.
type Generator interface {
	Generate(ctx context.Context, req lessongen.Request) (*vocab.Lesson, error)
}

// Deps are the collaborators of the generate screen.
type Deps struct {
	Generator Generator
	Dir       string
	Count     int
	Timeout   time.Duration
	Logger    logrus.FieldLogger

	// StartDrill builds a drill screen for the saved lesson. Nil returns to
	// the lessons list instead.
	StartDrill func(*vocab.Lesson) screen.Screen
}

type generatedMsg struct {
	lesson *vocab.Lesson
	path   string
	err    error
}

// GenerateScreen asks for a topic and writes a generated lesson into the
// lessons directory.
type GenerateScreen struct {
	deps  Deps
	input components.TextInput
	busy  bool
	saved *generatedMsg
	err   error
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)
var _ screen.EscapeHandler = (*GenerateScreen)(nil)

func New(deps Deps) *GenerateScreen {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Minute
	}
	return &GenerateScreen{
		deps:  deps,
		input: components.NewTextInput("e.g. kitchen utensils", 80),
	}
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *GenerateScreen) Title() string {
	return "New Lesson"
}

// HandlesEscape keeps Esc from abandoning a request in flight.
func (s *GenerateScreen) HandlesEscape() bool {
	return true
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.busy:
		return []layout.KeyHint{{Key: "", Description: "Generating..."}}
	case s.saved != nil && s.deps.StartDrill != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start drill"},
			{Key: "Esc", Description: "Back to lessons"},
		}
	case s.saved != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Back to lessons"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.busy = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.saved = &msg
		return s, nil

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, router.PopCmd
		case "enter":
			if s.saved != nil {
				if s.deps.StartDrill != nil {
					return s, router.ReplaceCmd(s.deps.StartDrill(s.saved.lesson))
				}
				return s, router.PopCmd
			}
			if topic := s.input.Value(); topic != "" {
				s.busy = true
				s.err = nil
				return s, s.generate(topic)
			}
			return s, nil
		}
	}

	if s.busy || s.saved != nil {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *GenerateScreen) generate(topic string) tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()

		lesson, err := deps.Generator.Generate(ctx, lessongen.Request{Topic: topic, Count: deps.Count})
		if err != nil {
			return generatedMsg{err: err}
		}
		path, err := Save(deps.Dir, lesson)
		if err != nil {
			return generatedMsg{err: err}
		}
		if deps.Logger != nil {
			deps.Logger.WithFields(logrus.Fields{"topic": topic, "path": path, "words": lesson.Len()}).Info("lesson generated")
		}
		return generatedMsg{lesson: lesson, path: path}
	}
}

// Save writes lesson as the next free lesson file in dir and sets its key.
func Save(dir string, lesson *vocab.Lesson) (string, error) {
	path, err := vocab.NextLessonPath(dir)
	if err != nil {
		return "", err
	}
	if err := vocab.WriteLesson(path, lesson); err != nil {
		return "", err
	}
	lesson.Key = filepath.Base(path)
	return path, nil
}

func (s *GenerateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.saved != nil:
		body = theme.Correct.Render(fmt.Sprintf("Saved %q with %d words", s.saved.lesson.Title, s.saved.lesson.Len())) +
			"\n" + theme.Muted.Render(s.saved.path)
	case s.busy:
		body = theme.Hint.Render("Asking the model for words...")
	default:
		body = theme.Body.Render("Topic for the new lesson") + "\n\n" + s.input.View()
		if s.err != nil {
			body += "\n\n" + theme.Incorrect.Render("Generation failed: "+s.err.Error())
		}
	}
	return components.Center(components.Card(body, cw), width, height)
}
