package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabiz/internal/lessongen"
	"github.com/abhisek/vocabiz/internal/router"
	"github.com/abhisek/vocabiz/internal/screen"
	"github.com/abhisek/vocabiz/internal/vocab"
)

type fakeGenerator struct {
	got lessongen.Request
	err error
}

func (f *fakeGenerator) Generate(_ context.Context, req lessongen.Request) (*vocab.Lesson, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &vocab.Lesson{Title: "Kitchen", Pairs: []vocab.WordPair{vocab.NewWordPair("spoon", "cuchara")}}, nil
}

type drillStub struct{ lesson *vocab.Lesson }

func (d *drillStub) Init() tea.Cmd                           { return nil }
func (d *drillStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return d, nil }
func (d *drillStub) View(int, int) string                    { return "" }
func (d *drillStub) Title() string                           { return d.lesson.Title }

func typeText(s *GenerateScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestGenerateWritesNextLesson(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "word1.txt"), []byte("Old\na - b\n"), 0o644))

	gen := &fakeGenerator{}
	s := New(Deps{Generator: gen, Dir: dir, Count: 12})
	typeText(s, "kitchen")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, s.busy)

	s.Update(cmd())
	assert.False(t, s.busy)
	require.NotNil(t, s.saved)

	assert.Equal(t, "kitchen", gen.got.Topic)
	assert.Equal(t, 12, gen.got.Count)
	assert.Equal(t, "word2.txt", s.saved.lesson.Key)

	lesson, err := vocab.LoadFile(filepath.Join(dir, "word2.txt"), true, nil)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", lesson.Title)
	assert.Equal(t, "cuchara", lesson.Pairs[0].Target)

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestGenerateFailureKeepsInput(t *testing.T) {
	s := New(Deps{Generator: &fakeGenerator{err: errors.New("quota exceeded")}, Dir: t.TempDir()})
	typeText(s, "travel")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Nil(t, s.saved)
	assert.Contains(t, s.View(80, 24), "quota exceeded")
	assert.Equal(t, "travel", s.input.Value())
}

func TestEmptyTopicIgnored(t *testing.T) {
	s := New(Deps{Generator: &fakeGenerator{}, Dir: t.TempDir()})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, s.busy)
}

func TestEscapeBlockedWhileBusy(t *testing.T) {
	s := New(Deps{Generator: &fakeGenerator{}, Dir: t.TempDir()})
	typeText(s, "x")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestSavedLessonStartsDrillInPlace(t *testing.T) {
	var started *vocab.Lesson
	s := New(Deps{
		Generator: &fakeGenerator{},
		Dir:       t.TempDir(),
		StartDrill: func(l *vocab.Lesson) screen.Screen {
			started = l
			return &drillStub{lesson: l}
		},
	})
	typeText(s, "kitchen")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	require.NotNil(t, s.saved)
	assert.Equal(t, "Start drill", s.KeyHints()[0].Description)

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Kitchen", msg.Screen.Title())
	require.NotNil(t, started)
	assert.Equal(t, "word1.txt", started.Key)

	r := router.New(&drillStub{lesson: &vocab.Lesson{Title: "Lessons"}})
	r.Update(router.PushScreenMsg{Screen: s})
	r.Update(msg)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "Kitchen", r.Active().Title())
}

func TestSavedLessonEscReturnsToLessons(t *testing.T) {
	s := New(Deps{
		Generator:  &fakeGenerator{},
		Dir:        t.TempDir(),
		StartDrill: func(l *vocab.Lesson) screen.Screen { return &drillStub{lesson: l} },
	})
	typeText(s, "kitchen")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
