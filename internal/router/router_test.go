package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabiz/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "lessons"})

	drill := &stubScreen{title: "drill"}
	r.Push(drill)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "drill" {
		t.Errorf("expected active 'drill', got %q", r.Active().Title())
	}
	if !drill.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "lessons"})
	r.Push(&stubScreen{title: "drill"})

	r.Pop()
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "lessons" {
		t.Errorf("expected active 'lessons', got %q", r.Active().Title())
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "lessons"})
	r.Push(&stubScreen{title: "generate"})

	drill := &stubScreen{title: "drill"}
	r.Update(ReplaceScreenMsg{Screen: drill})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "drill" || !drill.initRan {
		t.Errorf("replace did not activate and init the new screen")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "lessons"}
	top := &stubScreen{title: "drill"}
	r := New(bottom)
	r.Update(PushScreenMsg{Screen: top})

	r.Update("hello")

	if len(top.got) != 1 || len(bottom.got) != 0 {
		t.Errorf("message routed to wrong screen: top=%v bottom=%v", top.got, bottom.got)
	}
	if r.View(80, 24) != "drill" {
		t.Errorf("View() = %q", r.View(80, 24))
	}
}

func TestCommands(t *testing.T) {
	if _, ok := PopCmd().(PopScreenMsg); !ok {
		t.Error("PopCmd should produce PopScreenMsg")
	}
	s := &stubScreen{title: "x"}
	msg, ok := PushCmd(s)().(PushScreenMsg)
	if !ok || msg.Screen != s {
		t.Error("PushCmd should produce PushScreenMsg carrying the screen")
	}
	rep, ok := ReplaceCmd(s)().(ReplaceScreenMsg)
	if !ok || rep.Screen != s {
		t.Error("ReplaceCmd should produce ReplaceScreenMsg carrying the screen")
	}
}

type focusScreen struct {
	stubScreen
	focused int
}

func (f *focusScreen) Focus() tea.Cmd {
	f.focused++
	return func() tea.Msg { return "refreshed" }
}

func TestPopFocusesScreenBelow(t *testing.T) {
	bottom := &focusScreen{stubScreen: stubScreen{title: "lessons"}}
	r := New(bottom)
	r.Push(&stubScreen{title: "drill"})

	cmd := r.Update(PopScreenMsg{})

	if bottom.focused != 1 {
		t.Errorf("Focus called %d times, want 1", bottom.focused)
	}
	if cmd == nil || cmd() != "refreshed" {
		t.Error("Pop should return the Focus command")
	}
	if r.Pop() != nil || bottom.focused != 1 {
		t.Error("Pop at the bottom must not refocus")
	}
}
