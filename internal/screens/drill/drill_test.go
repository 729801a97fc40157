package drill

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	core "github.com/abhisek/vocabiz/internal/drill"
	"github.com/abhisek/vocabiz/internal/router"
	"github.com/abhisek/vocabiz/internal/store"
	"github.com/abhisek/vocabiz/internal/vocab"
)

type mockEventRepo struct {
	store.EventRepo
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
	fail          error
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return m.fail
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return m.fail
}

func (m *mockEventRepo) actions() []string {
	out := make([]string, len(m.sessionEvents))
	for i, e := range m.sessionEvents {
		out[i] = e.Action
	}
	return out
}

type mockRecorder struct {
	calls int
	err   error
}

func (m *mockRecorder) Record(context.Context, string) (int, error) {
	m.calls++
	return m.calls, m.err
}

func testLesson() *vocab.Lesson {
	return &vocab.Lesson{
		Key:   "word1.txt",
		Title: "Animals",
		Pairs: []vocab.WordPair{
			vocab.NewWordPair("cat", "gato"),
			vocab.NewWordPair("dog", "perro"),
			vocab.NewWordPair("bird", "pájaro"),
		},
	}
}

func newTestScreen(t *testing.T, lesson *vocab.Lesson) (*DrillScreen, *mockEventRepo, *mockRecorder) {
	t.Helper()
	events := &mockEventRepo{}
	rec := &mockRecorder{}
	s := New(lesson, Deps{
		Events:    events,
		Recorder:  rec,
		LearnerID: "ana",
		Rand:      core.NewRand(7),
	})
	s.Init()
	return s, events, rec
}

func press(s *DrillScreen, k string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch k {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		r := []rune(k)[0]
		msg = tea.KeyPressMsg{Code: r, Text: k}
	}
	_, cmd := s.Update(msg)
	return cmd
}

// numberFor returns the key that picks answer among the current options.
func numberFor(t *testing.T, s *DrillScreen, answer string) string {
	t.Helper()
	for i, o := range s.choices.Options {
		if o == answer {
			return string(rune('1' + i))
		}
	}
	t.Fatalf("answer %q not among options %v", answer, s.choices.Options)
	return ""
}

func wrongNumber(t *testing.T, s *DrillScreen) string {
	t.Helper()
	for i, o := range s.choices.Options {
		if o != s.session.CorrectAnswer() {
			return string(rune('1' + i))
		}
	}
	t.Fatal("no wrong option available")
	return ""
}

func TestInit_PresentsFirstWord(t *testing.T) {
	s, events, _ := newTestScreen(t, testLesson())

	if s.session.State() != core.StatePresenting {
		t.Fatalf("state = %v, want presenting", s.session.State())
	}
	if len(s.choices.Options) != 3 {
		t.Errorf("expected 3 options, got %v", s.choices.Options)
	}
	if got := events.actions(); len(got) != 1 || got[0] != store.ActionStart {
		t.Errorf("session events = %v", got)
	}
	if events.sessionEvents[0].LearnerID != "ana" || events.sessionEvents[0].TotalWords != 3 {
		t.Errorf("start event = %+v", events.sessionEvents[0])
	}
	if s.Title() != "Animals" {
		t.Errorf("Title() = %q", s.Title())
	}
	if !strings.Contains(s.View(80, 24), "1/3") {
		t.Error("view should show progress 1/3")
	}
}

func TestAnswerThenAdvance(t *testing.T) {
	s, events, _ := newTestScreen(t, testLesson())
	first, _ := s.session.CurrentWord()

	cmd := press(s, numberFor(t, s, s.session.CorrectAnswer()))
	if cmd == nil {
		t.Fatal("expected a feedback tick")
	}
	if s.session.State() != core.StateAnswered || s.result == nil || !s.result.IsCorrect {
		t.Fatalf("expected a correct answer, state=%v result=%+v", s.session.State(), s.result)
	}
	if len(events.answerEvents) != 1 || !events.answerEvents[0].Correct || events.answerEvents[0].Source != first.Source {
		t.Errorf("answer events = %+v", events.answerEvents)
	}
	if s.choices.Correct < 0 || s.choices.Options[s.choices.Correct] != s.result.CorrectAnswer {
		t.Errorf("revealed index %d does not point at %q", s.choices.Correct, s.result.CorrectAnswer)
	}

	s.Update(advanceMsg{gen: s.gen})
	next, _ := s.session.CurrentWord()
	if s.session.State() != core.StatePresenting || next.Source == first.Source {
		t.Errorf("expected the next word, got %q in state %v", next.Source, s.session.State())
	}
}

func TestKeysIgnoredWhileFeedbackShowing(t *testing.T) {
	s, events, _ := newTestScreen(t, testLesson())
	press(s, wrongNumber(t, s))

	press(s, "1")
	press(s, "enter")

	if s.session.TotalAttempts() != 1 || len(events.answerEvents) != 1 {
		t.Errorf("extra answers accepted during feedback: %d attempts", s.session.TotalAttempts())
	}
}

func TestArrowsAndEnter(t *testing.T) {
	s, _, _ := newTestScreen(t, testLesson())

	press(s, "down")
	want := s.choices.Options[1]
	press(s, "enter")

	if s.result == nil || s.result.Choice != want {
		t.Fatalf("expected choice %q, got %+v", want, s.result)
	}
}

func TestOutOfRangeNumberIgnored(t *testing.T) {
	s, _, _ := newTestScreen(t, testLesson())
	press(s, "6")
	if s.session.TotalAttempts() != 0 {
		t.Error("option 6 does not exist in a three-word lesson")
	}
}

func TestFullRunRecordsCompletion(t *testing.T) {
	s, events, rec := newTestScreen(t, testLesson())

	// One wrong answer, then everything right.
	press(s, wrongNumber(t, s))
	s.Update(advanceMsg{gen: s.gen})
	for i := 0; i < 10 && s.session.State() != core.StateComplete; i++ {
		press(s, numberFor(t, s, s.session.CorrectAnswer()))
		s.Update(advanceMsg{gen: s.gen})
	}

	if s.session.State() != core.StateComplete {
		t.Fatal("session did not complete")
	}
	if rec.calls != 1 {
		t.Errorf("recorder called %d times, want 1", rec.calls)
	}
	got := events.actions()
	if got[len(got)-1] != store.ActionComplete {
		t.Errorf("last session event = %v", got)
	}
	last := events.sessionEvents[len(events.sessionEvents)-1]
	if last.Attempts != 4 || last.Correct != 3 {
		t.Errorf("complete event = %+v", last)
	}
	if len(events.answerEvents) != 4 {
		t.Errorf("answer events = %d, want 4", len(events.answerEvents))
	}

	view := s.View(80, 30)
	for _, part := range []string{"Lesson complete!", "Accuracy: 75%", "Completed: 1 time"} {
		if !strings.Contains(view, part) {
			t.Errorf("summary missing %q", part)
		}
	}

	if cmd := press(s, "enter"); cmd == nil {
		t.Fatal("expected pop on Enter")
	} else if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Enter on summary should pop")
	}
}

func TestRecorderFailureShownNotFatal(t *testing.T) {
	lesson := &vocab.Lesson{Key: "one.txt", Title: "One", Pairs: []vocab.WordPair{vocab.NewWordPair("sun", "sol")}}
	s, _, rec := newTestScreen(t, lesson)
	rec.err = errors.New("db locked")

	press(s, "1")
	s.Update(advanceMsg{gen: s.gen})

	if s.session.State() != core.StateComplete {
		t.Fatal("expected completion")
	}
	if !strings.Contains(s.View(80, 30), "could not be saved") {
		t.Error("summary should mention the save failure")
	}
}

func TestPauseDropsStaleTick(t *testing.T) {
	s, _, _ := newTestScreen(t, testLesson())
	press(s, wrongNumber(t, s))
	stale := s.gen

	press(s, "p")
	if !s.session.Paused() {
		t.Fatal("expected paused")
	}
	if !strings.Contains(s.View(80, 24), "Paused") {
		t.Error("view should show paused")
	}
	s.Update(advanceMsg{gen: stale})
	if s.session.State() != core.StateAnswered {
		t.Fatal("tick advanced a paused session")
	}

	if cmd := press(s, "p"); cmd == nil {
		t.Fatal("resume after an answer should reschedule the advance")
	}
	s.Update(advanceMsg{gen: stale})
	if s.session.State() != core.StateAnswered {
		t.Fatal("stale tick advanced after resume")
	}

	s.Update(advanceMsg{gen: s.gen})
	if s.session.State() != core.StatePresenting {
		t.Errorf("state = %v, want presenting", s.session.State())
	}
}

func TestPausedIgnoresAnswers(t *testing.T) {
	s, _, _ := newTestScreen(t, testLesson())
	press(s, "p")
	press(s, "1")
	if s.session.TotalAttempts() != 0 {
		t.Error("answer accepted while paused")
	}
}

func TestRestart(t *testing.T) {
	s, events, _ := newTestScreen(t, testLesson())
	press(s, numberFor(t, s, s.session.CorrectAnswer()))
	stale := s.gen

	press(s, "r")

	if s.session.TotalAttempts() != 0 || s.session.Remaining() != 3 {
		t.Errorf("restart kept progress: attempts=%d remaining=%d", s.session.TotalAttempts(), s.session.Remaining())
	}
	if s.session.State() != core.StatePresenting || s.result != nil {
		t.Errorf("expected a fresh word, state=%v", s.session.State())
	}
	word, _ := s.session.CurrentWord()
	s.Update(advanceMsg{gen: stale})
	if again, _ := s.session.CurrentWord(); again != word {
		t.Error("stale tick changed the word after restart")
	}

	got := events.actions()
	if got[len(got)-1] != store.ActionRestart {
		t.Errorf("session events = %v", got)
	}
}

func TestEscRecordsQuit(t *testing.T) {
	s, events, _ := newTestScreen(t, testLesson())

	cmd := press(s, "esc")
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop the screen")
	}
	got := events.actions()
	if got[len(got)-1] != store.ActionQuit {
		t.Errorf("session events = %v", got)
	}
}

func TestEmptyLessonShowsError(t *testing.T) {
	s, events, _ := newTestScreen(t, &vocab.Lesson{Key: "empty.txt", Title: "Empty"})

	if !strings.Contains(s.View(80, 24), "Could not start drill") {
		t.Error("expected error view")
	}
	if len(events.sessionEvents) != 0 {
		t.Error("no events expected for a lesson that never started")
	}
	if cmd := press(s, "x"); cmd == nil {
		t.Error("any key should go back")
	}
}

func TestEventFailuresAreNotFatal(t *testing.T) {
	s, events, _ := newTestScreen(t, testLesson())
	events.fail = errors.New("disk full")

	press(s, numberFor(t, s, s.session.CorrectAnswer()))
	if s.result == nil || !s.result.IsCorrect {
		t.Fatal("answer should still be processed")
	}
}

func TestFeedbackDelayUsed(t *testing.T) {
	events := &mockEventRepo{}
	s := New(testLesson(), Deps{Events: events, FeedbackDelay: time.Millisecond, Rand: core.NewRand(1)})
	s.Init()

	cmd := press(s, "1")
	if cmd == nil {
		t.Fatal("expected tick")
	}
	msg, ok := cmd().(advanceMsg)
	if !ok || msg.gen != s.gen {
		t.Errorf("tick produced %#v, want advanceMsg{gen: %d}", msg, s.gen)
	}
}

func TestSessionEventsPersistedByObserver(t *testing.T) {
	events := &mockEventRepo{}
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := New(testLesson(), Deps{
		Events:    events,
		LearnerID: "ana",
		Rand:      core.NewRand(3),
		Now:       func() time.Time { return clock },
	})
	s.Init()

	// Drive the session directly: persistence must not depend on the key handler.
	clock = clock.Add(1200 * time.Millisecond)
	want, _ := s.session.CurrentWord()
	if _, err := s.session.SubmitAnswer("not an option"); err != nil {
		t.Fatal(err)
	}
	if len(events.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(events.answerEvents))
	}
	got := events.answerEvents[0]
	if got.Correct || got.Source != want.Source || got.LearnerAnswer != "not an option" || got.TimeMs != 1200 {
		t.Errorf("answer event = %+v", got)
	}

	for s.session.State() != core.StateComplete {
		if _, err := s.session.PresentNext(context.Background()); err != nil {
			t.Fatal(err)
		}
		if s.session.State() == core.StatePresenting {
			if _, err := s.session.SubmitAnswer(s.session.CorrectAnswer()); err != nil {
				t.Fatal(err)
			}
		}
	}

	acts := events.actions()
	if acts[len(acts)-1] != store.ActionComplete {
		t.Fatalf("session events = %v, want trailing complete", acts)
	}
	last := events.sessionEvents[len(events.sessionEvents)-1]
	if last.Attempts != 4 || last.Correct != 3 {
		t.Errorf("complete event = %+v, want 4 attempts 3 correct", last)
	}
	if len(events.answerEvents) != 4 {
		t.Errorf("answer events = %d, want 4", len(events.answerEvents))
	}
}
