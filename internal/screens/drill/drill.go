package drill

import (
	"context"
	"io"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	core "github.com/abhisek/vocabiz/internal/drill"
	"github.com/abhisek/vocabiz/internal/router"
	"github.com/abhisek/vocabiz/internal/screen"
	"github.com/abhisek/vocabiz/internal/store"
	"github.com/abhisek/vocabiz/internal/ui/components"
	"github.com/abhisek/vocabiz/internal/vocab"
)

// Deps are the collaborators of a drill screen.
type Deps struct {
	Events    store.EventRepo
	Recorder  core.CompletionRecorder
	LearnerID string

	// FeedbackDelay is how long answer feedback stays up before the next word.
	FeedbackDelay time.Duration

	// Rand drives shuffles, distractors and feedback lines. Nil uses the system source.
	Rand   core.Rand
	Logger logrus.FieldLogger

	// Now defaults to time.Now.
	Now func() time.Time
}

// DrillScreen runs one lesson through a drill session.
type DrillScreen struct {
	deps    Deps
	lesson  *vocab.Lesson
	session *core.Session
	keys    keyMap
	log     logrus.FieldLogger

	sessionID string
	startedAt time.Time
	shownAt   time.Time

	options  core.OptionSet
	choices  components.MultiChoice
	result   *core.AnswerResult
	feedback string

	gen    int
	errMsg string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.EscapeHandler = (*DrillScreen)(nil)

// New creates a drill screen for lesson. The session starts in Init.
func New(lesson *vocab.Lesson, deps Deps) *DrillScreen {
	if deps.Rand == nil {
		deps.Rand = core.SystemRand()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Logger = l
	}

	s := &DrillScreen{
		deps:      deps,
		lesson:    lesson,
		keys:      defaultKeyMap(),
		sessionID: uuid.New().String(),
	}
	s.log = deps.Logger.WithFields(logrus.Fields{"session_id": s.sessionID, "lesson": lesson.Key})
	s.session = core.NewSession(
		core.WithRand(deps.Rand),
		core.WithRecorder(deps.Recorder),
		core.WithLogger(s.log),
		core.WithObserver(core.ObserverFuncs{
			OnPresented: s.wordPresented,
			OnAnswered:  s.recordAnswer,
			OnCompleted: s.recordCompletion,
		}),
	)
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	if err := s.session.Start(s.lesson); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.startedAt = s.deps.Now()
	s.appendSession(store.ActionStart, s.session.Stats())
	s.log.WithField("words", s.session.TotalWords()).Info("drill started")
	s.advance()
	return nil
}

func (s *DrillScreen) Title() string {
	return s.lesson.Title
}

// HandlesEscape keeps the router from popping the screen so a quit event
// can be recorded first.
func (s *DrillScreen) HandlesEscape() bool {
	return true
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.gen != s.gen || s.session.Paused() {
			return s, nil
		}
		s.advance()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.PopCmd
	}

	switch {
	case key.Matches(msg, s.keys.Back):
		return s.quit()
	case key.Matches(msg, s.keys.Restart):
		return s.restart()
	case key.Matches(msg, s.keys.Pause):
		return s.togglePause()
	}

	if s.session.State() == core.StateComplete {
		if key.Matches(msg, s.keys.Confirm) {
			return s, router.PopCmd
		}
		return s, nil
	}
	if s.session.Paused() || s.session.State() != core.StatePresenting {
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Up):
		s.choices.Up()
	case key.Matches(msg, s.keys.Down):
		s.choices.Down()
	case key.Matches(msg, s.keys.Confirm):
		if choice, ok := s.choices.Current(); ok {
			return s.answer(choice)
		}
	case key.Matches(msg, s.keys.Choose):
		if choice, ok := s.choices.Pick(int(msg.Code - '0')); ok {
			return s.answer(choice)
		}
	}
	return s, nil
}

// advance shows the next word, or the summary once the queue is empty.
func (s *DrillScreen) advance() {
	p, err := s.session.PresentNext(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.result = nil
	s.feedback = ""
	if p.Done {
		return
	}
	s.options = core.OptionSet{Options: p.Options, CorrectAnswer: p.CorrectAnswer}
	s.choices = components.NewMultiChoice(p.Options)
}

func (s *DrillScreen) answer(choice string) (screen.Screen, tea.Cmd) {
	res, err := s.session.SubmitAnswer(choice)
	if err != nil {
		s.log.WithError(err).Debug("answer ignored")
		return s, nil
	}
	s.result = &res
	s.feedback = core.PickFeedback(res.IsCorrect, s.deps.Rand)
	s.choices.Reveal(s.choices.Selected, s.options.IndexOf(res.CorrectAnswer))
	return s, s.scheduleAdvance()
}

// Observer callbacks run inside session calls and must not call back into it.

func (s *DrillScreen) wordPresented(core.Presentation) {
	s.shownAt = s.deps.Now()
}

func (s *DrillScreen) recordAnswer(res core.AnswerResult) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:     s.sessionID,
		LearnerID:     s.deps.LearnerID,
		LessonKey:     s.lesson.Key,
		Source:        res.Pair.Source,
		CorrectAnswer: res.CorrectAnswer,
		LearnerAnswer: res.Choice,
		Correct:       res.IsCorrect,
		TimeMs:        s.deps.Now().Sub(s.shownAt).Milliseconds(),
	})
	if err != nil {
		s.log.WithError(err).Warn("failed to record answer")
	}
}

func (s *DrillScreen) recordCompletion(st core.Stats) {
	s.appendSession(store.ActionComplete, st)
	s.log.WithFields(logrus.Fields{
		"attempts": st.TotalAttempts,
		"accuracy": st.Accuracy,
		"count":    st.CompletionCount,
	}).Info("drill complete")
}

func (s *DrillScreen) scheduleAdvance() tea.Cmd {
	s.gen++
	gen := s.gen
	return tea.Tick(s.deps.FeedbackDelay, func(time.Time) tea.Msg {
		return advanceMsg{gen: gen}
	})
}

func (s *DrillScreen) togglePause() (screen.Screen, tea.Cmd) {
	state := s.session.State()
	if state != core.StatePresenting && state != core.StateAnswered {
		return s, nil
	}
	if !s.session.Paused() {
		s.session.Pause()
		s.gen++
		return s, nil
	}
	s.session.Resume()
	if state == core.StateAnswered {
		return s, s.scheduleAdvance()
	}
	return s, nil
}

func (s *DrillScreen) restart() (screen.Screen, tea.Cmd) {
	if err := s.session.Restart(); err != nil {
		s.log.WithError(err).Warn("restart failed")
		return s, nil
	}
	s.gen++
	s.startedAt = s.deps.Now()
	s.appendSession(store.ActionRestart, s.session.Stats())
	s.log.Info("drill restarted")
	s.advance()
	return s, nil
}

func (s *DrillScreen) quit() (screen.Screen, tea.Cmd) {
	if s.errMsg == "" && s.session.State() != core.StateComplete {
		s.appendSession(store.ActionQuit, s.session.Stats())
	}
	return s, router.PopCmd
}

func (s *DrillScreen) appendSession(action string, st core.Stats) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:    s.sessionID,
		LearnerID:    s.deps.LearnerID,
		LessonKey:    s.lesson.Key,
		Action:       action,
		TotalWords:   st.TotalWords,
		Attempts:     st.TotalAttempts,
		Correct:      st.CorrectAttempts,
		DurationSecs: int(s.deps.Now().Sub(s.startedAt).Seconds()),
	})
	if err != nil {
		s.log.WithError(err).WithField("action", action).Warn("failed to record session event")
	}
}
