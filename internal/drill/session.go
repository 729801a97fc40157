package drill

import (
	"context"
	"io"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/vocabiz/internal/vocab"
)

// State is the drill session phase.
type State int

const (
	StateIdle       State = iota // No lesson started
	StatePresenting              // A word is (or is about to be) shown
	StateAnswered                // Feedback for the last answer is showing
	StateComplete                // Every pair answered correctly once
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateAnswered:
		return "answered"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Stats is a point-in-time view of session counters.
type Stats struct {
	LessonKey       string
	LessonTitle     string
	TotalWords      int
	Remaining       int
	Completed       int
	TotalAttempts   int
	CorrectAttempts int
	Accuracy        int

	// CompletionCount is the recorder's count after completion (0 if unknown).
	CompletionCount int
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source for shuffles and distractor selection.
func WithRand(rng Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithRecorder sets the completion recorder.
func WithRecorder(r CompletionRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithObserver sets the observer notified of presentations and answers.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// Session drills one lesson until every pair has been answered correctly.
// It is not safe for concurrent use.
type Session struct {
	rng      Rand
	recorder CompletionRecorder
	observer Observer
	log      logrus.FieldLogger

	lesson    *vocab.Lesson
	queue     *ReviewQueue
	completed []vocab.WordPair

	current *vocab.WordPair
	options OptionSet

	state  State
	paused bool

	totalWords      int
	totalAttempts   int
	correctAttempts int

	recorded        bool
	completionCount int
	recordErr       error
}

// NewSession creates an idle session.
func NewSession(opts ...Option) *Session {
	s := &Session{state: StateIdle}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = SystemRand()
	}
	if s.observer == nil {
		s.observer = ObserverFuncs{}
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// Start loads lesson and moves to Presenting. Call PresentNext to show the
// first word.
func (s *Session) Start(lesson *vocab.Lesson) error {
	if lesson == nil || len(lesson.Pairs) == 0 {
		return ErrEmptyLesson
	}
	q, err := NewReviewQueue(lesson.Pairs, s.rng)
	if err != nil {
		return err
	}

	s.lesson = lesson
	s.queue = q
	s.totalWords = len(lesson.Pairs)
	s.reset()
	s.log = s.log.WithField("lesson", lesson.Key)
	return nil
}

// reset zeroes counters and per-run state and returns to Presenting.
func (s *Session) reset() {
	s.completed = nil
	s.current = nil
	s.options = OptionSet{}
	s.totalAttempts = 0
	s.correctAttempts = 0
	s.paused = false
	s.recorded = false
	s.completionCount = 0
	s.recordErr = nil
	s.state = StatePresenting
}

// PresentNext shows the next queued word, or completes the session when the
// queue is empty. It is a no-op while paused, while a word is already live,
// and after completion.
func (s *Session) PresentNext(ctx context.Context) (Presentation, error) {
	switch {
	case s.state == StateIdle:
		return Presentation{}, &StateError{Op: "present", State: s.state, Reason: "no lesson started"}
	case s.state == StateComplete:
		return Presentation{Done: true, Total: s.totalWords, Position: s.totalWords}, nil
	case s.paused:
		return s.presentation(), nil
	case s.state == StatePresenting && s.current != nil:
		return s.presentation(), nil
	}

	pair, ok := s.queue.PeekFront()
	if !ok {
		s.complete(ctx)
		return Presentation{Done: true, Total: s.totalWords, Position: s.totalWords}, nil
	}

	s.current = &pair
	s.options = BuildOptions(pair, s.lesson.Pairs, s.rng)
	s.state = StatePresenting

	p := s.presentation()
	s.observer.WordPresented(p)
	return p, nil
}

// complete moves to Complete and records the completion exactly once.
// Recorder failures are logged and kept in RecordErr.
func (s *Session) complete(ctx context.Context) {
	s.state = StateComplete
	s.current = nil
	s.options = OptionSet{}

	if !s.recorded {
		s.recorded = true
		if s.recorder != nil {
			count, err := s.recorder.Record(ctx, s.lesson.Key)
			if err != nil {
				s.recordErr = err
				s.log.WithError(err).Warn("failed to record lesson completion")
			} else {
				s.completionCount = count
			}
		}
	}

	s.observer.SessionCompleted(s.Stats())
}

// SubmitAnswer checks choice against the current word. A correct answer
// retires the pair; a wrong one sends it to the back of the queue.
func (s *Session) SubmitAnswer(choice string) (AnswerResult, error) {
	if s.state != StatePresenting || s.current == nil || s.paused {
		reason := ""
		if s.current == nil {
			reason = "no word presented"
		}
		return AnswerResult{}, &StateError{Op: "submit", State: s.state, Paused: s.paused, Reason: reason}
	}

	pair := *s.current
	res := AnswerResult{
		Pair:          pair,
		Choice:        choice,
		IsCorrect:     vocab.NormalizeTarget(choice) == s.options.CorrectAnswer,
		CorrectAnswer: s.options.CorrectAnswer,
	}

	s.totalAttempts++
	if res.IsCorrect {
		s.correctAttempts++
		s.queue.MarkCorrect()
		s.completed = append(s.completed, pair)
	} else {
		s.queue.MarkIncorrect()
	}
	s.state = StateAnswered

	s.observer.AnswerSubmitted(res)
	return res, nil
}

// Pause suspends presentation until Resume.
func (s *Session) Pause() {
	s.paused = true
}

// Resume clears the paused flag. It does not advance; call PresentNext.
func (s *Session) Resume() {
	s.paused = false
}

// Restart reshuffles the full lesson into the queue, clears progress and
// returns to Presenting. Call PresentNext afterwards.
func (s *Session) Restart() error {
	if s.totalWords == 0 {
		return &StateError{Op: "restart", State: s.state, Reason: "no lesson started"}
	}
	if err := s.queue.Reset(s.lesson.Pairs); err != nil {
		return err
	}
	s.reset()
	return nil
}

func (s *Session) presentation() Presentation {
	if s.current == nil {
		return Presentation{Total: s.totalWords, Position: s.Position()}
	}
	return Presentation{
		Pair:          *s.current,
		Options:       slices.Clone(s.options.Options),
		CorrectAnswer: s.options.CorrectAnswer,
		Position:      s.Position(),
		Total:         s.totalWords,
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Lesson returns the lesson being drilled, or nil before Start.
func (s *Session) Lesson() *vocab.Lesson { return s.lesson }

// CurrentWord returns the word on screen. ok is false when none is set.
func (s *Session) CurrentWord() (vocab.WordPair, bool) {
	if s.current == nil {
		return vocab.WordPair{}, false
	}
	return *s.current, true
}

// CurrentOptions returns a copy of the current answer choices.
func (s *Session) CurrentOptions() []string { return slices.Clone(s.options.Options) }

// CorrectAnswer returns the translation of the current word.
func (s *Session) CorrectAnswer() string { return s.options.CorrectAnswer }

// TotalWords is the lesson size, fixed at Start.
func (s *Session) TotalWords() int { return s.totalWords }

// TotalAttempts counts every submitted answer.
func (s *Session) TotalAttempts() int { return s.totalAttempts }

// CorrectAttempts counts correct submitted answers.
func (s *Session) CorrectAttempts() int { return s.correctAttempts }

// Remaining is the number of pairs still owed a correct answer.
func (s *Session) Remaining() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.Len()
}

// CompletedCount is the number of pairs answered correctly this run.
func (s *Session) CompletedCount() int { return len(s.completed) }

// Completed returns a copy of the retired pairs in the order they were retired.
func (s *Session) Completed() []vocab.WordPair { return slices.Clone(s.completed) }

// QueuePairs returns a copy of the pending pairs, front to back.
func (s *Session) QueuePairs() []vocab.WordPair {
	if s.queue == nil {
		return nil
	}
	return s.queue.Pairs()
}

// Accuracy is the rounded percentage of correct attempts, 0 with no attempts.
func (s *Session) Accuracy() int {
	return accuracy(s.correctAttempts, s.totalAttempts)
}

func accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// Position is the progress counter for display: retired pairs, plus one
// while a word is being presented.
func (s *Session) Position() int {
	pos := s.totalWords - s.Remaining()
	if s.state == StatePresenting && s.current != nil {
		pos++
	}
	return pos
}

// RecordErr returns the completion recorder's error, if the last completion
// could not be persisted.
func (s *Session) RecordErr() error { return s.recordErr }

// Stats returns the current counters.
func (s *Session) Stats() Stats {
	st := Stats{
		TotalWords:      s.totalWords,
		Remaining:       s.Remaining(),
		Completed:       len(s.completed),
		TotalAttempts:   s.totalAttempts,
		CorrectAttempts: s.correctAttempts,
		Accuracy:        s.Accuracy(),
		CompletionCount: s.completionCount,
	}
	if s.lesson != nil {
		st.LessonKey = s.lesson.Key
		st.LessonTitle = s.lesson.Title
	}
	return st
}
