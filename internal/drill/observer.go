package drill

import (
	"context"

	"github.com/abhisek/vocabiz/internal/vocab"
)

// CompletionRecorder persists how many times a lesson has been completed.
// Record is called once per finished session and returns the new count.
type CompletionRecorder interface {
	Record(ctx context.Context, lessonKey string) (int, error)
}

// Presentation is the word currently shown to the learner.
type Presentation struct {
	Pair          vocab.WordPair
	Options       []string
	CorrectAnswer string

	// Position is the 1-indexed item number out of Total.
	Position int
	Total    int

	// Done is set when the call completed the session instead of presenting.
	Done bool
}

// AnswerResult is the outcome of a submitted choice.
type AnswerResult struct {
	Pair          vocab.WordPair
	Choice        string
	IsCorrect     bool
	CorrectAnswer string
}

// Observer receives session events. Implementations must not call back
// into the session.
type Observer interface {
	WordPresented(p Presentation)
	AnswerSubmitted(r AnswerResult)
	SessionCompleted(s Stats)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnPresented func(Presentation)
	OnAnswered  func(AnswerResult)
	OnCompleted func(Stats)
}

func (o ObserverFuncs) WordPresented(p Presentation) {
	if o.OnPresented != nil {
		o.OnPresented(p)
	}
}

func (o ObserverFuncs) AnswerSubmitted(r AnswerResult) {
	if o.OnAnswered != nil {
		o.OnAnswered(r)
	}
}

func (o ObserverFuncs) SessionCompleted(s Stats) {
	if o.OnCompleted != nil {
		o.OnCompleted(s)
	}
}
