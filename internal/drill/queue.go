package drill

import (
	"slices"

	"github.com/abhisek/vocabiz/internal/vocab"
)

// ReviewQueue holds the pairs still owed a correct answer, in presentation
// order. Missed pairs go to the back, so a miss is revisited only after every
// other queued pair has had a turn.
type ReviewQueue struct {
	items []vocab.WordPair
	rng   Rand
}

// NewReviewQueue loads a shuffled copy of pairs.
func NewReviewQueue(pairs []vocab.WordPair, rng Rand) (*ReviewQueue, error) {
	q := &ReviewQueue{rng: rng}
	if err := q.Reset(pairs); err != nil {
		return nil, err
	}
	return q, nil
}

// Reset replaces the queue contents with a freshly shuffled copy of pairs.
func (q *ReviewQueue) Reset(pairs []vocab.WordPair) error {
	if len(pairs) == 0 {
		return ErrEmptyLesson
	}
	q.items = slices.Clone(pairs)
	Shuffle(q.items, q.rng)
	return nil
}

// PeekFront returns the head pair. ok is false when the queue is empty.
func (q *ReviewQueue) PeekFront() (vocab.WordPair, bool) {
	if len(q.items) == 0 {
		return vocab.WordPair{}, false
	}
	return q.items[0], true
}

// MarkCorrect drops the head pair.
func (q *ReviewQueue) MarkCorrect() {
	if len(q.items) == 0 {
		return
	}
	q.items = q.items[1:]
}

// MarkIncorrect moves the head pair to the tail.
func (q *ReviewQueue) MarkIncorrect() {
	if len(q.items) == 0 {
		return
	}
	head := q.items[0]
	q.items = append(q.items[1:], head)
}

// Len returns the number of queued pairs.
func (q *ReviewQueue) Len() int {
	return len(q.items)
}

// Contains reports whether a pair with the given source is queued.
func (q *ReviewQueue) Contains(source string) bool {
	return slices.ContainsFunc(q.items, func(p vocab.WordPair) bool {
		return p.Source == source
	})
}

// Pairs returns a copy of the queue, front to back.
func (q *ReviewQueue) Pairs() []vocab.WordPair {
	return slices.Clone(q.items)
}
