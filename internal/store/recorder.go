package store

import "context"

// CompletionRecorder persists drill completions for one learner.
type CompletionRecorder struct {
	repo      ProgressRepo
	learnerID string
}

// NewCompletionRecorder binds repo to learnerID.
func NewCompletionRecorder(repo ProgressRepo, learnerID string) *CompletionRecorder {
	return &CompletionRecorder{repo: repo, learnerID: learnerID}
}

// Record increments the lesson's completion count and returns the new total.
func (c *CompletionRecorder) Record(ctx context.Context, lessonKey string) (int, error) {
	return c.repo.Increment(ctx, c.learnerID, lessonKey)
}
