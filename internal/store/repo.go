package store

import (
	"context"
	"time"
)

// ProgressRepo tracks how many times each learner completed each lesson.
type ProgressRepo interface {
	// Increment adds one completion and returns the new count.
	Increment(ctx context.Context, learnerID, lessonKey string) (int, error)

	// Counts returns completion counts keyed by lesson key. Lessons never
	// completed are absent.
	Counts(ctx context.Context, learnerID string) (map[string]int, error)

	// Reset clears the count for lessonKey, or every lesson when lessonKey
	// is empty.
	Reset(ctx context.Context, learnerID, lessonKey string) error
}

// Session event actions.
const (
	ActionStart    = "start"
	ActionRestart  = "restart"
	ActionComplete = "complete"
	ActionQuit     = "quit"
)

// SessionEventData captures a drill session lifecycle event.
type SessionEventData struct {
	SessionID    string
	LearnerID    string
	LessonKey    string
	Action       string
	TotalWords   int
	Attempts     int
	Correct      int
	DurationSecs int
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEventData captures a single submitted answer.
type AnswerEventData struct {
	SessionID     string
	LearnerID     string
	LessonKey     string
	Source        string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
}

// AnswerStats aggregates answer events for one lesson.
type AnswerStats struct {
	Attempts int
	Correct  int
}

// Percent is the rounded accuracy, 0 with no attempts.
func (a AnswerStats) Percent() int {
	if a.Attempts == 0 {
		return 0
	}
	return (200*a.Correct + a.Attempts) / (2 * a.Attempts)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one model.
type LLMUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns the newest LLM events first, optionally
	// filtered by purpose.
	RecentLLMRequests(ctx context.Context, purpose string, limit int) ([]LLMRequestEvent, error)

	// LLMRequest returns one LLM event by sequence, or nil if absent.
	LLMRequest(ctx context.Context, sequence int64) (*LLMRequestEvent, error)

	// LLMUsageByModel sums tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// RecentSessions returns the newest completed sessions first.
	RecentSessions(ctx context.Context, learnerID string, limit int) ([]SessionEvent, error)

	// LessonAccuracy aggregates every recorded answer for a lesson.
	LessonAccuracy(ctx context.Context, learnerID, lessonKey string) (AnswerStats, error)
}
