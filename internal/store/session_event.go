package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.appendEvent(ctx, tableSessionEvt,
		[]string{colSessionID, colLearnerID, colLessonKey, colAction, colTotalWords, colAttempts, colCorrect, colDurationSecs},
		[]any{data.SessionID, data.LearnerID, data.LessonKey, data.Action, data.TotalWords, data.Attempts, data.Correct, data.DurationSecs},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.appendEvent(ctx, tableAnswerEvt,
		[]string{colSessionID, colLearnerID, colLessonKey, colSource, colCorrectAnswer, colLearnerAnswer, colCorrect, colTimeMs},
		[]any{data.SessionID, data.LearnerID, data.LessonKey, data.Source, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs},
	)
}

func (r *eventRepo) RecentSessions(ctx context.Context, learnerID string, limit int) ([]SessionEvent, error) {
	sel := builder().
		Select(colSequence, colTimestamp, colSessionID, colLearnerID, colLessonKey, colAction,
			colTotalWords, colAttempts, colCorrect, colDurationSecs).
		From(entsql.Table(tableSessionEvt)).
		Where(entsql.And(
			entsql.EQ(colLearnerID, learnerID),
			entsql.EQ(colAction, ActionComplete),
		)).
		OrderBy(entsql.Desc(colSequence))
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.LearnerID, &e.LessonKey, &e.Action,
			&e.TotalWords, &e.Attempts, &e.Correct, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) LessonAccuracy(ctx context.Context, learnerID, lessonKey string) (AnswerStats, error) {
	query, args := builder().
		Select(entsql.Count("*"), entsql.Sum(colCorrect)).
		From(entsql.Table(tableAnswerEvt)).
		Where(entsql.And(
			entsql.EQ(colLearnerID, learnerID),
			entsql.EQ(colLessonKey, lessonKey),
		)).
		Query()

	var (
		total   int
		correct sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total, &correct); err != nil {
		return AnswerStats{}, fmt.Errorf("query lesson accuracy: %w", err)
	}
	return AnswerStats{Attempts: total, Correct: int(correct.Int64)}, nil
}
