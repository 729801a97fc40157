package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo implements ProgressRepo over the lesson_progress table.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Increment(ctx context.Context, learnerID, lessonKey string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin increment: %w", err)
	}
	defer tx.Rollback()

	upsert, args := builder().
		Insert(tableProgress).
		Columns(colLearnerID, colLessonKey, colCompletions, colUpdatedAt).
		Values(learnerID, lessonKey, 1, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(colLearnerID, colLessonKey),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add(colCompletions, 1)
				u.SetExcluded(colUpdatedAt)
			}),
		).
		Query()
	if _, err := tx.ExecContext(ctx, upsert, args...); err != nil {
		return 0, fmt.Errorf("increment completions: %w", err)
	}

	sel, args := builder().
		Select(colCompletions).
		From(entsql.Table(tableProgress)).
		Where(entsql.And(
			entsql.EQ(colLearnerID, learnerID),
			entsql.EQ(colLessonKey, lessonKey),
		)).
		Query()
	var count int
	if err := tx.QueryRowContext(ctx, sel, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("read completions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit increment: %w", err)
	}
	return count, nil
}

func (r *progressRepo) Counts(ctx context.Context, learnerID string) (map[string]int, error) {
	query, args := builder().
		Select(colLessonKey, colCompletions).
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ(colLearnerID, learnerID)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan completions: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func (r *progressRepo) Reset(ctx context.Context, learnerID, lessonKey string) error {
	pred := entsql.EQ(colLearnerID, learnerID)
	if lessonKey != "" {
		pred = entsql.And(pred, entsql.EQ(colLessonKey, lessonKey))
	}

	query, args := builder().Delete(tableProgress).Where(pred).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset completions: %w", err)
	}
	return nil
}
