package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableProgress    = "lesson_progress"
	tableSessionEvt  = "session_events"
	tableAnswerEvt   = "answer_events"
	tableLLMEvt      = "llm_request_events"
	colLearnerID     = "learner_id"
	colLessonKey     = "lesson_key"
	colCompletions   = "completions"
	colUpdatedAt     = "updated_at"
	colSequence      = "sequence"
	colTimestamp     = "timestamp"
	colSessionID     = "session_id"
	colCorrect       = "correct"
	colAction        = "action"
	colTotalWords    = "total_words"
	colAttempts      = "attempts"
	colDurationSecs  = "duration_secs"
	colSource        = "source"
	colCorrectAnswer = "correct_answer"
	colLearnerAnswer = "learner_answer"
	colTimeMs        = "time_ms"
)

// Every event table carries the global sequence and a unix-millisecond
// timestamp.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS lesson_progress (
		learner_id  TEXT NOT NULL,
		lesson_key  TEXT NOT NULL,
		completions INTEGER NOT NULL DEFAULT 0,
		updated_at  INTEGER NOT NULL,
		PRIMARY KEY (learner_id, lesson_key)
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		session_id    TEXT NOT NULL,
		learner_id    TEXT NOT NULL,
		lesson_key    TEXT NOT NULL,
		action        TEXT NOT NULL,
		total_words   INTEGER NOT NULL DEFAULT 0,
		attempts      INTEGER NOT NULL DEFAULT 0,
		correct       INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_learner ON session_events (learner_id, action)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence       INTEGER NOT NULL UNIQUE,
		timestamp      INTEGER NOT NULL,
		session_id     TEXT NOT NULL,
		learner_id     TEXT NOT NULL,
		lesson_key     TEXT NOT NULL,
		source         TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		learner_answer TEXT NOT NULL,
		correct        INTEGER NOT NULL,
		time_ms        INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_lesson ON answer_events (learner_id, lesson_key)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
