package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// AnswerEvent is one recorded attempt, as persisted after a session.
type AnswerEvent struct {
	SessionID      string
	ExerciseID     string
	ItemIDs        []string
	Correct        bool
	WasRetry       bool
	ResponseTimeMs int
	CreatedAt      time.Time
}

// ResultRepo appends answer events and serves the accuracy queries the
// engine's consumers need.
type ResultRepo struct {
	db *sqlx.DB
}

// Append records one answer event and its exercised items.
func (r *ResultRepo) Append(ctx context.Context, ev AnswerEvent) error {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO answer_events (session_id, exercise_id, correct, was_retry, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.ExerciseID, ev.Correct, ev.WasRetry, ev.ResponseTimeMs,
		createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}

	eventID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("event id: %w", err)
	}
	for _, itemID := range ev.ItemIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answer_event_items (event_id, item_id) VALUES (?, ?)`,
			eventID, itemID); err != nil {
			return fmt.Errorf("append event item %s: %w", itemID, err)
		}
	}
	return tx.Commit()
}

// ItemAccuracy returns the all-time accuracy and attempt count for an
// item across every event that exercised it.
func (r *ResultRepo) ItemAccuracy(ctx context.Context, itemID string) (float64, int, error) {
	var row struct {
		Total   int `db:"total"`
		Correct int `db:"correct"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS total, COALESCE(SUM(e.correct), 0) AS correct
		FROM answer_events e
		JOIN answer_event_items i ON i.event_id = e.id
		WHERE i.item_id = ?`, itemID)
	if err != nil {
		return 0, 0, fmt.Errorf("item accuracy for %s: %w", itemID, err)
	}
	if row.Total == 0 {
		return 0, 0, nil
	}
	return float64(row.Correct) / float64(row.Total), row.Total, nil
}

// LatestAnswerTime returns when an item was last exercised, or the zero
// time if never.
func (r *ResultRepo) LatestAnswerTime(ctx context.Context, itemID string) (time.Time, error) {
	var ts []string
	err := r.db.SelectContext(ctx, &ts, `
		SELECT e.created_at
		FROM answer_events e
		JOIN answer_event_items i ON i.event_id = e.id
		WHERE i.item_id = ?
		ORDER BY e.created_at DESC
		LIMIT 1`, itemID)
	if err != nil {
		return time.Time{}, fmt.Errorf("latest answer for %s: %w", itemID, err)
	}
	if len(ts) == 0 {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, ts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse answer time for %s: %w", itemID, err)
	}
	return t, nil
}

// SessionCounts returns how many events and how many correct events a
// session recorded.
func (r *ResultRepo) SessionCounts(ctx context.Context, sessionID string) (total, correct int, err error) {
	var row struct {
		Total   int `db:"total"`
		Correct int `db:"correct"`
	}
	err = r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS total, COALESCE(SUM(correct), 0) AS correct
		FROM answer_events WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, 0, fmt.Errorf("session counts for %s: %w", sessionID, err)
	}
	return row.Total, row.Correct, nil
}

// Reset deletes every answer event. External reset only.
func (r *ResultRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM answer_events`); err != nil {
		return fmt.Errorf("reset answer events: %w", err)
	}
	return nil
}
