package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type eventRepo struct {
	db *sql.DB
}

var _ EventRepo = (*eventRepo)(nil)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_events (id, session_id, item_id, item_type, step_id, choice_id, serve_id, correct, time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		data.SessionID, data.ItemID, data.ItemType, data.StepID,
		data.ChoiceID, data.ServeID, boolToInt(data.Correct), data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (id, session_id, action, items_served, correct_answers, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		data.SessionID, data.Action, data.ItemsServed, data.CorrectAnswers, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, limit int) ([]AnswerRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, session_id, item_id, item_type, step_id, choice_id, serve_id, correct, time_ms
		 FROM answer_events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var correct int
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt, &rec.SessionID, &rec.ItemID, &rec.ItemType,
			&rec.StepID, &rec.ChoiceID, &rec.ServeID, &correct, &rec.TimeMs,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Correct = correct != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) Purge(ctx context.Context) error {
	for _, table := range []string{"answer_events", "session_events"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
