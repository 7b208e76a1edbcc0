package eventlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stopline-planner-service/internal/domain"
)

// SQLite backed recorder for stop-line lifecycle transitions.
// Timestamps are stored as RFC3339Nano strings.
type SqliteStopEventRecorder struct {
	DB *sql.DB
}

func NewSqliteStopEventRecorder(db *sql.DB) *SqliteStopEventRecorder {
	return &SqliteStopEventRecorder{DB: db}
}

// Persist one lifecycle transition.
func (r *SqliteStopEventRecorder) Record(ctx context.Context, ev domain.StopEvent) error {
	if r.DB == nil {
		return errors.New("stop event recorder: db is nil")
	}

	if ev.ModuleID <= 0 {
		return fmt.Errorf("record stop event: invalid module id %d", ev.ModuleID)
	}

	q := `
	INSERT INTO stop_events (
		module_id,
		from_state,
		to_state,
		distance_to_stop,
		occurred_at
	)
	VALUES (?, ?, ?, ?, ?);
	`

	_, err := r.DB.ExecContext(
		ctx, q,
		ev.ModuleID,
		ev.From.String(),
		ev.To.String(),
		ev.DistanceToStop,
		ev.At.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record stop event: insert module_id=%d: %w", ev.ModuleID, err)
	}

	return nil
}

// Retrieve recorded transitions oldest first; moduleID == 0 lists all.
func (r *SqliteStopEventRecorder) List(ctx context.Context, moduleID int64) ([]domain.StopEvent, error) {
	if r.DB == nil {
		return nil, errors.New("stop event recorder: db is nil")
	}

	q := `
	SELECT module_id, from_state, to_state, distance_to_stop, occurred_at
	FROM stop_events
	`
	args := []any{}
	if moduleID != 0 {
		q += "WHERE module_id = ?\n"
		args = append(args, moduleID)
	}
	q += "ORDER BY id;"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list stop events: query: %w", err)
	}
	defer rows.Close()

	var out []domain.StopEvent
	for rows.Next() {
		var (
			ev       domain.StopEvent
			from, to string
			at       string
		)
		if err := rows.Scan(&ev.ModuleID, &from, &to, &ev.DistanceToStop, &at); err != nil {
			return nil, fmt.Errorf("list stop events: scan rows: %w", err)
		}

		if ev.From, err = domain.ParseState(from); err != nil {
			return nil, fmt.Errorf("list stop events: %w", err)
		}
		if ev.To, err = domain.ParseState(to); err != nil {
			return nil, fmt.Errorf("list stop events: %w", err)
		}
		if ev.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("list stop events: parse occurred_at %q: %w", at, err)
		}

		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stop events: row iteration: %w", err)
	}

	return out, nil
}
