package eventlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/platform/obs"
)

// SQLStopEventRecorder is the Postgres-backed recorder for stop-line
// lifecycle transitions ($1-style placeholders, pgx stdlib driver).
// Timestamps are stored as RFC3339Nano strings, matching the SQLite
// recorder so both stores round-trip identically.
type SQLStopEventRecorder struct {
	DB *sql.DB
}

func NewSQLStopEventRecorder(db *sql.DB) *SQLStopEventRecorder {
	return &SQLStopEventRecorder{DB: db}
}

// Initialize the stop-event schema on Postgres.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	createStopEventsQuery := `
	CREATE TABLE IF NOT EXISTS stop_events (
		id BIGSERIAL PRIMARY KEY,
		module_id BIGINT NOT NULL,
		from_state TEXT NOT NULL,
		to_state TEXT NOT NULL,
		distance_to_stop DOUBLE PRECISION NOT NULL,
		occurred_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stop_events_module_id
	ON stop_events(module_id, id);
	`

	if _, err := db.Exec(createStopEventsQuery); err != nil {
		return fmt.Errorf("init postgres schema: create stop_events: %w", err)
	}
	if _, err := db.Exec(createIndexQuery); err != nil {
		return fmt.Errorf("init postgres schema: create index: %w", err)
	}

	return nil
}

// Persist one lifecycle transition.
func (r *SQLStopEventRecorder) Record(ctx context.Context, ev domain.StopEvent) error {
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
	VALUES ($1, $2, $3, $4, $5);
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
func (r *SQLStopEventRecorder) List(ctx context.Context, moduleID int64) (_ []domain.StopEvent, err error) {
	defer obs.Time(ctx, "eventlog.List")(&err)

	if r.DB == nil {
		return nil, errors.New("stop event recorder: db is nil")
	}

	q := `
	SELECT module_id, from_state, to_state, distance_to_stop, occurred_at
	FROM stop_events
	`
	args := []any{}
	if moduleID != 0 {
		q += "WHERE module_id = $1\n"
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
