package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open a Postgres-backed event store through the pgx stdlib driver.
// The default deployment uses embedded SQLite; this path serves
// installations that centralize stop-event history.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres event store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
