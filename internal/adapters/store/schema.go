package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite schema for decision-log persistence.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDecisionsQuery := `
	CREATE TABLE IF NOT EXISTS decisions (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		order_id INTEGER NOT NULL,
		arrived_at TEXT NOT NULL,
		inserted INTEGER NOT NULL,
		vehicle_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		cost_seconds INTEGER NOT NULL,
		reason TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_decisions_run_order
	ON decisions(run_id, order_id);
	`

	statements := []string{
		createDecisionsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Initialize the Postgres schema used by the export tool.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS decisions (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		order_id INTEGER NOT NULL,
		arrived_at TIMESTAMPTZ NOT NULL,
		inserted BOOLEAN NOT NULL,
		vehicle_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		cost_seconds BIGINT NOT NULL,
		reason TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}

	return nil
}
