package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleet-dispatch-sim/internal/domain"
	"fleet-dispatch-sim/internal/ports"
)

// SQLite-backed implementation of the DecisionStore port. Used for local
// runs; one row per decision, keyed by (run_id, seq).
type SqliteDecisionStore struct{ DB *sql.DB }

func NewSqliteDecisionStore(db *sql.DB) *SqliteDecisionStore {
	return &SqliteDecisionStore{DB: db}
}

// Append one decision record.
func (s *SqliteDecisionStore) Record(ctx context.Context, rec ports.DecisionRecord) error {
	if s.DB == nil {
		return errors.New("decision store: DB is nil")
	}
	if rec.RunID == "" {
		return errors.New("record decision: run id must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO decisions (
		run_id, seq, order_id, arrived_at, inserted,
		vehicle_id, position, cost_seconds, reason
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	d := rec.Decision
	_, err := s.DB.ExecContext(ctx, query,
		rec.RunID, rec.Seq, d.OrderID, d.ArrivedAt.Format(time.RFC3339Nano),
		boolToInt(d.Inserted), d.VehicleID, d.Position,
		int64(d.Cost/time.Second), string(d.Reason),
	)
	if err != nil {
		return fmt.Errorf("record decision: insert run=%q seq=%d: %w", rec.RunID, rec.Seq, err)
	}

	return nil
}

// Return a run's decision records ordered by sequence.
func (s *SqliteDecisionStore) ListByRun(ctx context.Context, runID string) ([]ports.DecisionRecord, error) {
	if s.DB == nil {
		return nil, errors.New("decision store: DB is nil")
	}
	if runID == "" {
		return nil, errors.New("list decisions: run id must not be empty")
	}

	query := `
	SELECT run_id, seq, order_id, arrived_at, inserted,
		vehicle_id, position, cost_seconds, reason
	FROM decisions
	WHERE run_id = ?
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: query decisions table: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListRuns returns every run ID present in the store, oldest first by
// insertion. Used by the export tool.
func (s *SqliteDecisionStore) ListRuns(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("decision store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT DISTINCT run_id FROM decisions ORDER BY run_id;`)
	if err != nil {
		return nil, fmt.Errorf("list runs: query decisions table: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func scanRecords(rows *sql.Rows) ([]ports.DecisionRecord, error) {
	records := make([]ports.DecisionRecord, 0, 64)
	for rows.Next() {
		var (
			rec        ports.DecisionRecord
			arrived    string
			inserted   int
			costSecond int64
			reason     string
		)
		err := rows.Scan(&rec.RunID, &rec.Seq, &rec.Decision.OrderID, &arrived, &inserted,
			&rec.Decision.VehicleID, &rec.Decision.Position, &costSecond, &reason)
		if err != nil {
			return nil, fmt.Errorf("list decisions: scan row: %w", err)
		}

		at, err := time.Parse(time.RFC3339Nano, arrived)
		if err != nil {
			return nil, fmt.Errorf("list decisions: parse arrived_at %q: %w", arrived, err)
		}
		rec.Decision.ArrivedAt = at
		rec.Decision.Inserted = inserted != 0
		rec.Decision.Cost = time.Duration(costSecond) * time.Second
		rec.Decision.Reason = domain.RejectReason(reason)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decisions: row iteration: %w", err)
	}

	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
