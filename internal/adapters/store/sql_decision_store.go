package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleet-dispatch-sim/internal/domain"
	"fleet-dispatch-sim/internal/platform/obs"
	"fleet-dispatch-sim/internal/ports"
)

// SQLDecisionStore is the Postgres-backed implementation of the
// DecisionStore port, used as the export target for archived runs.
type SQLDecisionStore struct{ DB *sql.DB }

func NewSQLDecisionStore(db *sql.DB) *SQLDecisionStore {
	return &SQLDecisionStore{DB: db}
}

// Append one decision record.
func (s *SQLDecisionStore) Record(ctx context.Context, rec ports.DecisionRecord) (err error) {
	defer obs.Time(ctx, "decisions.store.Record")(&err)

	if s.DB == nil {
		return errors.New("decision store: DB is nil")
	}
	if rec.RunID == "" {
		return errors.New("record decision: run id must not be empty")
	}

	query := `
	INSERT INTO decisions (
		run_id, seq, order_id, arrived_at, inserted,
		vehicle_id, position, cost_seconds, reason
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (run_id, seq) DO UPDATE
	SET order_id = EXCLUDED.order_id,
		arrived_at = EXCLUDED.arrived_at,
		inserted = EXCLUDED.inserted,
		vehicle_id = EXCLUDED.vehicle_id,
		position = EXCLUDED.position,
		cost_seconds = EXCLUDED.cost_seconds,
		reason = EXCLUDED.reason;
	`
	d := rec.Decision
	_, err = s.DB.ExecContext(ctx, query,
		rec.RunID, rec.Seq, d.OrderID, d.ArrivedAt, d.Inserted,
		d.VehicleID, d.Position, int64(d.Cost/time.Second), string(d.Reason),
	)
	if err != nil {
		return fmt.Errorf("record decision: insert run=%q seq=%d: %w", rec.RunID, rec.Seq, err)
	}

	return nil
}

// RecordMany appends a batch of records in one transaction. The export
// tool uses this to copy whole runs.
func (s *SQLDecisionStore) RecordMany(ctx context.Context, recs []ports.DecisionRecord) (err error) {
	defer obs.Time(ctx, "decisions.store.RecordMany")(&err)

	if s.DB == nil {
		return errors.New("decision store: DB is nil")
	}
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record decisions: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO decisions (
		run_id, seq, order_id, arrived_at, inserted,
		vehicle_id, position, cost_seconds, reason
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (run_id, seq) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("record decisions: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.RunID == "" {
			return errors.New("record decisions: run id must not be empty")
		}
		d := rec.Decision
		_, err := stmt.ExecContext(ctx,
			rec.RunID, rec.Seq, d.OrderID, d.ArrivedAt, d.Inserted,
			d.VehicleID, d.Position, int64(d.Cost/time.Second), string(d.Reason),
		)
		if err != nil {
			return fmt.Errorf("record decisions: insert run=%q seq=%d: %w", rec.RunID, rec.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record decisions: commit: %w", err)
	}

	return nil
}

// Return a run's decision records ordered by sequence.
func (s *SQLDecisionStore) ListByRun(ctx context.Context, runID string) (_ []ports.DecisionRecord, err error) {
	defer obs.Time(ctx, "decisions.store.ListByRun")(&err)

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
	WHERE run_id = $1
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: query decisions table: %w", err)
	}
	defer rows.Close()

	records := make([]ports.DecisionRecord, 0, 64)
	for rows.Next() {
		var (
			rec        ports.DecisionRecord
			costSecond int64
			reason     string
		)
		err := rows.Scan(&rec.RunID, &rec.Seq, &rec.Decision.OrderID, &rec.Decision.ArrivedAt,
			&rec.Decision.Inserted, &rec.Decision.VehicleID, &rec.Decision.Position,
			&costSecond, &reason)
		if err != nil {
			return nil, fmt.Errorf("list decisions: scan row: %w", err)
		}
		rec.Decision.Cost = time.Duration(costSecond) * time.Second
		rec.Decision.Reason = domain.RejectReason(reason)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decisions: row iteration: %w", err)
	}

	return records, nil
}
