package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fleet-dispatch-sim/internal/domain"
	"fleet-dispatch-sim/internal/ports"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteDecisionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSqliteDecisionStore(openTestDB(t))

	arrived := time.Date(2026, 1, 1, 9, 15, 0, 0, time.UTC)
	records := []ports.DecisionRecord{
		{
			RunID: "run-a",
			Seq:   0,
			Decision: domain.Decision{
				OrderID:   1,
				ArrivedAt: arrived,
				Inserted:  true,
				VehicleID: 2,
				Position:  1,
				Cost:      18 * time.Minute,
			},
		},
		{
			RunID: "run-a",
			Seq:   1,
			Decision: domain.Decision{
				OrderID:   2,
				ArrivedAt: arrived.Add(15 * time.Minute),
				Reason:    domain.ReasonNoFeasibleInsertion,
			},
		},
	}
	for _, rec := range records {
		if err := s.Record(ctx, rec); err != nil {
			t.Fatalf("record seq %d: %v", rec.Seq, err)
		}
	}

	got, err := s.ListByRun(ctx, "run-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}

	first := got[0].Decision
	if !first.Inserted || first.VehicleID != 2 || first.Position != 1 || first.Cost != 18*time.Minute {
		t.Fatalf("first decision mismatch: %+v", first)
	}
	if !first.ArrivedAt.Equal(arrived) {
		t.Fatalf("arrived_at = %s, want %s", first.ArrivedAt, arrived)
	}

	second := got[1].Decision
	if second.Inserted || second.Reason != domain.ReasonNoFeasibleInsertion {
		t.Fatalf("second decision mismatch: %+v", second)
	}
}

func TestSqliteDecisionStoreListRuns(t *testing.T) {
	ctx := context.Background()
	s := NewSqliteDecisionStore(openTestDB(t))

	for _, run := range []string{"run-b", "run-a", "run-b"} {
		rec := ports.DecisionRecord{
			RunID:    run,
			Seq:      len(run), // distinct per run is enough here
			Decision: domain.Decision{OrderID: 1, ArrivedAt: time.Now().UTC()},
		}
		if err := s.Record(ctx, rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0] != "run-a" || runs[1] != "run-b" {
		t.Fatalf("runs = %v", runs)
	}
}

func TestSqliteDecisionStoreValidation(t *testing.T) {
	ctx := context.Background()
	s := NewSqliteDecisionStore(openTestDB(t))

	if err := s.Record(ctx, ports.DecisionRecord{}); err == nil {
		t.Fatal("expected error for empty run id")
	}
	if _, err := s.ListByRun(ctx, ""); err == nil {
		t.Fatal("expected error for empty run id")
	}
}
