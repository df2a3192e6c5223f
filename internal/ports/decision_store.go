package ports

import (
	"context"

	"fleet-dispatch-sim/internal/domain"
)

// One persisted decision, tagged with the simulation run it belongs to.
// Seq preserves the order in which decisions were made within a run.
type DecisionRecord struct {
	RunID    string
	Seq      int
	Decision domain.Decision
}

// Port: a boundary for persisting and retrieving decision logs.
type DecisionStore interface {
	// Append one decision record for a run.
	Record(ctx context.Context, rec DecisionRecord) error
	// Return a run's decision records ordered by sequence.
	ListByRun(ctx context.Context, runID string) ([]DecisionRecord, error)
}
