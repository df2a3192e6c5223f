package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RunIDKey carries the simulation run identifier through contexts so
// persistence operations can be attributed to a run in the logs.
const RunIDKey ctxKey = "run_id"

// WithRunID tags a context with the simulation run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run=%s op=%s dur=%dms err=%v", runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run=%s op=%s dur=%dms", runID, name, dur.Milliseconds())
	}
}
