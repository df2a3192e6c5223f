package sim

import (
	"fmt"
	"time"

	"fleet-dispatch-sim/internal/domain"
)

// State of the simulated day.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Clock holds the process-wide simulated time. It advances monotonically
// in fixed ticks under the orchestrator's control and is never mutated
// by any other component.
type Clock struct {
	start time.Time
	end   time.Time
	tick  time.Duration

	now   time.Time
	state State
}

func NewClock(start, end time.Time, tick time.Duration) (*Clock, error) {
	if tick <= 0 {
		return nil, fmt.Errorf("new clock: tick must be positive, got %s: %w", tick, domain.ErrInvalidConfiguration)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("new clock: end %s must be after start %s: %w",
			end.Format(time.RFC3339), start.Format(time.RFC3339), domain.ErrInvalidConfiguration)
	}

	return &Clock{start: start, end: end, tick: tick, now: start}, nil
}

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) State() State { return c.state }

// Start transitions NotStarted -> Running.
func (c *Clock) Start() error {
	if c.state != StateNotStarted {
		return fmt.Errorf("clock start: already %s", c.state)
	}
	c.state = StateRunning
	return nil
}

// Advance moves simulated time forward by one tick, transitioning to
// Finished when the end of day is reached. It reports whether the clock
// is still running afterwards.
func (c *Clock) Advance() bool {
	if c.state != StateRunning {
		return false
	}

	c.now = c.now.Add(c.tick)
	if !c.now.Before(c.end) {
		c.state = StateFinished
		return false
	}
	return true
}
