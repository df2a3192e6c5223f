package sim

import (
	"errors"
	"testing"
	"time"

	"fleet-dispatch-sim/internal/domain"
)

func TestNewClockRejectsInvalidWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	if _, err := NewClock(start, start, time.Minute); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("end == start: err = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewClock(start, start.Add(-time.Hour), time.Minute); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("end before start: err = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewClock(start, start.Add(time.Hour), 0); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("zero tick: err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestClockLifecycle(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c, err := NewClock(start, start.Add(30*time.Minute), 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.State() != StateNotStarted {
		t.Fatalf("initial state = %s", c.State())
	}
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.State() != StateRunning {
		t.Fatalf("state after start = %s", c.State())
	}
	if err := c.Start(); err == nil {
		t.Fatal("second start should fail")
	}

	// Ticks at 9:00, 9:10, 9:20; reaching 9:30 finishes the day.
	ticks := 1
	for c.Advance() {
		ticks++
		if got := start.Add(time.Duration(ticks-1) * 10 * time.Minute); !c.Now().Equal(got) {
			t.Fatalf("tick %d at %s, want %s", ticks, c.Now(), got)
		}
	}

	if ticks != 3 {
		t.Fatalf("processed %d ticks, want 3", ticks)
	}
	if c.State() != StateFinished {
		t.Fatalf("final state = %s", c.State())
	}
	if c.Advance() {
		t.Fatal("advance after finish should report stopped")
	}
}
