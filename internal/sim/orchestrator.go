package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fleet-dispatch-sim/internal/domain"
	"fleet-dispatch-sim/internal/ports"
	"fleet-dispatch-sim/internal/solver"
)

type Config struct {
	RunID     string
	Start     time.Time
	End       time.Time
	Tick      time.Duration
	LogRoutes bool
}

// Report summarizes one finished run. Decisions appear in the order they
// were made, which is the system's externally observable behavior.
type Report struct {
	RunID     string
	Inserted  int
	Rejected  int
	Decisions []domain.Decision
	Routes    []string
	FleetCost time.Duration
}

// Planner decides where an arriving order goes. The incremental greedy
// solver is the only strategy used here; a batch re-optimizer would
// implement the same capability and be selected explicitly by the
// composition root, never by runtime type inspection.
type Planner interface {
	Solve(o *domain.Order, fleet *domain.Fleet) domain.Decision
}

// Orchestrator drives the simulated day: it advances the clock, pulls
// arriving orders, invokes the planner, and applies winning insertions.
// It is the only component that mutates fleet routes.
type Orchestrator struct {
	cfg     Config
	clock   *Clock
	fleet   *domain.Fleet
	tt      domain.TravelTimes
	planner Planner
	source  ports.OrderSource
	store   ports.DecisionStore
	name    func(domain.LocationID) string

	seq       int
	decisions []domain.Decision
}

// New validates the configuration and assembles a run. The store may be
// nil when decisions only need to reach the in-memory report; the name
// lookup may be nil when route summaries can fall back to raw indices.
func New(
	cfg Config,
	fleet *domain.Fleet,
	tt domain.TravelTimes,
	source ports.OrderSource,
	store ports.DecisionStore,
	name func(domain.LocationID) string,
) (*Orchestrator, error) {
	if fleet == nil || len(fleet.Vehicles) == 0 {
		return nil, fmt.Errorf("new orchestrator: empty fleet: %w", domain.ErrInvalidConfiguration)
	}
	if source == nil {
		return nil, fmt.Errorf("new orchestrator: order source is required: %w", domain.ErrInvalidConfiguration)
	}

	clock, err := NewClock(cfg.Start, cfg.End, cfg.Tick)
	if err != nil {
		return nil, fmt.Errorf("new orchestrator: %w", err)
	}

	if name == nil {
		name = func(id domain.LocationID) string { return fmt.Sprintf("#%d", id) }
	}

	return &Orchestrator{
		cfg:     cfg,
		clock:   clock,
		fleet:   fleet,
		tt:      tt,
		planner: solver.New(tt),
		source:  source,
		store:   store,
		name:    name,
	}, nil
}

// Run executes the whole simulated day and returns the decision report.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	if err := o.clock.Start(); err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}
	log.Printf("run=%s state=%s start=%s end=%s tick=%s",
		o.cfg.RunID, o.clock.State(), o.cfg.Start.Format("15:04"), o.cfg.End.Format("15:04"), o.cfg.Tick)

	for {
		now := o.clock.Now()
		for _, order := range o.source.Next(now) {
			if err := o.handleOrder(ctx, order); err != nil {
				return nil, fmt.Errorf("run simulation: tick %s: %w", now.Format("15:04"), err)
			}
		}

		if !o.clock.Advance() {
			break
		}
	}

	report := o.report()
	log.Printf("run=%s state=%s inserted=%d rejected=%d fleet_cost=%s",
		o.cfg.RunID, o.clock.State(), report.Inserted, report.Rejected, report.FleetCost)
	return report, nil
}

// handleOrder solves and applies one arriving order, then records the
// decision. Orders are handled strictly in arrival order because each
// applied insertion changes the state the next search must observe.
func (o *Orchestrator) handleOrder(ctx context.Context, order *domain.Order) error {
	if o.clock.State() == StateFinished {
		return fmt.Errorf("handle order %d: %w", order.OrderID, domain.ErrClockExhausted)
	}

	decision := o.planner.Solve(order, o.fleet)

	if decision.Inserted {
		v, err := o.fleet.Vehicle(decision.VehicleID)
		if err != nil {
			return fmt.Errorf("handle order %d: %w", order.OrderID, err)
		}
		if err := v.Route.ApplyInsertion(o.tt, order, decision.Position); err != nil {
			return fmt.Errorf("handle order %d: %w", order.OrderID, err)
		}

		log.Printf("run=%s tick=%s order=%d decision=insert vehicle=%d position=%d cost=%s",
			o.cfg.RunID, order.ArrivedAt.Format("15:04"), order.OrderID,
			decision.VehicleID, decision.Position, decision.Cost)
		if o.cfg.LogRoutes {
			log.Printf("run=%s vehicle=%d stops=%d route=%q",
				o.cfg.RunID, v.VehicleID, len(v.Route.Stops), v.Route.Summary(o.name))
		}
	} else {
		log.Printf("run=%s tick=%s order=%d decision=reject reason=%s",
			o.cfg.RunID, order.ArrivedAt.Format("15:04"), order.OrderID, decision.Reason)
	}

	o.decisions = append(o.decisions, decision)
	if o.store != nil {
		rec := ports.DecisionRecord{RunID: o.cfg.RunID, Seq: o.seq, Decision: decision}
		if err := o.store.Record(ctx, rec); err != nil {
			return fmt.Errorf("handle order %d: record decision: %w", order.OrderID, err)
		}
	}
	o.seq++
	return nil
}

func (o *Orchestrator) report() *Report {
	report := &Report{RunID: o.cfg.RunID, Decisions: o.decisions}
	for _, d := range o.decisions {
		if d.Inserted {
			report.Inserted++
		} else {
			report.Rejected++
		}
	}
	for _, v := range o.fleet.Vehicles {
		report.Routes = append(report.Routes, v.Route.Summary(o.name))
		report.FleetCost += v.Route.Duration
	}
	return report
}

// IsFatal reports whether an orchestration error must abort the run
// rather than be recovered per order.
func IsFatal(err error) bool {
	return errors.Is(err, domain.ErrInvalidConfiguration) || errors.Is(err, domain.ErrClockExhausted)
}
