package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/geometry"
	"stopline-planner-service/internal/ports"
	"stopline-planner-service/internal/stopline"
)

// Per-cycle input from the host: the candidate trajectory plus the
// current vehicle observation.
type CycleInput struct {
	Points      []domain.TrajectoryPoint
	EgoPose     domain.Pose
	EgoVelocity float64 // signed longitudinal velocity, m/s
	At          time.Time
}

// What one module contributed this cycle.
type ModuleReport struct {
	ModuleID       int64
	State          domain.State
	VelocityFactor *domain.VelocityFactor
	StopReason     *domain.StopReason
	Debug          domain.DebugData
}

// CycleOutput carries the (possibly velocity-mutated) trajectory and
// one report per registered module.
type CycleOutput struct {
	Points  []domain.TrajectoryPoint
	Reports []ModuleReport
}

// Planner owns the stop-line rule instances for one vehicle and drives
// them once per planning cycle. It is single-threaded by contract:
// callers serialize RunCycle invocations.
type Planner struct {
	frontOverhang float64
	modules       []*stopline.Module

	status    ports.VehicleStatusProvider
	recorder  ports.StopEventRecorder // optional
	publisher ports.FactorPublisher   // optional
}

func NewPlanner(
	frontOverhang float64,
	status ports.VehicleStatusProvider,
	recorder ports.StopEventRecorder,
	publisher ports.FactorPublisher,
) *Planner {
	return &Planner{
		frontOverhang: frontOverhang,
		status:        status,
		recorder:      recorder,
		publisher:     publisher,
	}
}

// Register adds a rule instance. One instance per mapped stop line;
// each keeps its own lifecycle for the lifetime of the planner.
func (p *Planner) Register(m *stopline.Module) {
	p.modules = append(p.modules, m)
}

func (p *Planner) Modules() []*stopline.Module { return p.modules }

// RunCycle drives every registered module through one planning cycle.
//
// A trajectory too degenerate to parameterize is a no-op cycle: the
// input points come back unmodified, no module state changes, and no
// reports are produced. Recorder failures abort the cycle after the
// in-memory state already advanced (transitions are never rolled
// back); publish failures are logged and ignored.
func (p *Planner) RunCycle(ctx context.Context, in CycleInput) (CycleOutput, error) {
	p.status.Observe(in.At, in.EgoVelocity)

	traj, err := geometry.NewTrajectory(in.Points)
	if err != nil {
		return CycleOutput{Points: in.Points}, nil
	}

	stopped := p.status.IsVehicleStopped()

	out := CycleOutput{Reports: make([]ModuleReport, 0, len(p.modules))}
	for _, m := range p.modules {
		res := m.PlanVelocity(traj, stopline.Input{
			EgoPose:        in.EgoPose,
			FrontOverhang:  p.frontOverhang,
			VehicleStopped: stopped,
			Now:            in.At,
		})

		if res.Transition != nil && p.recorder != nil {
			if err := p.recorder.Record(ctx, *res.Transition); err != nil {
				return out, fmt.Errorf("run cycle: record transition module_id=%d: %w", m.ID(), err)
			}
		}

		if res.VelocityFactor != nil && p.publisher != nil {
			if err := p.publisher.Publish(ctx, m.ID(), *res.VelocityFactor); err != nil {
				log.Printf("publish velocity factor failed: module_id=%d err=%v", m.ID(), err)
			}
		}

		out.Reports = append(out.Reports, ModuleReport{
			ModuleID:       m.ID(),
			State:          res.State,
			VelocityFactor: res.VelocityFactor,
			StopReason:     res.StopReason,
			Debug:          res.Debug,
		})
	}

	out.Points = traj.Points()
	return out, nil
}
