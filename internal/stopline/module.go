// Package stopline implements the stop-line enforcement rule: given a
// candidate trajectory and one stop line, decide whether the vehicle
// must stop before the line, rewrite the trailing speed profile to
// enforce it, and track the approach/stop/departure lifecycle so the
// rule stands down once satisfied.
package stopline

import (
	"log"
	"time"

	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/geometry"
)

// Module is one stop-line rule instance. Each mapped stop line gets
// its own instance with its own lifecycle; instances are not safe for
// concurrent use and are driven exactly once per planning cycle.
type Module struct {
	id    int64
	line  domain.StopLine
	param domain.PlannerParam

	state     domain.State
	stoppedAt *time.Time // non-nil iff state == StateStopped
}

func NewModule(id int64, line domain.StopLine, param domain.PlannerParam) *Module {
	return &Module{
		id:    id,
		line:  line,
		param: param,
		state: domain.StateApproach,
	}
}

func (m *Module) ID() int64                  { return m.id }
func (m *Module) Line() domain.StopLine      { return m.line }
func (m *Module) Param() domain.PlannerParam { return m.param }
func (m *Module) State() domain.State        { return m.state }

// Per-cycle inputs supplied by the host planning framework.
type Input struct {
	EgoPose domain.Pose

	// Distance from the vehicle reference point to its frontmost
	// extent; the stop point is placed so the front, not the center,
	// halts at the margin.
	FrontOverhang float64

	// Whether the vehicle is currently physically stopped, judged by
	// the host from real odometry.
	VehicleStopped bool

	// Cycle timestamp. All dwell timing derives from this explicit
	// value, never from the wall clock, so cycles replay
	// deterministically.
	Now time.Time
}

// Result of one planning cycle for one module.
type Result struct {
	// Active reports whether a stop point resolved this cycle (and the
	// trajectory was mutated).
	Active bool

	State domain.State

	// Transition is non-nil on the cycle a lifecycle transition fired.
	Transition *domain.StopEvent

	// VelocityFactor and StopReason are nil on inactive cycles;
	// VelocityFactor is additionally nil once the state is START.
	VelocityFactor *domain.VelocityFactor
	StopReason     *domain.StopReason

	Debug domain.DebugData
}

// PlanVelocity runs one planning cycle: resolve the stop point, clamp
// the trailing speed profile to zero, advance the lifecycle, and
// produce the explanation records. The trajectory is mutated in place
// over the trailing range only.
//
// When no stop point resolves (no intersection, stop point behind the
// vehicle, or state START) the cycle is a no-op: the trajectory and
// the lifecycle state are left untouched.
func (m *Module) PlanVelocity(traj *geometry.Trajectory, in Input) Result {
	egoS, stopS, ok := m.resolveStopPoint(traj, in.EgoPose, in.FrontOverhang)
	if !ok {
		return Result{
			State: m.state,
			Debug: domain.DebugData{FrontOverhang: in.FrontOverhang},
		}
	}

	traj.ZeroVelocityFrom(stopS)

	distanceToStop := stopS - egoS
	transition := m.advanceState(in.Now, distanceToStop, in.VehicleStopped)

	stopPose := traj.PoseAt(stopS)

	res := Result{
		Active:     true,
		State:      m.state,
		Transition: transition,
		StopReason: &domain.StopReason{
			StopPose:        stopPose,
			ReferencePoints: []domain.Point{m.line.Center()},
		},
		Debug: domain.DebugData{FrontOverhang: in.FrontOverhang, StopPose: &stopPose},
	}

	switch m.state {
	case domain.StateApproach:
		res.VelocityFactor = &domain.VelocityFactor{
			DistanceToStop: distanceToStop,
			Status:         domain.FactorApproaching,
		}
	case domain.StateStopped:
		res.VelocityFactor = &domain.VelocityFactor{
			DistanceToStop: distanceToStop,
			Status:         domain.FactorStopped,
		}
	case domain.StateStart:
		// Constraint already released; no factor, no debug pose.
		res.Debug.StopPose = nil
	}

	return res
}

// resolveStopPoint computes the ego arc length and, depending on the
// lifecycle state, the arc length of the enforced stop point.
// Pure with respect to its inputs; the only place geometry is
// consulted.
func (m *Module) resolveStopPoint(
	traj *geometry.Trajectory,
	egoPose domain.Pose,
	frontOverhang float64,
) (egoS float64, stopS float64, ok bool) {
	egoS = traj.Closest(egoPose.Position)

	switch m.state {
	case domain.StateApproach:
		line := m.line.Extended(m.param.StopLineExtendLength)

		crossS, found := traj.Crossed(line.P1, line.P2)
		if !found {
			return egoS, 0, false
		}

		// Place the stop at the vehicle's stopping point, not its
		// reference point.
		stopS = crossS - (frontOverhang + m.param.StopMargin)

		// A negative stop point means the safe stopping position is
		// already behind the vehicle; stand down rather than command
		// a physically impossible stop.
		if stopS < 0 {
			return egoS, 0, false
		}
		return egoS, stopS, true

	case domain.StateStopped:
		// Pin the stop to the current ego position so the vehicle
		// cannot creep while dwelling.
		return egoS, egoS, true

	default: // StateStart
		return egoS, 0, false
	}
}

// advanceState runs the lifecycle transition for this cycle and
// returns the transition event, if one fired.
func (m *Module) advanceState(now time.Time, distanceToStop float64, vehicleStopped bool) *domain.StopEvent {
	switch m.state {
	case domain.StateApproach:
		if distanceToStop < m.param.HoldStopMarginDistance && vehicleStopped {
			m.state = domain.StateStopped
			anchor := now
			m.stoppedAt = &anchor

			log.Printf("stop line module_id=%d transition=APPROACH->STOPPED distance=%.2fm", m.id, distanceToStop)
			if distanceToStop < 0 {
				log.Printf("stop line module_id=%d warning: vehicle cannot stop before stop line (distance=%.2fm)", m.id, distanceToStop)
			}

			return &domain.StopEvent{
				ModuleID:       m.id,
				From:           domain.StateApproach,
				To:             domain.StateStopped,
				DistanceToStop: distanceToStop,
				At:             now,
			}
		}

	case domain.StateStopped:
		if now.Sub(*m.stoppedAt) > m.param.StopDuration {
			m.state = domain.StateStart
			m.stoppedAt = nil

			log.Printf("stop line module_id=%d transition=STOPPED->START", m.id)

			return &domain.StopEvent{
				ModuleID:       m.id,
				From:           domain.StateStopped,
				To:             domain.StateStart,
				DistanceToStop: distanceToStop,
				At:             now,
			}
		}

	case domain.StateStart:
		// Terminal; the rule stays inactive for this stop line.
	}

	return nil
}
