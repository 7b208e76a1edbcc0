package domain

import "time"

// Qualitative annotation on a velocity factor.
type FactorStatus string

const (
	FactorApproaching FactorStatus = "APPROACHING"
	FactorStopped     FactorStatus = "STOPPED"
)

// VelocityFactor explains the velocity constraint a rule is currently
// applying: how far ahead the enforced stop point is and whether the
// vehicle is still approaching it or already held at it.
// One instance is emitted per cycle while the rule is active.
type VelocityFactor struct {
	DistanceToStop float64 // metres, may be negative while held past the line
	Status         FactorStatus
}

// StopReason explains where the vehicle is being stopped and which map
// geometry caused it. ReferencePoints carries the stop line's midpoint.
type StopReason struct {
	StopPose        Pose
	ReferencePoints []Point
}

// DebugData is the per-cycle snapshot consumed by visualization tools.
// StopPose is nil once the constraint has been released (and on cycles
// where no stop point resolved).
type DebugData struct {
	FrontOverhang float64
	StopPose      *Pose
}

// StopEvent records one lifecycle transition of a rule instance.
type StopEvent struct {
	ModuleID       int64
	From           State
	To             State
	DistanceToStop float64
	At             time.Time
}
