package domain

import "math"

// Immutable 3D position in the local planning frame (metres).
type Point struct {
	X float64
	Y float64
	Z float64
}

// DistanceXY returns the planar distance to another point.
// Longitudinal planning is performed on the XY plane; Z is carried
// through for reporting only.
func (p Point) DistanceXY(o Point) float64 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return math.Hypot(dx, dy)
}

// Pose is a position plus heading on the XY plane (yaw, radians).
type Pose struct {
	Position Point
	Yaw      float64
}

// A single trajectory sample: where the vehicle should be and how fast
// it should be moving when it gets there. LaneIDs is lane-association
// metadata carried opaquely from the map layer.
type TrajectoryPoint struct {
	Pose                 Pose
	LongitudinalVelocity float64 // m/s
	LaneIDs              []int64
}
