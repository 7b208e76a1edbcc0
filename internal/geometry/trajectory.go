// Package geometry provides arc-length parameterized queries over a
// piecewise-linear trajectory: closest-point projection, segment
// crossing, pose interpolation and ranged velocity assignment.
// All distances are planar (XY) metres.
package geometry

import (
	"fmt"
	"math"
	"sort"

	"stopline-planner-service/internal/domain"
)

// Trajectory wraps a caller-owned slice of path samples with a
// cumulative arc-length table. The backing slice is never copied:
// ranged velocity mutation writes through to the caller's points.
type Trajectory struct {
	points []domain.TrajectoryPoint
	arc    []float64 // arc[i] = path length from points[0] to points[i]
}

// NewTrajectory builds the arc-length parameterization.
// It fails on degenerate input (fewer than two samples, or a path of
// zero total length); callers treat that cycle as a no-op.
func NewTrajectory(points []domain.TrajectoryPoint) (*Trajectory, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("new trajectory: need at least 2 points, got %d", len(points))
	}

	arc := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		arc[i] = arc[i-1] + points[i-1].Pose.Position.DistanceXY(points[i].Pose.Position)
	}

	if arc[len(arc)-1] <= 0 {
		return nil, fmt.Errorf("new trajectory: path has zero length over %d points", len(points))
	}

	return &Trajectory{points: points, arc: arc}, nil
}

// Length returns the total arc length of the trajectory.
func (t *Trajectory) Length() float64 { return t.arc[len(t.arc)-1] }

// Points returns the (possibly mutated) backing sample slice.
func (t *Trajectory) Points() []domain.TrajectoryPoint { return t.points }

// Closest projects p onto every segment and returns the arc length of
// the nearest point on the path. Ties resolve to the earliest segment.
func (t *Trajectory) Closest(p domain.Point) float64 {
	bestDist := math.Inf(1)
	bestS := 0.0

	for i := 0; i+1 < len(t.points); i++ {
		a := t.points[i].Pose.Position
		b := t.points[i+1].Pose.Position

		segLen := t.arc[i+1] - t.arc[i]
		if segLen == 0 {
			continue
		}

		abx := b.X - a.X
		aby := b.Y - a.Y
		apx := p.X - a.X
		apy := p.Y - a.Y

		u := (apx*abx + apy*aby) / (abx*abx + aby*aby)
		u = math.Max(0, math.Min(1, u))

		cx := a.X + u*abx
		cy := a.Y + u*aby
		d := math.Hypot(p.X-cx, p.Y-cy)

		if d < bestDist {
			bestDist = d
			bestS = t.arc[i] + u*segLen
		}
	}

	return bestS
}

// Crossed returns the arc length of the first crossing between the
// trajectory and the segment a-b, walking the path in order.
// Endpoint touches count as crossings; parallel overlaps do not
// (the configured stop-line extension makes near-parallel geometry a
// non-issue in practice).
func (t *Trajectory) Crossed(a, b domain.Point) (float64, bool) {
	for i := 0; i+1 < len(t.points); i++ {
		p := t.points[i].Pose.Position
		q := t.points[i+1].Pose.Position

		segLen := t.arc[i+1] - t.arc[i]
		if segLen == 0 {
			continue
		}

		rx := q.X - p.X
		ry := q.Y - p.Y
		sx := b.X - a.X
		sy := b.Y - a.Y

		denom := rx*sy - ry*sx
		if denom == 0 {
			continue
		}

		dx := a.X - p.X
		dy := a.Y - p.Y

		// u: parameter along the path segment, v: along the stop line.
		u := (dx*sy - dy*sx) / denom
		v := (dx*ry - dy*rx) / denom

		if u < 0 || u > 1 || v < 0 || v > 1 {
			continue
		}

		return t.arc[i] + u*segLen, true
	}

	return 0, false
}

// PoseAt returns the interpolated pose at arc length s.
// Position is linear between the bracketing samples; yaw is the
// heading of the bracketing segment. s is clamped to [0, Length].
func (t *Trajectory) PoseAt(s float64) domain.Pose {
	s = math.Max(0, math.Min(t.Length(), s))

	// First sample index with arc >= s.
	i := sort.SearchFloat64s(t.arc, s)
	if i == 0 {
		i = 1
	}

	// Skip zero-length segments (duplicate samples).
	for i < len(t.arc)-1 && t.arc[i] == t.arc[i-1] {
		i++
	}

	a := t.points[i-1].Pose.Position
	b := t.points[i].Pose.Position
	segLen := t.arc[i] - t.arc[i-1]

	if segLen == 0 {
		return t.points[i].Pose
	}

	u := (s - t.arc[i-1]) / segLen
	return domain.Pose{
		Position: domain.Point{
			X: a.X + u*(b.X-a.X),
			Y: a.Y + u*(b.Y-a.Y),
			Z: a.Z + u*(b.Z-a.Z),
		},
		Yaw: math.Atan2(b.Y-a.Y, b.X-a.X),
	}
}

// ZeroVelocityFrom forces longitudinal velocity to exactly 0 for every
// sample whose arc length lies in [s, Length]. Samples before s are
// left untouched; deceleration shaping belongs to other stages.
func (t *Trajectory) ZeroVelocityFrom(s float64) {
	for i := range t.points {
		if t.arc[i] >= s {
			t.points[i].LongitudinalVelocity = 0
		}
	}
}
