package domain

import "math"

// A regulatory stop line: the line-segment geometry the vehicle must
// halt before. Immutable for the lifetime of the rule instance that
// holds it.
type StopLine struct {
	P1 Point
	P2 Point
}

// Center returns the component-wise midpoint of the two endpoints,
// used as the reference point in stop reasons.
func (l StopLine) Center() Point {
	return Point{
		X: (l.P1.X + l.P2.X) / 2.0,
		Y: (l.P1.Y + l.P2.Y) / 2.0,
		Z: (l.P1.Z + l.P2.Z) / 2.0,
	}
}

// Extended returns a copy of the line with both endpoints pushed
// outward by length metres along the segment direction (XY plane).
// Extension tolerates slight misalignment between the mapped line and
// the sampled path when searching for an intersection.
// A zero-length line is returned unchanged.
func (l StopLine) Extended(length float64) StopLine {
	dx := l.P2.X - l.P1.X
	dy := l.P2.Y - l.P1.Y
	norm := math.Hypot(dx, dy)
	if norm == 0 || length == 0 {
		return l
	}

	ux := dx / norm
	uy := dy / norm

	ext := l
	ext.P1.X -= ux * length
	ext.P1.Y -= uy * length
	ext.P2.X += ux * length
	ext.P2.Y += uy * length
	return ext
}
