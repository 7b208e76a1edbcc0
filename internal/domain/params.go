package domain

import "time"

// Configuration of a single stop-line rule instance.
// Loaded once at construction and immutable thereafter.
type PlannerParam struct {
	// Extra longitudinal buffer kept between the vehicle front and the
	// stop line (metres, >= 0).
	StopMargin float64

	// Distance under which the vehicle counts as "arrived" at the stop
	// point (metres, >= 0).
	HoldStopMarginDistance float64

	// Minimum dwell time at the line before departure is permitted.
	StopDuration time.Duration

	// How far the stop-line segment is extended on both ends when
	// intersecting it with the trajectory (metres, >= 0).
	StopLineExtendLength float64
}
