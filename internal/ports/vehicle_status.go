package ports

import "time"

// Port: the "vehicle is physically stopped" predicate, fed from real
// odometry by the host and consumed by the lifecycle state machine.
type VehicleStatusProvider interface {
	// Record one odometry sample (signed longitudinal velocity, m/s).
	Observe(at time.Time, velocity float64)

	// Report whether the vehicle currently counts as physically stopped.
	IsVehicleStopped() bool
}
