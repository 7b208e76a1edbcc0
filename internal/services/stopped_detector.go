package services

import "time"

type odomSample struct {
	at       time.Time
	velocity float64 // absolute value, m/s
}

// StoppedDetector decides the "vehicle is physically stopped"
// predicate from a sliding window of odometry samples: stopped iff
// every sample within the window is below the velocity threshold AND
// the window is fully covered by observations. A vehicle that merely
// dipped below the threshold for one sample does not count.
//
// With a zero window only the latest sample is consulted.
type StoppedDetector struct {
	threshold float64
	window    time.Duration
	samples   []odomSample
}

func NewStoppedDetector(threshold float64, window time.Duration) *StoppedDetector {
	return &StoppedDetector{threshold: threshold, window: window}
}

// Observe records one odometry sample and prunes samples that fell out
// of the window. Time moving backwards (replay restart) resets the
// buffer.
func (d *StoppedDetector) Observe(at time.Time, velocity float64) {
	if velocity < 0 {
		velocity = -velocity
	}

	if n := len(d.samples); n > 0 && at.Before(d.samples[n-1].at) {
		d.samples = d.samples[:0]
	}

	d.samples = append(d.samples, odomSample{at: at, velocity: velocity})

	cut := 0
	for cut < len(d.samples)-1 && at.Sub(d.samples[cut].at) > d.window {
		cut++
	}
	d.samples = d.samples[cut:]
}

func (d *StoppedDetector) IsVehicleStopped() bool {
	n := len(d.samples)
	if n == 0 {
		return false
	}

	newest := d.samples[n-1].at
	if newest.Sub(d.samples[0].at) < d.window {
		return false
	}

	for _, s := range d.samples {
		if s.velocity >= d.threshold {
			return false
		}
	}
	return true
}
