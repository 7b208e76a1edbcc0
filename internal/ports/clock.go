package ports

import "time"

// Clock supplies the current time to components that must default a
// missing cycle timestamp. Core planning code never reads it; cycles
// carry their own explicit timestamp for deterministic replay.
type Clock interface {
	Now() time.Time
}
