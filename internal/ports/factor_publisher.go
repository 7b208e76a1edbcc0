package ports

import (
	"context"

	"stopline-planner-service/internal/domain"
)

// Port: a boundary for pushing per-cycle velocity factors to live
// consumers (explanation UIs, dashboards). Publishing is best-effort;
// a failed publish never fails the planning cycle.
type FactorPublisher interface {
	Publish(ctx context.Context, moduleID int64, f domain.VelocityFactor) error
}
