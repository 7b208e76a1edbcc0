package publish

import (
	"context"

	"stopline-planner-service/internal/domain"
)

// NopFactorPublisher discards factors; used when no Redis is
// configured.
type NopFactorPublisher struct{}

func (NopFactorPublisher) Publish(context.Context, int64, domain.VelocityFactor) error {
	return nil
}
