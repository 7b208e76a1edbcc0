package ports

import (
	"context"

	"stopline-planner-service/internal/domain"
)

// Port: a boundary for persisting and retrieving lifecycle transitions.
type StopEventRecorder interface {
	// Persist one lifecycle transition.
	Record(ctx context.Context, ev domain.StopEvent) error

	// Retrieve recorded transitions, oldest first.
	// moduleID == 0 lists transitions for every module.
	List(ctx context.Context, moduleID int64) ([]domain.StopEvent, error)
}
