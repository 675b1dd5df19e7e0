package i

import (
	"context"

	"github.com/google/uuid"
)

// TrailGenerator runs the walk for a requested trail and persists the result.
type TrailGenerator interface {
	// Generate loads the pending trail, drives a walk engine until the
	// trail's step budget runs out or the walk is trapped, and stores the
	// marked cells. Safe to call from queue workers.
	Generate(ctx context.Context, trailID uuid.UUID) error
}

// GenerationScheduler accepts trail generation requests for asynchronous
// execution.
type GenerationScheduler interface {
	// Schedule enqueues the trail for generation. The grid size is used to
	// bucket requests so large grids drain separately.
	Schedule(ctx context.Context, trailID uuid.UUID, size int) error
}
