package stats

import (
	"context"

	"opsbus/internal/domain/event"
)

type Repository interface {
	// ListEvents returns up to limit events matching the filter with ids
	// strictly greater than after, ordered by id.
	ListEvents(ctx context.Context, f EventFilter, after string, limit int) ([]event.Event, error)
	GetEventStats(ctx context.Context, w Window) (EventStats, error)
}
