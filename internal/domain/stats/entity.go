package stats

import (
	"time"

	"opsbus/internal/domain/event"
)

type EventFilter struct {
	Type       string
	EntityType string
	EntityID   string
	OrgID      string
	Status     event.Status
	// UserID matches events where the user is the actor or one of the
	// notification targets.
	UserID string
}

type EventPage struct {
	Events      []event.Event
	EndCursor   string
	HasNextPage bool
}

type Window struct {
	From *time.Time
	To   *time.Time
}

type TypeCount struct {
	EventType string
	Count     int
}

type EventStats struct {
	Total     int
	Processed int
	Failed    int
	ByType    []TypeCount
}
