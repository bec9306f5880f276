package dto

import "time"

type Event struct {
	EventID        string         `json:"event_id"`
	EventType      string         `json:"event_type"`
	SourceSubgraph string         `json:"source_subgraph,omitempty"`
	EntityType     string         `json:"entity_type"`
	EntityID       string         `json:"entity_id"`
	OrgID          string         `json:"org_id,omitempty"`
	ActorUserID    string         `json:"actor_user_id,omitempty"`
	TargetUserIDs  []string       `json:"target_user_ids"`
	Payload        map[string]any `json:"payload"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	ProcessedAt    *time.Time     `json:"processed_at,omitempty"`
}

type EventPage struct {
	Events      []Event `json:"events"`
	EndCursor   string  `json:"end_cursor,omitempty"`
	HasNextPage bool    `json:"has_next_page"`
}
