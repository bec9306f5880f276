package rpc

// Wire types for the ingestion RPC surface. Payload and metadata travel as
// opaque JSON strings; event type and status travel as numeric enums.

type PublishEventRequest struct {
	EventType      int      `json:"event_type"`
	SourceSubgraph string   `json:"source_subgraph"`
	EntityType     string   `json:"entity_type"`
	EntityID       string   `json:"entity_id"`
	OrgID          string   `json:"org_id,omitempty"`
	ActorUserID    string   `json:"actor_user_id,omitempty"`
	TargetUserIDs  []string `json:"target_user_ids,omitempty"`
	PayloadJSON    string   `json:"payload_json"`
	MetadataJSON   string   `json:"metadata_json,omitempty"`
}

type PublishEventResponse struct {
	EventID   string `json:"event_id"`
	Status    int    `json:"status"`
	CreatedAt string `json:"created_at"`
}

type PublishEventResult struct {
	EventID   string `json:"event_id"`
	Status    int    `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

type PublishBulkEventsRequest struct {
	Events []PublishEventRequest `json:"events"`
}

type PublishBulkEventsResponse struct {
	Results      []PublishEventResult `json:"results"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
}

type GetEventStatusResponse struct {
	EventID     string `json:"event_id"`
	Status      int    `json:"status"`
	ProcessedAt string `json:"processed_at,omitempty"`
	Error       string `json:"error,omitempty"`
}
