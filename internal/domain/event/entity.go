package event

import "time"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusProcessed  Status = "PROCESSED"
	StatusFailed     Status = "FAILED"
)

// Event is an immutable fact about a domain occurrence plus its mutable
// processing state. After creation only Status, ProcessedAt and the
// metadata "errors" list change, and only through the bus service.
type Event struct {
	ID             string
	Type           string
	SourceSubgraph string
	EntityType     string
	EntityID       string
	OrgID          string
	ActorUserID    string
	TargetUserIDs  []string
	Payload        map[string]any
	Metadata       map[string]any
	Status         Status
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

// Draft is the publisher-supplied part of an Event.
type Draft struct {
	Type           string
	SourceSubgraph string
	EntityType     string
	EntityID       string
	OrgID          string
	ActorUserID    string
	TargetUserIDs  []string
	Payload        map[string]any
	Metadata       map[string]any
}

// ProcessingErrors extracts the error messages recorded in metadata by
// failed processing attempts.
func (e Event) ProcessingErrors() []string {
	if e.Metadata == nil {
		return nil
	}
	raw, ok := e.Metadata["errors"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
