package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"opsbus/internal/domain/event"
)

// WebhookHandler posts the event envelope to an external endpoint.
type WebhookHandler struct {
	url    string
	client *http.Client
}

func NewWebhookHandler(url string) *WebhookHandler {
	return &WebhookHandler{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (h *WebhookHandler) Handle(ctx context.Context, e event.Event) error {
	body, err := json.Marshal(map[string]any{
		"event_id":        e.ID,
		"event_type":      e.Type,
		"source_subgraph": e.SourceSubgraph,
		"entity_type":     e.EntityType,
		"entity_id":       e.EntityID,
		"org_id":          e.OrgID,
		"target_user_ids": e.TargetUserIDs,
		"payload":         e.Payload,
		"created_at":      e.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook %s returned %d", h.url, resp.StatusCode)
	}
	return nil
}
