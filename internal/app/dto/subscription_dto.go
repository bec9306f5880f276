package dto

import "time"

type Subscription struct {
	SubscriptionID string         `json:"subscription_id"`
	HandlerType    string         `json:"handler_type"`
	EventTypes     []string       `json:"event_types"`
	IsActive       bool           `json:"is_active"`
	TargetURL      string         `json:"target_url,omitempty"`
	Config         map[string]any `json:"config,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
