package subscription

import "context"

type Repository interface {
	Create(ctx context.Context, s Subscription) (Subscription, error)
	Update(ctx context.Context, s Subscription) (Subscription, error)
	SetActive(ctx context.Context, id string, isActive bool) (Subscription, error)
	GetByID(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context) ([]Subscription, error)
	// ListActiveByEventType returns every active subscription whose
	// eventTypes set contains the given type, duplicates per handler
	// type included.
	ListActiveByEventType(ctx context.Context, eventType string) ([]Subscription, error)
}
