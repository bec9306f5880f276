package subscription

import "time"

// Subscription routes events of the listed types to one registered handler.
//
// Steady state should hold at most one active subscription per handler type.
// That is not enforced at write time: two active subscriptions for the same
// handler type will invoke that handler twice per matching event. Operators
// own this invariant.
type Subscription struct {
	ID          string
	HandlerType string
	EventTypes  []string
	IsActive    bool
	TargetURL   string
	Config      map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Subscription) Matches(eventType string) bool {
	for _, t := range s.EventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}
