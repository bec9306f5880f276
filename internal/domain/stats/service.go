package stats

import "context"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Service interface {
	// ListEvents pages through events matching the filter. The cursor is
	// the id of the last event on the previous page; one extra row is
	// fetched to detect whether a next page exists.
	ListEvents(ctx context.Context, f EventFilter, after string, first int) (EventPage, error)
	GetEventStats(ctx context.Context, w Window) (EventStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListEvents(ctx context.Context, f EventFilter, after string, first int) (EventPage, error) {
	if first <= 0 {
		first = defaultPageSize
	}
	if first > maxPageSize {
		first = maxPageSize
	}

	events, err := s.repo.ListEvents(ctx, f, after, first+1)
	if err != nil {
		return EventPage{}, err
	}

	page := EventPage{Events: events}
	if len(events) > first {
		page.Events = events[:first]
		page.HasNextPage = true
	}
	if n := len(page.Events); n > 0 {
		page.EndCursor = page.Events[n-1].ID
	}
	return page, nil
}

func (s *service) GetEventStats(ctx context.Context, w Window) (EventStats, error) {
	return s.repo.GetEventStats(ctx, w)
}
