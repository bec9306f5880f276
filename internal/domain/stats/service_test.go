package stats_test

import (
	"context"
	"fmt"
	"testing"

	"opsbus/internal/domain/event"
	"opsbus/internal/domain/stats"
)

type repoFake struct {
	events    []event.Event
	lastAfter string
	lastLimit int
}

func (r *repoFake) ListEvents(ctx context.Context, f stats.EventFilter, after string, limit int) ([]event.Event, error) {
	r.lastAfter = after
	r.lastLimit = limit

	var res []event.Event
	for _, e := range r.events {
		if e.ID <= after {
			continue
		}
		res = append(res, e)
		if len(res) == limit {
			break
		}
	}
	return res, nil
}

func (r *repoFake) GetEventStats(ctx context.Context, w stats.Window) (stats.EventStats, error) {
	return stats.EventStats{Total: len(r.events)}, nil
}

func seedEvents(n int) []event.Event {
	res := make([]event.Event, 0, n)
	for i := 1; i <= n; i++ {
		res = append(res, event.Event{ID: fmt.Sprintf("ev-%03d", i)})
	}
	return res
}

func TestListEvents_Pagination(t *testing.T) {
	r := &repoFake{events: seedEvents(5)}
	svc := stats.NewService(r)

	page, err := svc.ListEvents(context.Background(), stats.EventFilter{}, "", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if r.lastLimit != 3 {
		t.Fatalf("repo limit = %d, want first+1", r.lastLimit)
	}
	if len(page.Events) != 2 || !page.HasNextPage {
		t.Fatalf("page = %d events, next=%v", len(page.Events), page.HasNextPage)
	}
	if page.EndCursor != "ev-002" {
		t.Fatalf("cursor = %q, want ev-002", page.EndCursor)
	}

	page, err = svc.ListEvents(context.Background(), stats.EventFilter{}, page.EndCursor, 10)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(page.Events) != 3 || page.HasNextPage {
		t.Fatalf("second page = %d events, next=%v", len(page.Events), page.HasNextPage)
	}
	if page.EndCursor != "ev-005" {
		t.Fatalf("cursor = %q, want ev-005", page.EndCursor)
	}
}

func TestListEvents_DefaultsAndCaps(t *testing.T) {
	r := &repoFake{}
	svc := stats.NewService(r)

	if _, err := svc.ListEvents(context.Background(), stats.EventFilter{}, "", 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if r.lastLimit != 51 {
		t.Fatalf("default limit = %d, want 51", r.lastLimit)
	}

	if _, err := svc.ListEvents(context.Background(), stats.EventFilter{}, "", 10000); err != nil {
		t.Fatalf("list: %v", err)
	}
	if r.lastLimit != 201 {
		t.Fatalf("capped limit = %d, want 201", r.lastLimit)
	}
}

func TestListEvents_EmptyPage(t *testing.T) {
	r := &repoFake{}
	svc := stats.NewService(r)

	page, err := svc.ListEvents(context.Background(), stats.EventFilter{}, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Events) != 0 || page.HasNextPage || page.EndCursor != "" {
		t.Fatalf("page = %+v, want empty", page)
	}
}
