package rpc_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"opsbus/internal/app/rpc"
	"opsbus/internal/domain"
	"opsbus/internal/domain/event"
)

type busFake struct {
	published []event.Draft
	events    map[string]event.Event
}

func newBusFake() *busFake {
	return &busFake{events: map[string]event.Event{}}
}

func (b *busFake) Publish(ctx context.Context, d event.Draft) (event.Event, error) {
	b.published = append(b.published, d)
	ev := event.Event{
		ID:        fmt.Sprintf("ev-%d", len(b.published)),
		Type:      d.Type,
		Status:    event.StatusPending,
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	b.events[ev.ID] = ev
	return ev, nil
}

func (b *busFake) Process(ctx context.Context, id string) error { return nil }

func (b *busFake) Replay(ctx context.Context, id string) (event.Event, error) {
	return b.Get(ctx, id)
}

func (b *busFake) Get(ctx context.Context, id string) (event.Event, error) {
	ev, ok := b.events[id]
	if !ok {
		return event.Event{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "event not found", HTTPStatus: http.StatusNotFound}
	}
	return ev, nil
}

func validRequest() rpc.PublishEventRequest {
	return rpc.PublishEventRequest{
		EventType:      1,
		SourceSubgraph: "bookings",
		EntityType:     "Booking",
		EntityID:       "b-1",
		TargetUserIDs:  []string{"u1"},
		PayloadJSON:    `{"check_in":"2026-09-01"}`,
		MetadataJSON:   `{"trace_id":"abc"}`,
	}
}

func TestPublishEvent(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	resp, err := svc.PublishEvent(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if resp.EventID == "" || resp.Status != rpc.StatusCodePending {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.CreatedAt == "" {
		t.Fatal("created_at missing")
	}

	d := bus.published[0]
	if d.Type != "BOOKING_CREATED" {
		t.Fatalf("type = %q, want BOOKING_CREATED", d.Type)
	}
	if d.Payload["check_in"] != "2026-09-01" {
		t.Fatalf("payload = %v", d.Payload)
	}
	if d.Metadata["trace_id"] != "abc" {
		t.Fatalf("metadata = %v", d.Metadata)
	}
}

func TestPublishEvent_InvalidPayloadRejected(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	req := validRequest()
	req.PayloadJSON = `{not json`

	_, err := svc.PublishEvent(context.Background(), req)
	de, ok := err.(*domain.DomainError)
	if !ok || de.Code != domain.ErrorCodeInvalidPayload {
		t.Fatalf("err = %v, want INVALID_PAYLOAD", err)
	}
	if len(bus.published) != 0 {
		t.Fatal("nothing must be published on payload parse failure")
	}
}

func TestPublishEvent_UnknownTypeRejected(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	req := validRequest()
	req.EventType = 999

	_, err := svc.PublishEvent(context.Background(), req)
	de, ok := err.(*domain.DomainError)
	if !ok || de.Code != domain.ErrorCodeUnknownEventType {
		t.Fatalf("err = %v, want UNKNOWN_EVENT_TYPE", err)
	}
	if len(bus.published) != 0 {
		t.Fatal("nothing must be published for an unknown type code")
	}
}

func TestPublishEvent_MalformedMetadataIsNonFatal(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	req := validRequest()
	req.MetadataJSON = `{not json`

	if _, err := svc.PublishEvent(context.Background(), req); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if bus.published[0].Metadata != nil {
		t.Fatalf("metadata = %v, want omitted", bus.published[0].Metadata)
	}
}

func TestPublishBulkEvents_IsolatesFailures(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	bad := validRequest()
	bad.PayloadJSON = `{not json`

	resp := svc.PublishBulkEvents(context.Background(), rpc.PublishBulkEventsRequest{
		Events: []rpc.PublishEventRequest{validRequest(), bad, validRequest()},
	})

	if len(resp.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(resp.Results))
	}
	if resp.SuccessCount != 2 || resp.FailedCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", resp.SuccessCount, resp.FailedCount)
	}
	if resp.SuccessCount+resp.FailedCount != len(resp.Results) {
		t.Fatal("counts must add up to the input size")
	}

	if r := resp.Results[1]; r.EventID != "" || r.Status != rpc.StatusCodeFailed || r.Error == "" {
		t.Fatalf("failed result = %+v", r)
	}
	for _, i := range []int{0, 2} {
		if r := resp.Results[i]; r.EventID == "" || r.Status != rpc.StatusCodePending || r.Error != "" {
			t.Fatalf("result %d = %+v", i, r)
		}
	}
}

func TestGetEventStatus(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	processed := time.Date(2026, 8, 30, 12, 5, 0, 0, time.UTC)
	bus.events["ev-1"] = event.Event{
		ID:          "ev-1",
		Status:      event.StatusFailed,
		ProcessedAt: &processed,
		Metadata:    map[string]any{"errors": []any{"db unavailable", "second"}},
	}

	resp, err := svc.GetEventStatus(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if resp.Status != rpc.StatusCodeFailed {
		t.Fatalf("status = %d, want FAILED", resp.Status)
	}
	if resp.ProcessedAt == "" {
		t.Fatal("processed_at missing")
	}
	if resp.Error != "db unavailable" {
		t.Fatalf("error = %q, want the first recorded message", resp.Error)
	}
}

func TestGetEventStatus_NotFound(t *testing.T) {
	bus := newBusFake()
	svc := rpc.NewService(bus, zap.NewNop())

	_, err := svc.GetEventStatus(context.Background(), "missing")
	de, ok := err.(*domain.DomainError)
	if !ok || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}
