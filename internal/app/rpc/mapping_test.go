package rpc_test

import (
	"errors"
	"testing"

	"opsbus/internal/app/rpc"
	"opsbus/internal/domain"
	"opsbus/internal/domain/event"
)

func TestStatusMappingIsBidirectional(t *testing.T) {
	cases := []struct {
		status event.Status
		code   int
	}{
		{event.StatusPending, rpc.StatusCodePending},
		{event.StatusProcessing, rpc.StatusCodeProcessing},
		{event.StatusProcessed, rpc.StatusCodeProcessed},
		{event.StatusFailed, rpc.StatusCodeFailed},
	}

	for _, tc := range cases {
		if got := rpc.StatusToCode(tc.status); got != tc.code {
			t.Fatalf("StatusToCode(%s) = %d, want %d", tc.status, got, tc.code)
		}
		back, ok := rpc.StatusFromCode(tc.code)
		if !ok || back != tc.status {
			t.Fatalf("StatusFromCode(%d) = %s/%v, want %s", tc.code, back, ok, tc.status)
		}
	}
}

func TestStatusMappingUnknown(t *testing.T) {
	if got := rpc.StatusToCode("GARBAGE"); got != rpc.StatusCodeUnspecified {
		t.Fatalf("unknown status mapped to %d, want 0", got)
	}
	if _, ok := rpc.StatusFromCode(42); ok {
		t.Fatal("unknown code must not map")
	}
}

func TestEventTypeFromCode(t *testing.T) {
	typ, err := rpc.EventTypeFromCode(1)
	if err != nil || typ != "BOOKING_CREATED" {
		t.Fatalf("EventTypeFromCode(1) = %q, %v", typ, err)
	}

	_, err = rpc.EventTypeFromCode(999)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeUnknownEventType {
		t.Fatalf("err = %v, want UNKNOWN_EVENT_TYPE", err)
	}
}
