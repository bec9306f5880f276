package rpc

import (
	"fmt"
	"net/http"

	"opsbus/internal/domain"
	"opsbus/internal/domain/event"
)

// Status enum, fixed wire contract. CANCELLED is reserved on the wire;
// nothing in the bus currently produces it.
const (
	StatusCodeUnspecified = 0
	StatusCodePending     = 1
	StatusCodeProcessing  = 2
	StatusCodeProcessed   = 3
	StatusCodeFailed      = 4
	StatusCodeCancelled   = 5
)

const statusCancelled = "CANCELLED"

var statusToCode = map[string]int{
	string(event.StatusPending):    StatusCodePending,
	string(event.StatusProcessing): StatusCodeProcessing,
	string(event.StatusProcessed):  StatusCodeProcessed,
	string(event.StatusFailed):     StatusCodeFailed,
	statusCancelled:                StatusCodeCancelled,
}

var statusFromCode = map[int]string{
	StatusCodePending:    string(event.StatusPending),
	StatusCodeProcessing: string(event.StatusProcessing),
	StatusCodeProcessed:  string(event.StatusProcessed),
	StatusCodeFailed:     string(event.StatusFailed),
	StatusCodeCancelled:  statusCancelled,
}

func StatusToCode(s event.Status) int {
	return statusToCode[string(s)]
}

func StatusFromCode(code int) (event.Status, bool) {
	s, ok := statusFromCode[code]
	return event.Status(s), ok
}

// Event type enum, table v1. Append-only: codes are never reused or
// renumbered between versions.
var eventTypeFromCode = map[int]string{
	1: "BOOKING_CREATED",
	2: "BOOKING_UPDATED",
	3: "BOOKING_CANCELLED",
	4: "CLEANING_SCHEDULED",
	5: "CLEANING_COMPLETED",
	6: "REPAIR_REQUESTED",
	7: "REPAIR_COMPLETED",
	8: "CHECKLIST_ASSIGNED",
	9: "CHECKLIST_COMPLETED",
}

// EventTypeFromCode maps the wire enum to the internal event type string.
// Unknown codes are rejected, never coerced.
func EventTypeFromCode(code int) (string, error) {
	t, ok := eventTypeFromCode[code]
	if !ok {
		return "", &domain.DomainError{
			Code:       domain.ErrorCodeUnknownEventType,
			Message:    fmt.Sprintf("unknown event type code %d", code),
			HTTPStatus: http.StatusBadRequest,
		}
	}
	return t, nil
}
