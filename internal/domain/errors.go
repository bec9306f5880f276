package domain

type ErrorCode string

const (
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeValidation       ErrorCode = "VALIDATION"
	ErrorCodeInvalidPayload   ErrorCode = "INVALID_PAYLOAD"
	ErrorCodeUnknownEventType ErrorCode = "UNKNOWN_EVENT_TYPE"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return e.Message
}
