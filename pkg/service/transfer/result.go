package transfer

import "github.com/google/uuid"

// Result is the single pass/fail outcome of a transfer saga. A failed result
// carries a classified, human-readable reason; a successful one carries a
// fresh correlation event id, distinct from the transfer id.
type Result struct {
	IsSuccess bool
	EventID   uuid.UUID
	Error     string
}

// Success builds a successful result with the given correlation event id.
func Success(eventID uuid.UUID) *Result {
	return &Result{IsSuccess: true, EventID: eventID}
}

// Failure builds a failed result with the classified reason.
func Failure(reason string) *Result {
	return &Result{Error: reason}
}
