// Package idempotency defines the Record aggregate: the stored outcome of a
// previously attempted operation, keyed for replay safety.
package idempotency

import (
	"github.com/google/uuid"
)

// Status is the recorded outcome of an operation.
type Status string

const (
	// StatusNone marks an operation that was started but whose outcome is
	// not yet known.
	StatusNone Status = "none"
	// StatusDone marks an operation that completed successfully.
	StatusDone Status = "done"
	// StatusFailed marks an operation that completed with a failure.
	StatusFailed Status = "failed"
)

// Record is the outcome of a previously attempted operation. The key is
// immutable once created; only the result may be re-set.
type Record struct {
	id      uuid.UUID
	request *HashedRequest
	result  Status
}

// New creates a Record with a fresh key and no known outcome.
func New(request *HashedRequest) *Record {
	return &Record{id: uuid.New(), request: request, result: StatusNone}
}

// Load rehydrates a Record from persisted values.
func Load(id uuid.UUID, request *HashedRequest, result Status) *Record {
	return &Record{id: id, request: request, result: result}
}

// ID returns the idempotency key.
func (r *Record) ID() uuid.UUID { return r.id }

// Request returns the hashed request fingerprint, or nil when none was stored.
func (r *Record) Request() *HashedRequest { return r.request }

// Result returns the recorded outcome.
func (r *Record) Result() Status { return r.result }

// SetResult records the outcome of the operation.
func (r *Record) SetResult(result Status) { r.result = result }
