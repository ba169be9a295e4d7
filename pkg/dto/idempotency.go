package dto

import "github.com/google/uuid"

// IdempotencyCreate carries a new idempotency record to the store.
type IdempotencyCreate struct {
	ID          uuid.UUID
	RequestHash *string
	Result      string
}

// IdempotencyRead is the persisted representation of an idempotency record.
type IdempotencyRead struct {
	ID          uuid.UUID
	RequestHash *string
	Result      string
}

// IdempotencyUpdate carries the fields that may change after the outcome of
// an operation becomes known.
type IdempotencyUpdate struct {
	Result string
}
