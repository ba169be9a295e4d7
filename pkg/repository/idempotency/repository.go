// Package idempotency declares the persistence contract for idempotency
// records.
package idempotency

import (
	"context"
	"errors"

	"github.com/bankmore/transfers/pkg/dto"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no record matches the given key or request
// fingerprint.
var ErrNotFound = errors.New("idempotency record not found")

// Repository is the durable store of operation outcomes keyed by idempotency
// id or by the original request's fingerprint. Lookup by either must resolve
// to the same record when they refer to the same logical operation.
type Repository interface {
	Create(ctx context.Context, create dto.IdempotencyCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.IdempotencyRead, error)
	GetByRequest(ctx context.Context, requestHash string) (*dto.IdempotencyRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.IdempotencyUpdate) error
}
