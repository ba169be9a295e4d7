// Package transfer declares the persistence contract for transfer records.
package transfer

import (
	"context"
	"errors"

	"github.com/bankmore/transfers/pkg/dto"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no transfer matches the given id.
var ErrNotFound = errors.New("transfer not found")

// Repository is the durable, append-only store of completed transfers.
// Create has no upsert semantics: a duplicate id is an error.
type Repository interface {
	Create(ctx context.Context, create dto.TransferCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.TransferRead, error)
}
