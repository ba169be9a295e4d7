// Package transfer provides the GORM-backed transfer record store.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bankmore/transfers/pkg/dto"
	repo "github.com/bankmore/transfers/pkg/repository/transfer"
)

type repository struct {
	db *gorm.DB
}

// New creates a transfer repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transfer.Repository. Duplicate ids surface as the
// underlying constraint error; there are no upsert semantics.
func (r *repository) Create(ctx context.Context, create dto.TransferCreate) error {
	m := Transfer{
		ID:           create.ID,
		SenderID:     create.SenderID,
		ReceiverID:   create.ReceiverID,
		MovementDate: create.MovementDate,
		Amount:       create.Amount,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// Get implements transfer.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.TransferRead, error) {
	var m Transfer
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", repo.ErrNotFound, id)
		}
		return nil, err
	}
	return &dto.TransferRead{
		ID:           m.ID,
		SenderID:     m.SenderID,
		ReceiverID:   m.ReceiverID,
		MovementDate: m.MovementDate,
		Amount:       m.Amount,
	}, nil
}
