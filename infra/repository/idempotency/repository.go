// Package idempotency provides the GORM-backed idempotency record store.
package idempotency

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bankmore/transfers/pkg/dto"
	repo "github.com/bankmore/transfers/pkg/repository/idempotency"
)

type repository struct {
	db *gorm.DB
}

// New creates an idempotency repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements idempotency.Repository.
func (r *repository) Create(ctx context.Context, create dto.IdempotencyCreate) error {
	m := Record{
		ID:          create.ID,
		RequestHash: create.RequestHash,
		Result:      create.Result,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// Get implements idempotency.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.IdempotencyRead, error) {
	var m Record
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", repo.ErrNotFound, id)
		}
		return nil, err
	}
	return mapModel(&m), nil
}

// GetByRequest implements idempotency.Repository.
func (r *repository) GetByRequest(ctx context.Context, requestHash string) (*dto.IdempotencyRead, error) {
	var m Record
	err := r.db.WithContext(ctx).First(&m, "request_hash = ?", requestHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request hash", repo.ErrNotFound)
		}
		return nil, err
	}
	return mapModel(&m), nil
}

// Update implements idempotency.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.IdempotencyUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = ?", id).
		Updates(map[string]any{"result": update.Result})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", repo.ErrNotFound, id)
	}
	return nil
}

func mapModel(m *Record) *dto.IdempotencyRead {
	return &dto.IdempotencyRead{
		ID:          m.ID,
		RequestHash: m.RequestHash,
		Result:      m.Result,
	}
}
