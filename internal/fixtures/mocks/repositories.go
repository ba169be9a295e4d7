package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bankmore/transfers/pkg/dto"
)

// TransferRepository is a testify mock for the transfer record store.
type TransferRepository struct {
	mock.Mock
}

func NewTransferRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *TransferRepository {
	m := &TransferRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TransferRepository) Create(ctx context.Context, create dto.TransferCreate) error {
	args := m.Called(ctx, create)
	return args.Error(0)
}

func (m *TransferRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransferRead, error) {
	args := m.Called(ctx, id)
	if read, ok := args.Get(0).(*dto.TransferRead); ok {
		return read, args.Error(1)
	}
	return nil, args.Error(1)
}

// IdempotencyRepository is a testify mock for the idempotency record store.
type IdempotencyRepository struct {
	mock.Mock
}

func NewIdempotencyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdempotencyRepository {
	m := &IdempotencyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *IdempotencyRepository) Create(ctx context.Context, create dto.IdempotencyCreate) error {
	args := m.Called(ctx, create)
	return args.Error(0)
}

func (m *IdempotencyRepository) Get(ctx context.Context, id uuid.UUID) (*dto.IdempotencyRead, error) {
	args := m.Called(ctx, id)
	if read, ok := args.Get(0).(*dto.IdempotencyRead); ok {
		return read, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdempotencyRepository) GetByRequest(ctx context.Context, requestHash string) (*dto.IdempotencyRead, error) {
	args := m.Called(ctx, requestHash)
	if read, ok := args.Get(0).(*dto.IdempotencyRead); ok {
		return read, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdempotencyRepository) Update(ctx context.Context, id uuid.UUID, update dto.IdempotencyUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}
