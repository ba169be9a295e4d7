// Package mocks provides shared test doubles for the service and web layers.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// LedgerClient is a testify mock for ledger.Client.
type LedgerClient struct {
	mock.Mock
}

func NewLedgerClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *LedgerClient {
	m := &LedgerClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LedgerClient) Debit(
	ctx context.Context, token string, amount decimal.Decimal, accountNumber string,
) (bool, error) {
	args := m.Called(ctx, token, amount, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerClient) Credit(
	ctx context.Context, token string, amount decimal.Decimal, accountNumber string,
) (bool, error) {
	args := m.Called(ctx, token, amount, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerClient) ResolveAccountID(
	ctx context.Context, token, accountNumber string,
) (string, error) {
	args := m.Called(ctx, token, accountNumber)
	return args.String(0), args.Error(1)
}
