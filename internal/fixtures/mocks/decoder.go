package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/bankmore/transfers/pkg/service/auth"
)

// TokenDecoder is a testify mock for auth.TokenDecoder.
type TokenDecoder struct {
	mock.Mock
}

func NewTokenDecoder(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenDecoder {
	m := &TokenDecoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenDecoder) Decode(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if claims, ok := args.Get(0).(*auth.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}
