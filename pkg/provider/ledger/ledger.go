// Package ledger declares the boundary contract to the external
// account-ledger service, the system of record for balances.
package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrAccountResolution is returned when the ledger cannot resolve an account
// number to a durable account id.
var ErrAccountResolution = errors.New("ledger could not resolve the account number")

// Client adapts saga intents to the ledger's operation protocol. The bearer
// token is a per-call parameter; implementations must not cache it across
// calls. An empty accountNumber means the token's own account.
//
// Debit and Credit return false without an error when the ledger accepts the
// request but signals logical rejection; an error means the call could not be
// completed.
type Client interface {
	Debit(ctx context.Context, token string, amount decimal.Decimal, accountNumber string) (bool, error)
	Credit(ctx context.Context, token string, amount decimal.Decimal, accountNumber string) (bool, error)
	ResolveAccountID(ctx context.Context, token, accountNumber string) (string, error)
}
