// Package transfer defines the Transfer aggregate: one completed money
// movement between two ledger accounts.
//
// Invariants:
//   - Amount is strictly positive.
//   - Sender and receiver account ids are non-empty.
//   - A Transfer is immutable once constructed; it is created only after
//     both the debit and the credit have been accepted by the ledger.
package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSenderRequired is returned when the sender account id is empty.
	ErrSenderRequired = errors.New("sender account id is required")

	// ErrReceiverRequired is returned when the receiver account id is empty.
	ErrReceiverRequired = errors.New("receiver account id is required")

	// ErrAmountNotPositive is returned when the amount is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
)

// Transfer represents one completed money movement. Fields are exported for
// mapping but must not be mutated after construction.
type Transfer struct {
	ID           uuid.UUID
	SenderID     string
	ReceiverID   string
	MovementDate time.Time
	Amount       decimal.Decimal
}

// New builds a Transfer with a fresh id and the current UTC timestamp.
func New(senderID, receiverID string, amount decimal.Decimal) (*Transfer, error) {
	return Load(uuid.New(), senderID, receiverID, time.Now().UTC(), amount)
}

// Load rehydrates a Transfer from persisted values, enforcing the same
// invariants as New.
func Load(
	id uuid.UUID,
	senderID, receiverID string,
	movementDate time.Time,
	amount decimal.Decimal,
) (*Transfer, error) {
	if senderID == "" {
		return nil, ErrSenderRequired
	}
	if receiverID == "" {
		return nil, ErrReceiverRequired
	}
	if !amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	return &Transfer{
		ID:           id,
		SenderID:     senderID,
		ReceiverID:   receiverID,
		MovementDate: movementDate,
		Amount:       amount,
	}, nil
}
