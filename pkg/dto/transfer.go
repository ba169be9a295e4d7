// Package dto holds the flat data shapes exchanged between services and
// repositories.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferCreate carries a new transfer record to the store.
type TransferCreate struct {
	ID           uuid.UUID
	SenderID     string
	ReceiverID   string
	MovementDate time.Time
	Amount       decimal.Decimal
}

// TransferRead is the persisted representation of a transfer.
type TransferRead struct {
	ID           uuid.UUID
	SenderID     string
	ReceiverID   string
	MovementDate time.Time
	Amount       decimal.Decimal
}
