package transfer

import "time"

// CreateTransferRequest is the body of POST /transfer.
type CreateTransferRequest struct {
	ReceiverNumber string  `json:"receiver_number" validate:"required"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
}

// TransferResponse is the API representation of a persisted transfer.
type TransferResponse struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_account_id"`
	ReceiverID   string    `json:"receiver_account_id"`
	MovementDate time.Time `json:"movement_date"`
	Amount       string    `json:"amount"`
}
