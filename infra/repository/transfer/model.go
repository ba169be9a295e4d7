package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is the persisted representation of a completed money movement.
type Transfer struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SenderID     string          `gorm:"type:varchar(64);not null;column:sender_account_id"`
	ReceiverID   string          `gorm:"type:varchar(64);not null;column:receiver_account_id"`
	MovementDate time.Time       `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the Transfer model.
func (Transfer) TableName() string {
	return "transfers"
}
