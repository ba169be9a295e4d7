package idempotency

import (
	"time"

	"github.com/google/uuid"
)

// Record is the persisted representation of an idempotency record.
type Record struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestHash *string   `gorm:"type:varchar(1000);column:request_hash;uniqueIndex"`
	Result      string    `gorm:"type:varchar(16);not null;default:'none'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Record model.
func (Record) TableName() string {
	return "idempotency_records"
}
