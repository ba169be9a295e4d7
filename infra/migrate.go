package infra

import (
	"gorm.io/gorm"

	idemmodel "github.com/bankmore/transfers/infra/repository/idempotency"
	transfermodel "github.com/bankmore/transfers/infra/repository/transfer"
)

// Migrate creates or updates the persisted schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&transfermodel.Transfer{},
		&idemmodel.Record{},
	)
}
