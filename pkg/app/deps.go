// Package app holds the assembled application dependencies.
package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/bankmore/transfers/pkg/provider/ledger"
	idemrepo "github.com/bankmore/transfers/pkg/repository/idempotency"
	transferrepo "github.com/bankmore/transfers/pkg/repository/transfer"
	"github.com/bankmore/transfers/pkg/service/auth"
)

// Deps carries the concrete collaborators the web layer is built from.
type Deps struct {
	Logger      *slog.Logger
	DB          *gorm.DB
	Transfers   transferrepo.Repository
	Idempotency idemrepo.Repository
	Ledger      ledger.Client
	Decoder     auth.TokenDecoder
}
