// Package initializer builds the application dependency graph from config.
package initializer

import (
	"fmt"

	"github.com/bankmore/transfers/infra"
	infraledger "github.com/bankmore/transfers/infra/provider/ledger"
	idemrepo "github.com/bankmore/transfers/infra/repository/idempotency"
	transferrepo "github.com/bankmore/transfers/infra/repository/transfer"
	"github.com/bankmore/transfers/pkg/app"
	"github.com/bankmore/transfers/pkg/config"
	"github.com/bankmore/transfers/pkg/service/auth"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	deps.Transfers = transferrepo.New(db)
	deps.Idempotency = idemrepo.New(db)
	deps.Ledger = infraledger.New(cfg.Ledger, logger)
	deps.Decoder = auth.NewJWTDecoder(logger)

	return deps, nil
}
