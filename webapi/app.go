// Package webapi assembles the Fiber application.
package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bankmore/transfers/pkg/app"
	"github.com/bankmore/transfers/pkg/config"
	transfersvc "github.com/bankmore/transfers/pkg/service/transfer"
	"github.com/bankmore/transfers/webapi/common"
	"github.com/bankmore/transfers/webapi/transfer"
)

// New builds the services and returns the Fiber app with all routes
// registered.
func New(deps *app.Deps, cfg *config.App) *fiber.App {
	svc := transfersvc.NewService(
		deps.Ledger,
		deps.Transfers,
		deps.Idempotency,
		deps.Decoder,
		deps.Logger,
	)

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c, "Too Many Requests", nil, "Rate limit exceeded", fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	transfer.Routes(fiberApp, svc, cfg)

	return fiberApp
}
