// Package transfer exposes the transfer endpoints.
//
// Routes:
//   - POST /transfer     : Move funds from the caller's account to a receiver.
//   - GET  /transfer/:id : Fetch a persisted transfer record.
package transfer

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankmore/transfers/pkg/config"
	"github.com/bankmore/transfers/pkg/middleware"
	transferrepo "github.com/bankmore/transfers/pkg/repository/transfer"
	transfersvc "github.com/bankmore/transfers/pkg/service/transfer"
	"github.com/bankmore/transfers/webapi/common"
)

// Routes registers the transfer endpoints. Both require a valid JWT.
func Routes(app *fiber.App, svc *transfersvc.Service, cfg *config.App) {
	app.Post("/transfer", middleware.JwtProtected(cfg.Jwt), CreateTransfer(svc))
	app.Get("/transfer/:id", middleware.JwtProtected(cfg.Jwt), GetTransfer(svc))
}

// CreateTransfer handles POST /transfer: 204 on success, 400 with
// {error: reason} on saga failure, 403 when the token lacks the required
// claims.
func CreateTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return c.SendStatus(fiber.StatusForbidden)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.SendStatus(fiber.StatusForbidden)
		}
		subject, _ := claims["user_id"].(string)
		accountNumber, _ := claims["account_number"].(string)
		if accountNumber == "" || subject == "" {
			return c.SendStatus(fiber.StatusForbidden)
		}
		if _, err := uuid.Parse(subject); err != nil {
			return c.SendStatus(fiber.StatusForbidden)
		}

		input, err := common.BindAndValidate[CreateTransferRequest](c)
		if input == nil {
			return err // error response already written
		}

		raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		result, err := svc.Execute(c.UserContext(), transfersvc.Command{
			Token:          raw,
			ReceiverNumber: input.ReceiverNumber,
			Amount:         decimal.NewFromFloat(input.Amount),
		})
		if err != nil {
			// Cancellation or another non-business error; let the app
			// error handler answer.
			return err
		}
		if !result.IsSuccess {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": result.Error})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetTransfer handles GET /transfer/:id.
func GetTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transfer id", err, fiber.StatusBadRequest)
		}
		record, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, transferrepo.ErrNotFound) {
				return common.ProblemDetailsJSON(c, "Transfer not found", err, fiber.StatusNotFound)
			}
			return common.ProblemDetailsJSON(c, "Failed to fetch transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer found", TransferResponse{
			ID:           record.ID.String(),
			SenderID:     record.SenderID,
			ReceiverID:   record.ReceiverID,
			MovementDate: record.MovementDate,
			Amount:       record.Amount.String(),
		})
	}
}
