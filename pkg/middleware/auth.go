// Package middleware provides the HTTP middleware shared across routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/bankmore/transfers/pkg/config"
	"github.com/bankmore/transfers/webapi/common"
)

// JwtProtected validates the bearer token's signature and expiry and stores
// the parsed token in c.Locals("user"). Claim extraction stays with the
// handlers and the token decoder.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return common.ProblemDetailsJSON(
			c, "Missing or malformed JWT", err, fiber.StatusBadRequest,
		)
	}
	return common.ProblemDetailsJSON(
		c, "Invalid or expired JWT", err, fiber.StatusUnauthorized,
	)
}
