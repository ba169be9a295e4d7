// Package auth extracts caller identity from bearer tokens. Signature and
// expiry validation happen in the HTTP middleware; this package only reads
// claims out of tokens that already passed it.
package auth

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when the token cannot be parsed.
	ErrTokenMalformed = errors.New("authentication token is malformed")

	// ErrClaimsMissing is returned when the token lacks the identity or
	// account-number claim.
	ErrClaimsMissing = errors.New("authentication token is missing required claims")
)

// Claims is the caller identity carried by a bearer token.
type Claims struct {
	Subject       string
	AccountNumber string
}

// TokenDecoder turns an opaque bearer token into caller claims. The saga
// depends on this capability only, never on a concrete token format.
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

// JWTDecoder reads the "user_id" and "account_number" claims from a JWT.
type JWTDecoder struct {
	logger *slog.Logger
}

// NewJWTDecoder creates a JWTDecoder.
func NewJWTDecoder(logger *slog.Logger) *JWTDecoder {
	return &JWTDecoder{logger: logger}
}

// Decode implements TokenDecoder.
func (d *JWTDecoder) Decode(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		d.logger.Error("token parse failed", "error", err)
		return nil, ErrTokenMalformed
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}
	subject, ok := claims["user_id"].(string)
	if !ok || subject == "" {
		return nil, ErrClaimsMissing
	}
	accountNumber, ok := claims["account_number"].(string)
	if !ok || accountNumber == "" {
		return nil, ErrClaimsMissing
	}
	return &Claims{Subject: subject, AccountNumber: accountNumber}, nil
}
