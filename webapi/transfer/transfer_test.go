package transfer_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bankmore/transfers/internal/fixtures/mocks"
	"github.com/bankmore/transfers/pkg/config"
	"github.com/bankmore/transfers/pkg/dto"
	idemrepo "github.com/bankmore/transfers/pkg/repository/idempotency"
	transferrepo "github.com/bankmore/transfers/pkg/repository/transfer"
	"github.com/bankmore/transfers/pkg/service/auth"
	transfersvc "github.com/bankmore/transfers/pkg/service/transfer"
	"github.com/bankmore/transfers/webapi/transfer"
)

const testSecret = "test-secret"

type webFixture struct {
	app       *fiber.App
	ledger    *mocks.LedgerClient
	transfers *mocks.TransferRepository
	idem      *mocks.IdempotencyRepository
	decoder   *mocks.TokenDecoder
	senderID  string
}

func newWebFixture(t *testing.T) *webFixture {
	f := &webFixture{
		ledger:    mocks.NewLedgerClient(t),
		transfers: mocks.NewTransferRepository(t),
		idem:      mocks.NewIdempotencyRepository(t),
		decoder:   mocks.NewTokenDecoder(t),
		senderID:  uuid.New().String(),
	}
	svc := transfersvc.NewService(f.ledger, f.transfers, f.idem, f.decoder, slog.Default())
	f.app = fiber.New()
	transfer.Routes(f.app, svc, &config.App{Jwt: &config.Jwt{Secret: testSecret}})
	return f
}

func (f *webFixture) signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (f *webFixture) validToken(t *testing.T) string {
	t.Helper()
	return f.signedToken(t, jwt.MapClaims{
		"user_id":        f.senderID,
		"account_number": "000001",
	})
}

func (f *webFixture) postTransfer(t *testing.T, token string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/transfer", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (f *webFixture) expectSaga(token string) {
	f.decoder.On("Decode", token).Return(&auth.Claims{
		Subject:       f.senderID,
		AccountNumber: "000001",
	}, nil)
	f.idem.On("GetByRequest", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, idemrepo.ErrNotFound).Once()
	f.idem.On("Create", mock.Anything, mock.AnythingOfType("dto.IdempotencyCreate")).
		Return(nil).Once()
	f.idem.On("Update", mock.Anything, mock.AnythingOfType("uuid.UUID"),
		mock.AnythingOfType("dto.IdempotencyUpdate")).Return(nil).Once()
}

func TestCreateTransfer_MissingToken(t *testing.T) {
	f := newWebFixture(t)

	resp := f.postTransfer(t, "", fiber.Map{"receiver_number": "000002", "amount": 10})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateTransfer_BadSignature(t *testing.T) {
	f := newWebFixture(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":        f.senderID,
		"account_number": "000001",
		"exp":            time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	resp := f.postTransfer(t, token, fiber.Map{"receiver_number": "000002", "amount": 10})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateTransfer_MissingClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no account number", jwt.MapClaims{"user_id": uuid.New().String()}},
		{"no user id", jwt.MapClaims{"account_number": "000001"}},
		{"non-uuid user id", jwt.MapClaims{"user_id": "not-a-uuid", "account_number": "000001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWebFixture(t)
			token := f.signedToken(t, tt.claims)

			resp := f.postTransfer(t, token, fiber.Map{"receiver_number": "000002", "amount": 10})

			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestCreateTransfer_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing receiver", fiber.Map{"amount": 10}},
		{"missing amount", fiber.Map{"receiver_number": "000002"}},
		{"negative amount", fiber.Map{"receiver_number": "000002", "amount": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWebFixture(t)

			resp := f.postTransfer(t, f.validToken(t), tt.body)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Contains(t,
				resp.Header.Get(fiber.HeaderContentType), "application/problem+json")
		})
	}
}

func TestCreateTransfer_Success(t *testing.T) {
	f := newWebFixture(t)
	token := f.validToken(t)
	f.expectSaga(token)
	f.ledger.On("Debit", mock.Anything, token, mock.Anything, "").Return(true, nil).Once()
	f.ledger.On("Credit", mock.Anything, token, mock.Anything, "000002").Return(true, nil).Once()
	f.ledger.On("ResolveAccountID", mock.Anything, token, "000002").
		Return("uuid-receiver", nil).Once()
	f.transfers.On("Create", mock.Anything, mock.AnythingOfType("dto.TransferCreate")).
		Return(nil).Once()

	resp := f.postTransfer(t, token, fiber.Map{"receiver_number": "000002", "amount": 10.5})

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestCreateTransfer_SagaFailure(t *testing.T) {
	f := newWebFixture(t)
	token := f.validToken(t)
	f.expectSaga(token)
	f.ledger.On("Debit", mock.Anything, token, mock.Anything, "").
		Return(false, errors.New("connection refused")).Once()

	resp := f.postTransfer(t, token, fiber.Map{"receiver_number": "000002", "amount": 10})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "debit_failed: connection refused", body["error"])
}

func TestGetTransfer(t *testing.T) {
	f := newWebFixture(t)
	id := uuid.New()
	f.transfers.On("Get", mock.Anything, id).Return(&dto.TransferRead{
		ID:           id,
		SenderID:     f.senderID,
		ReceiverID:   "uuid-receiver",
		MovementDate: time.Now().UTC(),
		Amount:       decimal.NewFromFloat(10.5),
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/transfer/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+f.validToken(t))
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Data transfer.TransferResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.Data.ID)
	assert.Equal(t, "10.5", body.Data.Amount)
}

func TestGetTransfer_NotFound(t *testing.T) {
	f := newWebFixture(t)
	id := uuid.New()
	f.transfers.On("Get", mock.Anything, id).
		Return(nil, fmt.Errorf("%w: %s", transferrepo.ErrNotFound, id)).Once()

	req := httptest.NewRequest(http.MethodGet, "/transfer/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+f.validToken(t))
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetTransfer_InvalidID(t *testing.T) {
	f := newWebFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/transfer/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+f.validToken(t))
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
