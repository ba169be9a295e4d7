// Package ledger implements the account-ledger client over the ledger's
// HTTP API.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankmore/transfers/pkg/config"
	"github.com/bankmore/transfers/pkg/provider/ledger"
)

const (
	movementDebit  = "Debit"
	movementCredit = "Credit"
)

// Client calls the external account-ledger HTTP API. The bearer token is
// attached per request; the client holds no per-call state, so one instance
// is safe for concurrent requests.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a ledger client from config.
func New(cfg *config.Ledger, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		logger:  logger,
	}
}

type transactionRequest struct {
	AccountNumber string          `json:"accountNumber,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	MovementType  string          `json:"movementType"`
}

type transactionResponse struct {
	TransactionID string `json:"transactionId"`
}

type accountIDResponse struct {
	AccountID string `json:"accountId"`
}

// Debit implements ledger.Client.
func (c *Client) Debit(
	ctx context.Context,
	token string,
	amount decimal.Decimal,
	accountNumber string,
) (bool, error) {
	return c.transact(ctx, token, amount, accountNumber, movementDebit)
}

// Credit implements ledger.Client.
func (c *Client) Credit(
	ctx context.Context,
	token string,
	amount decimal.Decimal,
	accountNumber string,
) (bool, error) {
	return c.transact(ctx, token, amount, accountNumber, movementCredit)
}

// ResolveAccountID implements ledger.Client.
func (c *Client) ResolveAccountID(ctx context.Context, token, accountNumber string) (string, error) {
	url := fmt.Sprintf("%s/accounts/%s/id", c.baseURL, accountNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", bearer(token))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ledger.ErrAccountResolution, accountNumber)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ledger: account lookup returned status %d", resp.StatusCode)
	}

	var body accountIDResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("ledger: decoding account lookup response: %w", err)
	}
	if body.AccountID == "" {
		return "", fmt.Errorf("%w: %s", ledger.ErrAccountResolution, accountNumber)
	}
	return body.AccountID, nil
}

func (c *Client) transact(
	ctx context.Context,
	token string,
	amount decimal.Decimal,
	accountNumber string,
	movementType string,
) (bool, error) {
	payload, err := json.Marshal(transactionRequest{
		AccountNumber: accountNumber,
		Amount:        amount,
		MovementType:  movementType,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/transaction", bytes.NewReader(payload),
	)
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", bearer(token))

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("ledger: transaction returned status %d", resp.StatusCode)
	}

	var body transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("ledger: decoding transaction response: %w", err)
	}
	if body.TransactionID == "" {
		// The ledger accepted the request but did not perform the movement.
		c.logger.Warn("ledger returned an empty transaction id",
			"movement_type", movementType, "account_number", accountNumber)
		return false, nil
	}
	return true, nil
}

func bearer(token string) string {
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}
