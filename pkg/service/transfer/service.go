// Package transfer orchestrates the transfer saga: debit the sender, credit
// the receiver, compensate on partial failure, and persist the completed
// transfer.
//
// The steps are strictly ordered and never parallelized; the credit must not
// be attempted before the debit succeeds. Atomicity across the external
// ledger is approximated by a single-shot compensation, not guaranteed.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	domainidem "github.com/bankmore/transfers/pkg/domain/idempotency"
	domaintransfer "github.com/bankmore/transfers/pkg/domain/transfer"
	"github.com/bankmore/transfers/pkg/dto"
	"github.com/bankmore/transfers/pkg/provider/ledger"
	idemrepo "github.com/bankmore/transfers/pkg/repository/idempotency"
	transferrepo "github.com/bankmore/transfers/pkg/repository/transfer"
	"github.com/bankmore/transfers/pkg/service/auth"
)

const (
	reasonTokenRequired     = "Authentication token must be provided."
	reasonAmountNotPositive = "Transfer amount must be greater than zero."
	reasonReceiverRequired  = "Destination account number must be provided."

	reversalPerformed = "reversal_performed"
)

// Command is the unit of work submitted to the saga.
type Command struct {
	Token          string
	ReceiverNumber string
	Amount         decimal.Decimal
}

// Service executes the debit-credit-compensate-persist protocol.
type Service struct {
	ledger    ledger.Client
	transfers transferrepo.Repository
	idem      idemrepo.Repository
	decoder   auth.TokenDecoder
	logger    *slog.Logger
	inflight  singleflight.Group
}

// NewService creates a transfer saga service.
func NewService(
	ledgerClient ledger.Client,
	transfers transferrepo.Repository,
	idem idemrepo.Repository,
	decoder auth.TokenDecoder,
	logger *slog.Logger,
) *Service {
	return &Service{
		ledger:    ledgerClient,
		transfers: transfers,
		idem:      idem,
		decoder:   decoder,
		logger:    logger,
	}
}

// Execute runs the saga for one command. Business failures, including every
// external-call failure, come back as a failed Result with a classified
// reason; the returned error is reserved for context cancellation, which must
// stay distinguishable from ordinary failures.
func (s *Service) Execute(ctx context.Context, cmd Command) (*Result, error) {
	if reason := validate(cmd); reason != "" {
		return Failure(reason), nil
	}

	claims, err := s.decoder.Decode(cmd.Token)
	if err != nil {
		s.logger.Error("Execute failed: token decode", "error", err)
		return Failure(reasonTokenRequired), nil
	}

	fingerprint, err := domainidem.HashRequest(fmt.Sprintf(
		"%s|%s|%s", claims.AccountNumber, cmd.ReceiverNumber, cmd.Amount.String(),
	))
	if err != nil {
		return Failure(reasonReceiverRequired), nil
	}

	// Concurrent submissions of the same fingerprint share one execution;
	// the durable idempotency record covers replays after completion.
	v, err, _ := s.inflight.Do(fingerprint.Value(), func() (any, error) {
		return s.run(ctx, cmd, claims, fingerprint)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// Get returns a persisted transfer by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.TransferRead, error) {
	return s.transfers.Get(ctx, id)
}

func (s *Service) run(
	ctx context.Context,
	cmd Command,
	claims *auth.Claims,
	fingerprint *domainidem.HashedRequest,
) (*Result, error) {
	log := s.logger.With(
		"sender_number", claims.AccountNumber,
		"receiver_number", cmd.ReceiverNumber,
		"amount", cmd.Amount.String(),
	)

	record, replay := s.checkOrCreateRecord(ctx, fingerprint, log)
	if replay != nil {
		return replay, nil
	}

	// Step 1: debit the sender. Nothing succeeded yet, so no compensation
	// is needed on failure.
	ok, err := s.ledger.Debit(ctx, cmd.Token, cmd.Amount, "")
	if err != nil {
		if canceled(err) {
			return nil, err
		}
		log.Error("debit failed", "error", err)
		s.recordOutcome(ctx, record, domainidem.StatusFailed, log)
		return Failure("debit_failed: " + err.Error()), nil
	}
	if !ok {
		log.Error("debit rejected by ledger")
		s.recordOutcome(ctx, record, domainidem.StatusFailed, log)
		return Failure("debit_failed: the ledger rejected the debit."), nil
	}

	// Step 2: credit the receiver. From here on a failure leaves the sender
	// debited, so exactly one compensation is attempted.
	ok, err = s.ledger.Credit(ctx, cmd.Token, cmd.Amount, cmd.ReceiverNumber)
	if err != nil {
		if canceled(err) {
			// The debit already happened; compensate on a detached
			// context before surfacing the cancellation.
			reversal := s.compensate(context.WithoutCancel(ctx), cmd.Token, cmd.Amount, log)
			log.Warn("credit canceled after successful debit", "reversal", reversal)
			return nil, err
		}
		reversal := s.compensate(ctx, cmd.Token, cmd.Amount, log)
		log.Error("credit failed", "error", err, "reversal", reversal)
		s.recordOutcome(ctx, record, domainidem.StatusFailed, log)
		return Failure(fmt.Sprintf("credit_failed: %s. %s", err.Error(), reversal)), nil
	}
	if !ok {
		reversal := s.compensate(ctx, cmd.Token, cmd.Amount, log)
		log.Error("credit rejected by ledger", "reversal", reversal)
		s.recordOutcome(ctx, record, domainidem.StatusFailed, log)
		return Failure("credit_failed: the ledger rejected the credit. " + reversal), nil
	}

	// Step 3: both movements succeeded; resolve the receiver's durable id
	// and persist the record. Failures past this point are
	// reconciliation-needed states, never retried automatically.
	result, err := s.persist(ctx, cmd, claims, log)
	if err != nil {
		return nil, err
	}
	if result.IsSuccess {
		s.recordOutcome(ctx, record, domainidem.StatusDone, log)
	} else {
		s.recordOutcome(ctx, record, domainidem.StatusFailed, log)
	}
	return result, nil
}

func (s *Service) persist(
	ctx context.Context,
	cmd Command,
	claims *auth.Claims,
	log *slog.Logger,
) (*Result, error) {
	receiverID, err := s.ledger.ResolveAccountID(ctx, cmd.Token, cmd.ReceiverNumber)
	if err != nil {
		if canceled(err) {
			log.Warn("account resolution canceled after funds moved", "reconciliation_required", true)
			return nil, err
		}
		log.Error("account resolution failed after funds moved",
			"error", err, "reconciliation_required", true)
		return Failure("persistence_failed: " + err.Error()), nil
	}

	t, err := domaintransfer.New(claims.Subject, receiverID, cmd.Amount)
	if err != nil {
		log.Error("transfer construction failed", "error", err, "reconciliation_required", true)
		return Failure("persistence_failed: " + err.Error()), nil
	}

	err = s.transfers.Create(ctx, dto.TransferCreate{
		ID:           t.ID,
		SenderID:     t.SenderID,
		ReceiverID:   t.ReceiverID,
		MovementDate: t.MovementDate,
		Amount:       t.Amount,
	})
	if err != nil {
		if canceled(err) {
			log.Warn("persist canceled after funds moved", "reconciliation_required", true)
			return nil, err
		}
		log.Error("transfer persistence failed after funds moved",
			"error", err, "reconciliation_required", true)
		return Failure("persistence_failed: " + err.Error()), nil
	}

	eventID := uuid.New()
	log.Info("transfer completed", "transfer_id", t.ID, "event_id", eventID)
	return Success(eventID), nil
}

// compensate credits the debited funds back to the sender. The reversal is
// expressed as a credit, never a second debit, because the original debit
// already happened. It is attempted at most once and never retried.
func (s *Service) compensate(
	ctx context.Context,
	token string,
	amount decimal.Decimal,
	log *slog.Logger,
) string {
	ok, err := s.ledger.Credit(ctx, token, amount, "")
	if err != nil {
		log.Error("reversal failed; sender debited with no credit applied",
			"error", err, "reconciliation_required", true)
		return "reversal_failed: " + err.Error()
	}
	if !ok {
		log.Error("reversal rejected by ledger; sender debited with no credit applied",
			"reconciliation_required", true)
		return "reversal_failed: the ledger rejected the reversal credit."
	}
	return reversalPerformed
}

// checkOrCreateRecord consults the idempotency store before any money moves.
// A completed record short-circuits the saga with a replayed success; the
// store being unreachable degrades to running without the gate.
func (s *Service) checkOrCreateRecord(
	ctx context.Context,
	fingerprint *domainidem.HashedRequest,
	log *slog.Logger,
) (*domainidem.Record, *Result) {
	existing, err := s.idem.GetByRequest(ctx, fingerprint.Value())
	switch {
	case err == nil:
		if existing.Result == string(domainidem.StatusDone) {
			log.Info("replaying completed transfer", "idempotency_id", existing.ID)
			return nil, Success(uuid.New())
		}
		// A prior attempt ended in failure or never recorded an outcome;
		// reuse the record and run the saga again.
		hash, hashErr := domainidem.LoadHashedRequest(fingerprint.Value())
		if hashErr != nil {
			return nil, Failure(reasonReceiverRequired)
		}
		return domainidem.Load(existing.ID, hash, domainidem.Status(existing.Result)), nil
	case errors.Is(err, idemrepo.ErrNotFound):
		record := domainidem.New(fingerprint)
		hash := fingerprint.Value()
		createErr := s.idem.Create(ctx, dto.IdempotencyCreate{
			ID:          record.ID(),
			RequestHash: &hash,
			Result:      string(record.Result()),
		})
		if createErr != nil {
			log.Warn("idempotency record creation failed; proceeding without gate", "error", createErr)
			return nil, nil
		}
		return record, nil
	default:
		log.Warn("idempotency lookup failed; proceeding without gate", "error", err)
		return nil, nil
	}
}

func (s *Service) recordOutcome(
	ctx context.Context,
	record *domainidem.Record,
	status domainidem.Status,
	log *slog.Logger,
) {
	if record == nil {
		return
	}
	record.SetResult(status)
	err := s.idem.Update(context.WithoutCancel(ctx), record.ID(), dto.IdempotencyUpdate{
		Result: string(status),
	})
	if err != nil {
		log.Warn("idempotency outcome update failed",
			"idempotency_id", record.ID(), "status", status, "error", err)
	}
}

func validate(cmd Command) string {
	if cmd.Token == "" {
		return reasonTokenRequired
	}
	if !cmd.Amount.IsPositive() {
		return reasonAmountNotPositive
	}
	if cmd.ReceiverNumber == "" {
		return reasonReceiverRequired
	}
	return ""
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
