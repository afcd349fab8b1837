// Package service runs card transactions through a gateway provider and
// keeps the store in step with what the gateway reported.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/payment-gateway/processor/internal/gateway"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/repository"
)

// Processor orchestrates one gateway provider and one store.
//
// Gateway outcomes, including declines and communication failures, are
// returned in the transaction and never as errors. Errors are reserved for
// validation, precondition and persistence failures. A persistence failure
// still returns the transaction as the gateway left it so that the caller
// can retry the write with RetryCompletion without contacting the gateway
// again.
//
// Processor holds no locks; the store serializes updates to a record.
type Processor struct {
	provider gateway.Provider
	store    repository.Store
	logger   *slog.Logger
	now      func() time.Time
}

// NewProcessor creates a new Processor
func NewProcessor(provider gateway.Provider, store repository.Store, logger *slog.Logger) *Processor {
	return &Processor{
		provider: provider,
		store:    store,
		logger:   logger.With("provider_id", provider.ID()),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetTransaction loads a stored transaction.
func (p *Processor) GetTransaction(ctx context.Context, principal models.Principal, id string) (*models.Transaction, error) {
	txn, err := p.store.GetTransaction(ctx, principal, id)
	if err != nil {
		return nil, lookupError("transaction", id, err)
	}
	return txn, nil
}

// GetCard loads a stored card.
func (p *Processor) GetCard(ctx context.Context, principal models.Principal, id string) (models.Card, error) {
	card, err := p.store.GetCard(ctx, principal, id)
	if err != nil {
		return models.Card{}, lookupError("card", id, err)
	}
	return card, nil
}

func lookupError(kind, id string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return &ServiceError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("%s %s not found", kind, id),
			Err:     err,
		}
	}
	return persistenceError("load "+kind, err)
}

// RetryCompletion repeats the final store write for a transaction whose
// completion could not be saved. The gateway is not contacted.
func (p *Processor) RetryCompletion(ctx context.Context, principal models.Principal, txn *models.Transaction) error {
	if txn == nil || txn.ID == "" {
		return &ServiceError{
			Code:    ErrCodeInvalidState,
			Message: "transaction has not been recorded",
		}
	}

	var (
		err error
		op  string
	)
	switch {
	case txn.Status == models.TransactionStatusProcessing:
		return &ServiceError{
			Code:    ErrCodeInvalidState,
			Message: "transaction is still processing; it has no gateway outcome to record",
		}
	case txn.VoidResult != nil:
		op = "record void"
		err = p.store.VoidCompleted(ctx, principal, txn)
	case txn.CaptureResult != nil:
		op = "record sale"
		err = p.store.SaleCompleted(ctx, principal, txn)
	case txn.AuthorizationResult != nil:
		op = "record authorization"
		err = p.store.AuthorizeCompleted(ctx, principal, txn)
	default:
		return &ServiceError{
			Code:    ErrCodeInvalidState,
			Message: fmt.Sprintf("transaction in status %s has no result to record", txn.Status),
		}
	}

	if err != nil {
		p.logger.Error("retrying completion failed", "transaction_id", txn.ID, "error", err)
		return persistenceError(op, err)
	}
	p.logger.Info("completion recorded on retry", "transaction_id", txn.ID, "status", txn.Status)
	return nil
}
