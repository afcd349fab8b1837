package service

import (
	"context"
	"fmt"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// Void cancels an AUTHORIZED, CAPTURED or HOLD transaction. The void result
// is recorded whatever the outcome; only a successful void moves the status
// to VOID. The input is not modified.
func (p *Processor) Void(ctx context.Context, principal models.Principal, txn *models.Transaction) (*models.Transaction, error) {
	if txn == nil {
		return nil, &ServiceError{Code: ErrCodeInvalidState, Message: "transaction is required"}
	}
	if !txn.Status.Voidable() {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidState,
			Message: fmt.Sprintf("cannot void a transaction in status %s", txn.Status),
		}
	}
	if txn.AuthorizationResult == nil || txn.AuthorizationResult.ProviderUniqueID == "" {
		return nil, &ServiceError{
			Code:    ErrCodeProviderUniqueIDRequired,
			Message: "authorization has no gateway transaction id",
		}
	}

	updated := txn.Clone()
	result := p.provider.Void(ctx, txn.Clone())
	if err := result.Validate(); err != nil {
		p.logger.Error("unexpected void result", "transaction_id", txn.ID, "error", err)
		return nil, unexpectedResult("void", err)
	}

	updated.VoidTime = p.now()
	updated.VoidPrincipal = principal
	updated.VoidResult = &result
	if result.CommunicationResult == models.CommunicationSuccess {
		updated.Status = models.TransactionStatusVoid
	}

	if err := p.store.VoidCompleted(ctx, principal, updated); err != nil {
		p.logger.Error("failed to record void", "transaction_id", updated.ID, "status", updated.Status, "error", err)
		return updated, persistenceError("record void", err)
	}

	p.logger.Info("void completed",
		"transaction_id", updated.ID,
		"status", updated.Status,
		"communication_result", result.CommunicationResult,
		"error_code", result.ErrorCode,
	)
	return updated, nil
}
