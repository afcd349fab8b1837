package service

import (
	"context"
	"fmt"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// Capture settles an authorized transaction. The input is not modified; the
// updated transaction is returned with its CaptureResult set.
func (p *Processor) Capture(ctx context.Context, principal models.Principal, txn *models.Transaction) (*models.Transaction, error) {
	if txn == nil {
		return nil, &ServiceError{Code: ErrCodeInvalidState, Message: "transaction is required"}
	}
	if txn.Status != models.TransactionStatusAuthorized {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidState,
			Message: fmt.Sprintf("cannot capture a transaction in status %s", txn.Status),
		}
	}
	if txn.AuthorizationResult == nil || txn.AuthorizationResult.ProviderUniqueID == "" {
		return nil, &ServiceError{
			Code:    ErrCodeProviderUniqueIDRequired,
			Message: "authorization has no gateway transaction id",
		}
	}

	updated := txn.Clone()
	result := p.provider.Capture(ctx, *updated.AuthorizationResult)

	status, err := models.CaptureStatus(result.CommunicationResult)
	if err == nil {
		err = result.Validate()
	}
	if err != nil {
		p.logger.Error("unexpected capture result", "transaction_id", txn.ID, "error", err)
		return nil, unexpectedResult("capture", err)
	}

	updated.CaptureTime = p.now()
	updated.CapturePrincipal = principal
	updated.CaptureResult = &result
	updated.Status = status

	if err := p.store.SaleCompleted(ctx, principal, updated); err != nil {
		p.logger.Error("failed to record capture", "transaction_id", updated.ID, "status", updated.Status, "error", err)
		return updated, persistenceError("record capture", err)
	}

	p.logger.Info("capture completed",
		"transaction_id", updated.ID,
		"status", updated.Status,
		"communication_result", result.CommunicationResult,
		"error_code", result.ErrorCode,
	)
	return updated, nil
}
