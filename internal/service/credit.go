package service

import (
	"context"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// Credit refunds an amount to a card outside of any earlier transaction.
// Nothing is recorded; the gateway result is returned as is.
func (p *Processor) Credit(ctx context.Context, req models.TransactionRequest, card models.Card) (models.CreditResult, error) {
	if err := req.Validate(); err != nil {
		return models.CreditResult{}, validationError(err)
	}

	result := p.provider.Credit(ctx, req, card)
	if err := result.Validate(); err != nil {
		p.logger.Error("unexpected credit result", "error", err)
		return models.CreditResult{}, unexpectedResult("credit", err)
	}

	p.logger.Info("credit completed",
		"communication_result", result.CommunicationResult,
		"error_code", result.ErrorCode,
		"provider_unique_id", result.ProviderUniqueID,
	)
	return result, nil
}
