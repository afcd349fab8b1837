package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// Sale authorizes and captures in one gateway call.
//
// The transaction is recorded as PROCESSING before the gateway is contacted
// and updated with the outcome afterwards, so an interrupted sale leaves a
// PROCESSING record to reconcile by hand. If card is a stored card and the
// gateway reports a replacement number or expiration, the replacement is
// saved before the sale is marked complete.
func (p *Processor) Sale(ctx context.Context, principal models.Principal, groupName string, req models.TransactionRequest, card models.Card) (*models.Transaction, error) {
	txn, err := p.begin(ctx, principal, groupName, req, card)
	if err != nil {
		return nil, err
	}

	result := p.provider.Sale(ctx, req, card)
	completed := p.now()

	auth := result.Authorization.Clone()
	capture := result.Capture
	txn.AuthorizationResult = &auth
	txn.CaptureTime = completed
	txn.CapturePrincipal = principal
	txn.CaptureResult = &capture

	status, err := models.SaleStatus(auth.CommunicationResult, auth.ApprovalResult)
	if err == nil {
		err = errors.Join(auth.Validate(), capture.Validate())
	}
	if err != nil {
		p.logger.Error("unexpected sale result", "transaction_id", txn.ID, "error", err)
		return nil, unexpectedResult("sale", err)
	}
	txn.Status = status

	if err := p.applyReplacements(ctx, principal, txn, auth.TokenizedCard); err != nil {
		return txn, err
	}

	if err := p.store.SaleCompleted(ctx, principal, txn); err != nil {
		p.logger.Error("failed to record sale", "transaction_id", txn.ID, "status", txn.Status, "error", err)
		return txn, persistenceError("record sale", err)
	}

	p.logger.Info("sale completed",
		"transaction_id", txn.ID,
		"status", txn.Status,
		"communication_result", auth.CommunicationResult,
		"approval_result", auth.ApprovalResult,
	)
	return txn, nil
}

// Authorize reserves funds for a later Capture. It follows the same
// sequence as Sale.
func (p *Processor) Authorize(ctx context.Context, principal models.Principal, groupName string, req models.TransactionRequest, card models.Card) (*models.Transaction, error) {
	txn, err := p.begin(ctx, principal, groupName, req, card)
	if err != nil {
		return nil, err
	}

	auth := p.provider.Authorize(ctx, req, card).Clone()
	txn.AuthorizationResult = &auth

	status, err := models.AuthorizeStatus(auth.CommunicationResult, auth.ApprovalResult)
	if err == nil {
		err = auth.Validate()
	}
	if err != nil {
		p.logger.Error("unexpected authorization result", "transaction_id", txn.ID, "error", err)
		return nil, unexpectedResult("authorization", err)
	}
	txn.Status = status

	if err := p.applyReplacements(ctx, principal, txn, auth.TokenizedCard); err != nil {
		return txn, err
	}

	if err := p.store.AuthorizeCompleted(ctx, principal, txn); err != nil {
		p.logger.Error("failed to record authorization", "transaction_id", txn.ID, "status", txn.Status, "error", err)
		return txn, persistenceError("record authorization", err)
	}

	p.logger.Info("authorization completed",
		"transaction_id", txn.ID,
		"status", txn.Status,
		"communication_result", auth.CommunicationResult,
		"approval_result", auth.ApprovalResult,
	)
	return txn, nil
}

// begin validates the request and records the PROCESSING transaction.
func (p *Processor) begin(ctx context.Context, principal models.Principal, groupName string, req models.TransactionRequest, card models.Card) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	started := p.now()
	txn := &models.Transaction{
		ProviderID:             p.provider.ID(),
		GroupName:              groupName,
		Request:                req,
		Card:                   card.WithoutSecrets(),
		AuthorizationTime:      started,
		AuthorizationPrincipal: principal,
		Status:                 models.TransactionStatusProcessing,
	}

	id, err := p.store.InsertTransaction(ctx, principal, groupName, txn)
	if err != nil {
		p.logger.Error("failed to record transaction", "error", err)
		return nil, persistenceError("record transaction", err)
	}
	txn.ID = id
	return txn, nil
}

// applyReplacements saves gateway supplied replacement card data for a stored
// card and mirrors it onto the transaction's card snapshot.
func (p *Processor) applyReplacements(ctx context.Context, principal models.Principal, txn *models.Transaction, tokenized *models.TokenizedCard) error {
	if txn.Card.ID == "" || tokenized == nil {
		return nil
	}

	if tokenized.HasReplacementMaskedNumber() {
		txn.Card.SetMaskedNumber(tokenized.ReplacementMaskedNumber)
		if err := p.store.UpdateCard(ctx, principal, txn.Card); err != nil {
			p.logger.Error("failed to save replacement masked number", "card_id", txn.Card.ID, "error", err)
			return persistenceError("save replacement masked number", err)
		}
		p.logger.Info("replacement masked number saved", "card_id", txn.Card.ID, "transaction_id", txn.ID)
	}

	if tokenized.HasReplacementExpiration() {
		month, year := tokenized.ReplacementExpirationMonth, tokenized.ReplacementExpirationYear
		if err := txn.Card.SetExpiration(month, year); err != nil {
			p.logger.Warn("gateway sent an invalid replacement expiration",
				"card_id", txn.Card.ID,
				"expiration", fmt.Sprintf("%02d/%d", month, year),
				"error", err,
			)
			return nil
		}
		if err := p.store.UpdateExpiration(ctx, principal, txn.Card, month, year); err != nil {
			p.logger.Error("failed to save replacement expiration", "card_id", txn.Card.ID, "error", err)
			return persistenceError("save replacement expiration", err)
		}
		p.logger.Info("replacement expiration saved", "card_id", txn.Card.ID, "transaction_id", txn.ID)
	}
	return nil
}
