package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/processor/internal/gateway"
	"github.com/benx421/payment-gateway/processor/internal/models"
)

func (p *Processor) cardStorer() (gateway.CardStorer, error) {
	storer, err := gateway.AsCardStorer(p.provider)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("provider %s does not store cards", p.provider.ID()),
			Err:     err,
		}
	}
	return storer, nil
}

// gatewayCardError classifies an error from the provider's card storage.
func gatewayCardError(op string, err error) *ServiceError {
	if errors.Is(err, models.ErrValidation) {
		return validationError(err)
	}
	if errors.Is(err, gateway.ErrUnsupported) {
		return &ServiceError{Code: ErrCodeUnsupported, Message: op + " is not supported", Err: err}
	}
	return &ServiceError{
		Code:    ErrCodeGateway,
		Message: fmt.Sprintf("gateway failed to %s", op),
		Err:     err,
	}
}

// StoreCard saves card in the gateway's secure storage and then in the
// store. The returned card carries both ids and no longer holds the full
// number or card code.
func (p *Processor) StoreCard(ctx context.Context, principal models.Principal, groupName string, card models.Card) (models.Card, error) {
	storer, err := p.cardStorer()
	if err != nil {
		return card, err
	}
	if card.Number() == "" {
		return card, validationError(fmt.Errorf("%w: card number is required", models.ErrValidation))
	}

	providerUniqueID, err := storer.StoreCard(ctx, card)
	if err != nil {
		p.logger.Error("gateway failed to store card", "error", err)
		return card, gatewayCardError("store card", err)
	}
	card.ProviderID = p.provider.ID()
	card.ProviderUniqueID = providerUniqueID
	card.PrincipalName = string(principal)
	card.GroupName = groupName

	id, err := p.store.StoreCard(ctx, principal, card)
	if err != nil {
		p.logger.Error("failed to record stored card",
			"provider_unique_id", providerUniqueID,
			"error", err,
		)
		return card, persistenceError("record stored card", err)
	}
	card.ID = id
	card.Scrub()

	p.logger.Info("card stored",
		"card_id", id,
		"provider_unique_id", providerUniqueID,
		"masked_number", card.MaskedNumber(),
	)
	return card, nil
}

// UpdateCard saves the cardholder details of a stored card. A card that was
// never stored with the gateway is returned unchanged.
func (p *Processor) UpdateCard(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error) {
	if card.ProviderUniqueID == "" {
		return card, nil
	}
	storer, err := p.cardStorer()
	if err != nil {
		return card, err
	}

	if err := storer.UpdateCard(ctx, card); err != nil {
		p.logger.Error("gateway failed to update card", "card_id", card.ID, "error", err)
		return card, gatewayCardError("update card", err)
	}
	if err := p.store.UpdateCard(ctx, principal, card); err != nil {
		p.logger.Error("failed to record card update", "card_id", card.ID, "error", err)
		return card, persistenceError("record card update", err)
	}

	p.logger.Info("card updated", "card_id", card.ID)
	return card, nil
}

// UpdateCardNumberAndExpiration replaces the number, expiration and
// optionally the card code. For a stored card the gateway and store are
// updated and only the masked number is kept on the returned card; any
// other card is updated in place.
func (p *Processor) UpdateCardNumberAndExpiration(ctx context.Context, principal models.Principal, card models.Card, cardNumber string, month, year int, cardCode string) (models.Card, error) {
	if err := models.ValidateExpirationMonth(month, false); err != nil {
		return card, validationError(err)
	}
	if err := models.ValidateExpirationYear(year, false); err != nil {
		return card, validationError(err)
	}

	updated := card
	if err := updated.SetExpiration(month, year); err != nil {
		return card, validationError(err)
	}

	if card.ProviderUniqueID == "" {
		if err := updated.SetNumber(cardNumber); err != nil {
			return card, validationError(err)
		}
		if cardCode != "" {
			if err := updated.SetCardCode(cardCode); err != nil {
				return card, validationError(err)
			}
		}
		return updated, nil
	}

	cardNumber = models.NumbersOnly(cardNumber, false)
	if err := models.ValidateLuhn(cardNumber); err != nil {
		return card, validationError(err)
	}
	storer, err := p.cardStorer()
	if err != nil {
		return card, err
	}

	if err := storer.UpdateCardNumberAndExpiration(ctx, card, cardNumber, month, year, cardCode); err != nil {
		p.logger.Error("gateway failed to update card number", "card_id", card.ID, "error", err)
		return card, gatewayCardError("update card number", err)
	}
	if err := p.store.UpdateCardNumber(ctx, principal, card, cardNumber, month, year); err != nil {
		p.logger.Error("failed to record card number update", "card_id", card.ID, "error", err)
		return card, persistenceError("record card number update", err)
	}

	updated.Scrub()
	updated.SetMaskedNumber(models.MaskCardNumber(cardNumber))

	p.logger.Info("card number updated", "card_id", card.ID, "masked_number", updated.MaskedNumber())
	return updated, nil
}

// UpdateCardExpiration changes the expiration of a card, in the gateway and
// store as well when the card is stored.
func (p *Processor) UpdateCardExpiration(ctx context.Context, principal models.Principal, card models.Card, month, year int) (models.Card, error) {
	if err := models.ValidateExpirationMonth(month, false); err != nil {
		return card, validationError(err)
	}
	if err := models.ValidateExpirationYear(year, false); err != nil {
		return card, validationError(err)
	}

	updated := card
	if err := updated.SetExpiration(month, year); err != nil {
		return card, validationError(err)
	}
	if card.ProviderUniqueID == "" {
		return updated, nil
	}

	storer, err := p.cardStorer()
	if err != nil {
		return card, err
	}
	if err := storer.UpdateCardExpiration(ctx, card, month, year); err != nil {
		p.logger.Error("gateway failed to update card expiration", "card_id", card.ID, "error", err)
		return card, gatewayCardError("update card expiration", err)
	}
	if err := p.store.UpdateExpiration(ctx, principal, card, month, year); err != nil {
		p.logger.Error("failed to record card expiration update", "card_id", card.ID, "error", err)
		return card, persistenceError("record card expiration update", err)
	}

	p.logger.Info("card expiration updated", "card_id", card.ID, "expiration", updated.ExpirationDisplay())
	return updated, nil
}

// DeleteCard removes the card from the gateway's storage and then from the
// store. Either step is skipped when the card has no id for it.
func (p *Processor) DeleteCard(ctx context.Context, principal models.Principal, card models.Card) error {
	if card.ProviderUniqueID != "" {
		storer, err := p.cardStorer()
		if err != nil {
			return err
		}
		if err := storer.DeleteCard(ctx, card); err != nil {
			p.logger.Error("gateway failed to delete card", "card_id", card.ID, "error", err)
			return gatewayCardError("delete card", err)
		}
	}

	if card.ID != "" {
		if err := p.store.DeleteCard(ctx, principal, card); err != nil {
			p.logger.Error("failed to delete card record", "card_id", card.ID, "error", err)
			if errors.Is(err, models.ErrNotFound) {
				return lookupError("card", card.ID, err)
			}
			return persistenceError("delete card record", err)
		}
	}

	p.logger.Info("card deleted", "card_id", card.ID, "provider_unique_id", card.ProviderUniqueID)
	return nil
}
