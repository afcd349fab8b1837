package simulator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// StoreCard keeps the card in the simulator's vault.
func (p *Provider) StoreCard(ctx context.Context, card models.Card) (string, error) {
	if err := p.chaos.delay(ctx); err != nil {
		return "", fmt.Errorf("store card: %w", err)
	}
	if card.Number() == "" {
		return "", fmt.Errorf("store card: card number is required")
	}

	id := "card_" + uuid.NewString()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.vault[id] = &vaultCard{
		number: card.Number(),
		masked: card.MaskedNumber(),
		month:  card.ExpirationMonth(),
		year:   card.ExpirationYear(),
	}
	return id, nil
}

func (p *Provider) lookup(card models.Card) (*vaultCard, error) {
	vc, ok := p.vault[card.ProviderUniqueID]
	if !ok {
		return nil, fmt.Errorf("card %q not found in vault", card.ProviderUniqueID)
	}
	return vc, nil
}

// UpdateCard checks the card exists. The vault keeps no cardholder details.
func (p *Provider) UpdateCard(ctx context.Context, card models.Card) error {
	if err := p.chaos.delay(ctx); err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.lookup(card)
	return err
}

func (p *Provider) UpdateCardNumberAndExpiration(ctx context.Context, card models.Card, cardNumber string, month, year int, _ string) error {
	if err := p.chaos.delay(ctx); err != nil {
		return fmt.Errorf("update card number: %w", err)
	}
	if err := models.ValidateLuhn(cardNumber); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vc, err := p.lookup(card)
	if err != nil {
		return err
	}
	vc.number = cardNumber
	vc.masked = models.MaskCardNumber(cardNumber)
	vc.month, vc.year = month, year
	vc.replacement = nil
	return nil
}

func (p *Provider) UpdateCardExpiration(ctx context.Context, card models.Card, month, year int) error {
	if err := p.chaos.delay(ctx); err != nil {
		return fmt.Errorf("update card expiration: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vc, err := p.lookup(card)
	if err != nil {
		return err
	}
	vc.month, vc.year = month, year
	if vc.replacement != nil {
		vc.replacement.ReplacementExpirationMonth = 0
		vc.replacement.ReplacementExpirationYear = 0
		vc.replacement.ProviderReplacementExpiration = ""
	}
	return nil
}

func (p *Provider) DeleteCard(ctx context.Context, card models.Card) error {
	if err := p.chaos.delay(ctx); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.lookup(card); err != nil {
		return err
	}
	delete(p.vault, card.ProviderUniqueID)
	return nil
}

// TokenizedCards lists every card in the vault with any pending replacement.
func (p *Provider) TokenizedCards(ctx context.Context, _ map[string]models.Card) (map[string]models.TokenizedCard, error) {
	if err := p.chaos.delay(ctx); err != nil {
		return nil, fmt.Errorf("list tokenized cards: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cards := make(map[string]models.TokenizedCard, len(p.vault))
	for id, vc := range p.vault {
		tc := models.TokenizedCard{ProviderUniqueID: id}
		if vc.replacement != nil {
			tc = *vc.replacement
		}
		cards[id] = tc
	}
	return cards, nil
}

// Reissue simulates the issuer replacing a stored card. The new masked
// number and expiration are reported as replacements until the card is
// updated through the provider.
func (p *Provider) Reissue(providerUniqueID, cardNumber string, month, year int) error {
	if err := models.ValidateLuhn(cardNumber); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vc, ok := p.vault[providerUniqueID]
	if !ok {
		return fmt.Errorf("card %q not found in vault", providerUniqueID)
	}

	vc.number = cardNumber
	vc.masked = models.MaskCardNumber(cardNumber)
	vc.month, vc.year = month, year
	vc.replacement = &models.TokenizedCard{
		ProviderUniqueID:                providerUniqueID,
		ProviderReplacementMaskedNumber: vc.masked,
		ReplacementMaskedNumber:         vc.masked,
		ProviderReplacementExpiration:   models.ExpirationMMYY(month, year),
		ReplacementExpirationMonth:      month,
		ReplacementExpirationYear:       year,
	}
	return nil
}
