package service

import (
	"context"
	"errors"
	"sort"

	"github.com/benx421/payment-gateway/processor/internal/gateway"
	"github.com/benx421/payment-gateway/processor/internal/models"
)

// ReplacementKind names the part of a card a replacement changes.
type ReplacementKind string

const (
	ReplaceMaskedNumber ReplacementKind = "masked_number"
	ReplaceExpiration   ReplacementKind = "expiration"
)

// CardReplacement is one change copied, or to be copied, from the gateway
// onto a stored card.
type CardReplacement struct {
	CardID           string          `json:"cardId"`
	ProviderUniqueID string          `json:"providerUniqueId"`
	Kind             ReplacementKind `json:"kind"`
	From             string          `json:"from"`
	To               string          `json:"to"`
}

// SyncReport describes one SynchronizeStoredCards run. A dry run reports the
// same replacements without saving them.
type SyncReport struct {
	ProviderID string
	// Supported is false when the provider cannot list its cards; nothing
	// else is filled in then.
	Supported      bool
	DryRun         bool
	PersistedCount int
	TokenizedCount int
	Replacements   []CardReplacement
	// NotTokenized are stored cards the gateway no longer reports.
	NotTokenized []models.Card
	// NotPersisted are gateway cards with no stored counterpart.
	NotPersisted []models.TokenizedCard
}

// SynchronizeStoredCards copies replacement masked numbers and expirations
// reported by the gateway onto the matching stored cards. Cards present on
// only one side are reported, not treated as errors: the gateway and the
// store are maintained independently.
func (p *Processor) SynchronizeStoredCards(ctx context.Context, principal models.Principal, dryRun bool) (*SyncReport, error) {
	providerID := p.provider.ID()
	report := &SyncReport{
		ProviderID:   providerID,
		DryRun:       dryRun,
		Replacements: []CardReplacement{},
		NotTokenized: []models.Card{},
		NotPersisted: []models.TokenizedCard{},
	}

	lister, err := gateway.AsTokenizedCardLister(p.provider)
	if errors.Is(err, gateway.ErrUnsupported) {
		p.logger.Info("stored card synchronization not supported; skipping")
		return report, nil
	}
	report.Supported = true

	persisted, err := p.store.GetCardsByProvider(ctx, principal, providerID)
	if err != nil {
		return nil, persistenceError("load stored cards", err)
	}
	report.PersistedCount = len(persisted)
	p.logger.Info("synchronizing stored cards", "persisted", len(persisted), "dry_run", dryRun)

	tokenized, err := lister.TokenizedCards(ctx, persisted)
	if err != nil {
		p.logger.Error("gateway failed to list tokenized cards", "error", err)
		return nil, gatewayCardError("list tokenized cards", err)
	}
	report.TokenizedCount = len(tokenized)

	for _, providerUniqueID := range sortedKeys(tokenized) {
		tc := tokenized[providerUniqueID]
		card, ok := persisted[providerUniqueID]
		if !ok {
			report.NotPersisted = append(report.NotPersisted, tc)
			continue
		}
		delete(persisted, providerUniqueID)

		if tc.HasReplacementMaskedNumber() {
			report.Replacements = append(report.Replacements, CardReplacement{
				CardID:           card.ID,
				ProviderUniqueID: providerUniqueID,
				Kind:             ReplaceMaskedNumber,
				From:             card.MaskedNumber(),
				To:               tc.ReplacementMaskedNumber,
			})
			p.logger.Info("replacing masked number",
				"card_id", card.ID,
				"provider_unique_id", providerUniqueID,
				"from", card.MaskedNumber(),
				"to", tc.ReplacementMaskedNumber,
				"dry_run", dryRun,
			)
			if !dryRun {
				card.SetMaskedNumber(tc.ReplacementMaskedNumber)
				if err := p.store.UpdateCard(ctx, principal, card); err != nil {
					p.logger.Error("failed to save replacement masked number", "card_id", card.ID, "error", err)
					return report, persistenceError("save replacement masked number", err)
				}
			}
		}

		if tc.HasReplacementExpiration() {
			month, year := tc.ReplacementExpirationMonth, tc.ReplacementExpirationYear
			replacement := CardReplacement{
				CardID:           card.ID,
				ProviderUniqueID: providerUniqueID,
				Kind:             ReplaceExpiration,
				From:             card.ExpirationDisplay(),
				To:               models.ExpirationDisplay(month, year),
			}
			report.Replacements = append(report.Replacements, replacement)
			p.logger.Info("replacing expiration",
				"card_id", card.ID,
				"provider_unique_id", providerUniqueID,
				"from", replacement.From,
				"to", replacement.To,
				"dry_run", dryRun,
			)
			if !dryRun {
				if err := p.store.UpdateExpiration(ctx, principal, card, month, year); err != nil {
					p.logger.Error("failed to save replacement expiration", "card_id", card.ID, "error", err)
					if errors.Is(err, models.ErrValidation) {
						return report, validationError(err)
					}
					return report, persistenceError("save replacement expiration", err)
				}
			}
		}
	}

	for _, providerUniqueID := range sortedKeys(persisted) {
		card := persisted[providerUniqueID]
		report.NotTokenized = append(report.NotTokenized, card)
		p.logger.Warn("stored card not tokenized",
			"card_id", card.ID,
			"provider_unique_id", providerUniqueID,
			"masked_number", card.MaskedNumber(),
			"comments", card.Comments,
		)
	}
	for _, tc := range report.NotPersisted {
		p.logger.Warn("tokenized card not persisted",
			"provider_unique_id", tc.ProviderUniqueID,
			"provider_replacement_masked_number", tc.ProviderReplacementMaskedNumber,
			"replacement_masked_number", tc.ReplacementMaskedNumber,
			"provider_replacement_expiration", tc.ProviderReplacementExpiration,
		)
	}

	p.logger.Info("stored card synchronization finished",
		"tokenized", report.TokenizedCount,
		"replacements", len(report.Replacements),
		"not_tokenized", len(report.NotTokenized),
		"not_persisted", len(report.NotPersisted),
		"dry_run", dryRun,
	)
	return report, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
