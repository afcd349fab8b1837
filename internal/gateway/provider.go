// Package gateway defines the contract payment gateways implement and the
// registry that constructs them.
package gateway

import (
	"context"
	"errors"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// ErrUnsupported is returned when a provider lacks an optional capability.
var ErrUnsupported = errors.New("operation not supported by provider")

// Provider performs transactions against one payment gateway.
//
// Gateway-side conditions, including network failures, are reported in the
// returned result's CommunicationResult and never as a Go error. Callers must
// not mutate values passed in after the call returns.
type Provider interface {
	// ID identifies the configured provider instance.
	ID() string
	Sale(ctx context.Context, req models.TransactionRequest, card models.Card) models.SaleResult
	Authorize(ctx context.Context, req models.TransactionRequest, card models.Card) models.AuthorizationResult
	Capture(ctx context.Context, auth models.AuthorizationResult) models.CaptureResult
	Void(ctx context.Context, txn *models.Transaction) models.VoidResult
	Credit(ctx context.Context, req models.TransactionRequest, card models.Card) models.CreditResult
}

// CardStorer is implemented by providers that hold cards in their own
// secure storage. Errors here are local or I/O failures; the card is
// identified by its ProviderUniqueID.
type CardStorer interface {
	// StoreCard saves the card and returns the provider's unique id for it.
	StoreCard(ctx context.Context, card models.Card) (string, error)
	UpdateCard(ctx context.Context, card models.Card) error
	UpdateCardNumberAndExpiration(ctx context.Context, card models.Card, cardNumber string, month, year int, cardCode string) error
	UpdateCardExpiration(ctx context.Context, card models.Card, month, year int) error
	DeleteCard(ctx context.Context, card models.Card) error
}

// TokenizedCardLister is implemented by providers that can report the
// current state of every card they store.
type TokenizedCardLister interface {
	// TokenizedCards returns the provider's cards keyed by provider unique id.
	// persisted is the caller's view keyed the same way and may be used as a hint.
	TokenizedCards(ctx context.Context, persisted map[string]models.Card) (map[string]models.TokenizedCard, error)
}

// AsCardStorer returns p's card storage capability or ErrUnsupported.
func AsCardStorer(p Provider) (CardStorer, error) {
	if s, ok := p.(CardStorer); ok {
		return s, nil
	}
	return nil, ErrUnsupported
}

// AsTokenizedCardLister returns p's tokenized listing capability or ErrUnsupported.
func AsTokenizedCardLister(p Provider) (TokenizedCardLister, error) {
	if l, ok := p.(TokenizedCardLister); ok {
		return l, nil
	}
	return nil, ErrUnsupported
}
