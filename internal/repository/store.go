// Package repository provides the persistence layer for cards and
// transactions.
package repository

import (
	"context"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// Store persists cards and transactions.
//
// Every read returns an independent copy, and returned maps belong to the
// caller. Full card numbers and card codes are never persisted. Updates to a
// single record are linearizable.
type Store interface {
	// StoreCard saves a new card and returns its storage id.
	StoreCard(ctx context.Context, principal models.Principal, card models.Card) (string, error)
	GetCard(ctx context.Context, principal models.Principal, id string) (models.Card, error)
	// GetCards returns every card keyed by storage id.
	GetCards(ctx context.Context, principal models.Principal) (map[string]models.Card, error)
	// GetCardsByProvider returns the cards stored with providerID keyed by
	// provider unique id.
	GetCardsByProvider(ctx context.Context, principal models.Principal, providerID string) (map[string]models.Card, error)
	// UpdateCard saves the masked number and cardholder details of card.
	UpdateCard(ctx context.Context, principal models.Principal, card models.Card) error
	// UpdateCardNumber records a new number, of which only the masked form
	// is kept, along with its expiration.
	UpdateCardNumber(ctx context.Context, principal models.Principal, card models.Card, cardNumber string, month, year int) error
	UpdateExpiration(ctx context.Context, principal models.Principal, card models.Card, month, year int) error
	DeleteCard(ctx context.Context, principal models.Principal, card models.Card) error

	// InsertTransaction saves a new transaction and returns its storage id.
	InsertTransaction(ctx context.Context, principal models.Principal, groupName string, txn *models.Transaction) (string, error)
	GetTransaction(ctx context.Context, principal models.Principal, id string) (*models.Transaction, error)
	SaleCompleted(ctx context.Context, principal models.Principal, txn *models.Transaction) error
	AuthorizeCompleted(ctx context.Context, principal models.Principal, txn *models.Transaction) error
	VoidCompleted(ctx context.Context, principal models.Principal, txn *models.Transaction) error
}
