package service

import (
	"context"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// TransactionService runs payment transactions through the gateway and
// records them.
type TransactionService interface {
	Sale(ctx context.Context, principal models.Principal, groupName string, req models.TransactionRequest, card models.Card) (*models.Transaction, error)
	Authorize(ctx context.Context, principal models.Principal, groupName string, req models.TransactionRequest, card models.Card) (*models.Transaction, error)
	Capture(ctx context.Context, principal models.Principal, txn *models.Transaction) (*models.Transaction, error)
	Void(ctx context.Context, principal models.Principal, txn *models.Transaction) (*models.Transaction, error)
	Credit(ctx context.Context, req models.TransactionRequest, card models.Card) (models.CreditResult, error)
	GetTransaction(ctx context.Context, principal models.Principal, id string) (*models.Transaction, error)
	RetryCompletion(ctx context.Context, principal models.Principal, txn *models.Transaction) error
}

// CardService manages cards kept in the gateway's secure storage.
type CardService interface {
	StoreCard(ctx context.Context, principal models.Principal, groupName string, card models.Card) (models.Card, error)
	GetCard(ctx context.Context, principal models.Principal, id string) (models.Card, error)
	UpdateCard(ctx context.Context, principal models.Principal, card models.Card) (models.Card, error)
	UpdateCardNumberAndExpiration(ctx context.Context, principal models.Principal, card models.Card, cardNumber string, month, year int, cardCode string) (models.Card, error)
	UpdateCardExpiration(ctx context.Context, principal models.Principal, card models.Card, month, year int) (models.Card, error)
	DeleteCard(ctx context.Context, principal models.Principal, card models.Card) error
	SynchronizeStoredCards(ctx context.Context, principal models.Principal, dryRun bool) (*SyncReport, error)
}

// Ensure concrete types implement interfaces
var (
	_ TransactionService = (*Processor)(nil)
	_ CardService        = (*Processor)(nil)
)
