package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/benx421/payment-gateway/processor/internal/config"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, want: true},
		{name: "pq other code", err: &pq.Error{Code: "23503"}, want: false},
		{name: "wrapped pgconn unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "pgconn other code", err: &pgconn.PgError{Code: "40001"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("1"))
	assert.True(t, validID("9223372036854775807"))
	assert.False(t, validID("0"))
	assert.False(t, validID("-3"))
	assert.False(t, validID("card_1"))
	assert.False(t, validID(""))
}

func TestPostgresStore_Cards(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	ctx := context.Background()
	store := NewPostgresStore(database, testLogger())

	card := newTestCard(t)
	id, err := store.StoreCard(ctx, testPrincipal, card)
	require.NoError(t, err)

	got, err := store.GetCard(ctx, testPrincipal, id)
	require.NoError(t, err)
	want := card.WithoutSecrets()
	want.ID = id
	assert.Equal(t, want, got)

	_, err = store.StoreCard(ctx, testPrincipal, card)
	assert.ErrorIs(t, err, models.ErrDuplicate, "same provider unique id")

	byProvider, err := store.GetCardsByProvider(ctx, testPrincipal, "sim")
	require.NoError(t, err)
	assert.Contains(t, byProvider, "card_1")

	require.NoError(t, store.UpdateCardNumber(ctx, testPrincipal, got, "5555555555554444", 4, got.ExpirationYear()))
	got, err = store.GetCard(ctx, testPrincipal, id)
	require.NoError(t, err)
	assert.Equal(t, "555555XXXXXX4444", got.MaskedNumber())
	assert.Equal(t, 4, got.ExpirationMonth())

	require.NoError(t, store.DeleteCard(ctx, testPrincipal, got))
	_, err = store.GetCard(ctx, testPrincipal, id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.GetCard(ctx, testPrincipal, "not-a-number")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostgresStore_DuplicateCard(t *testing.T) {
	for _, driver := range []string{config.DriverPQ, config.DriverPGX} {
		t.Run(driver, func(t *testing.T) {
			database := setupTestDBWithDriver(t, driver)
			defer cleanupTestDB(t, database)
			truncateTables(t, database)

			ctx := context.Background()
			store := NewPostgresStore(database, testLogger())

			_, err := store.StoreCard(ctx, testPrincipal, newTestCard(t))
			require.NoError(t, err)

			_, err = store.StoreCard(ctx, testPrincipal, newTestCard(t))
			assert.ErrorIs(t, err, models.ErrDuplicate)
		})
	}
}

func TestPostgresStore_Transactions(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	ctx := context.Background()
	store := NewPostgresStore(database, testLogger())

	txn := newTestTransaction(t)
	txn.Status = models.TransactionStatusProcessing
	id, err := store.InsertTransaction(ctx, testPrincipal, "web", txn)
	require.NoError(t, err)

	txn.ID = id
	txn.GroupName = "web"
	txn.Status = models.TransactionStatusCaptured
	require.NoError(t, store.SaleCompleted(ctx, testPrincipal, txn))

	got, err := store.GetTransaction(ctx, testPrincipal, id)
	require.NoError(t, err)

	want := txn.Clone()
	want.Card.Scrub()
	assert.Equal(t, want, got)

	missing := txn.Clone()
	missing.ID = "999999"
	assert.ErrorIs(t, store.VoidCompleted(ctx, testPrincipal, missing), models.ErrNotFound)
}
