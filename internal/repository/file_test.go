package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrincipal = models.Principal("tester")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCard(t *testing.T) models.Card {
	t.Helper()

	card := models.NewCard()
	card.PrincipalName = "tester"
	card.GroupName = "web"
	card.ProviderID = "sim"
	card.ProviderUniqueID = "card_1"
	card.FirstName = "Ada"
	card.LastName = "Lovelace"
	card.CompanyName = "Analytical Engines"
	card.Phone = "+44 20 7946 0000"
	card.StreetAddress1 = "12 St James's Square"
	card.City = "London"
	card.PostalCode = "SW1Y 4JH"
	card.Comments = "line one\nline two = with equals"
	require.NoError(t, card.SetNumber("4111 1111 1111 1111"))
	require.NoError(t, card.SetCardCode("123"))
	require.NoError(t, card.SetExpiration(12, time.Now().Year()+2))
	require.NoError(t, card.SetEmail("ada@example.com"))
	require.NoError(t, card.SetCustomerTaxID("123-45-6789"))
	require.NoError(t, card.SetCountryCode("gb"))
	return card
}

func newTestTransaction(t *testing.T) *models.Transaction {
	t.Helper()

	authTime := time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.UTC)
	return &models.Transaction{
		ProviderID: "sim",
		Request: models.TransactionRequest{
			TestMode:     true,
			CustomerIP:   "192.0.2.10",
			OrderNumber:  "ORD-1001",
			CurrencyCode: "USD",
			Amount:       decimal.RequireFromString("125.5"),
			TaxAmount:    decimal.NewNullDecimal(decimal.RequireFromString("10.04")),
			Description:  "annual plan",
		},
		Card:                   newTestCard(t),
		AuthorizationTime:      authTime,
		AuthorizationPrincipal: testPrincipal,
		AuthorizationResult: &models.AuthorizationResult{
			TransactionResult: models.TransactionResult{
				ProviderID:          "sim",
				CommunicationResult: models.CommunicationSuccess,
				ProviderUniqueID:    "auth_1",
			},
			TokenizedCard: &models.TokenizedCard{
				ProviderUniqueID:           "card_1",
				ReplacementMaskedNumber:    "411111XXXXXX2222",
				ReplacementExpirationMonth: 1,
				ReplacementExpirationYear:  2031,
			},
			ProviderApprovalResult: "approved",
			ApprovalResult:         models.ApprovalApproved,
			CvvResult:              models.CvvMatch,
			AvsResult:              models.AvsAddressYZip5,
			ApprovalCode:           "123456",
		},
		CaptureTime:      authTime.Add(time.Minute),
		CapturePrincipal: testPrincipal,
		CaptureResult: &models.CaptureResult{TransactionResult: models.TransactionResult{
			ProviderID:          "sim",
			CommunicationResult: models.CommunicationSuccess,
			ProviderUniqueID:    "auth_1",
		}},
		Status: models.TransactionStatusCaptured,
	}
}

func TestFileStore_CardRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.store")
	ctx := context.Background()

	card := newTestCard(t)
	id, err := NewFileStore(path, testLogger()).StoreCard(ctx, testPrincipal, card)
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	reloaded := NewFileStore(path, testLogger())
	got, err := reloaded.GetCard(ctx, testPrincipal, id)
	require.NoError(t, err)

	want := card.WithoutSecrets()
	want.ID = id
	assert.Equal(t, want, got)
	assert.Empty(t, got.Number(), "full number must not be persisted")
	assert.Empty(t, got.CardCode(), "card code must not be persisted")
	assert.Equal(t, "411111XXXXXX1111", got.MaskedNumber())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "4111111111111111")
	assert.Contains(t, string(data), `cards.0.maskedCardNumber="411111XXXXXX1111"`)
}

func TestFileStore_TransactionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.store")
	ctx := context.Background()

	txn := newTestTransaction(t)
	store := NewFileStore(path, testLogger())
	id, err := store.InsertTransaction(ctx, testPrincipal, "web", txn)
	require.NoError(t, err)

	got, err := NewFileStore(path, testLogger()).GetTransaction(ctx, testPrincipal, id)
	require.NoError(t, err)

	want := txn.Clone()
	want.ID = id
	want.GroupName = "web"
	want.Card.Scrub()
	assert.Equal(t, want, got)
	assert.Empty(t, got.Card.Number())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `transactions.0.authorizationResult.approvalResult="APPROVED"`)
	assert.Contains(t, string(data), `transactions.0.transactionRequest.amount="125.5"`)
}

func TestFileStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testLogger())

	card := newTestCard(t)
	id, err := store.StoreCard(ctx, testPrincipal, card)
	require.NoError(t, err)

	card.FirstName = "changed after store"

	got, err := store.GetCard(ctx, testPrincipal, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)

	all, err := store.GetCards(ctx, testPrincipal)
	require.NoError(t, err)
	delete(all, id)
	all["99"] = got

	all, err = store.GetCards(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, id)

	txn := newTestTransaction(t)
	txnID, err := store.InsertTransaction(ctx, testPrincipal, "web", txn)
	require.NoError(t, err)

	txn.AuthorizationResult.ApprovalCode = "mutated"
	stored, err := store.GetTransaction(ctx, testPrincipal, txnID)
	require.NoError(t, err)
	assert.Equal(t, "123456", stored.AuthorizationResult.ApprovalCode)

	stored.AuthorizationResult.TokenizedCard.ReplacementMaskedNumber = "mutated"
	again, err := store.GetTransaction(ctx, testPrincipal, txnID)
	require.NoError(t, err)
	assert.Equal(t, "411111XXXXXX2222", again.AuthorizationResult.TokenizedCard.ReplacementMaskedNumber)
}

func TestFileStore_GetCardsByProvider(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testLogger())

	tests := []struct {
		providerID       string
		providerUniqueID string
	}{
		{"sim", "card_a"},
		{"sim", "card_b"},
		{"other", "card_c"},
		{"sim", ""},
	}
	for _, tt := range tests {
		card := newTestCard(t)
		card.ProviderID = tt.providerID
		card.ProviderUniqueID = tt.providerUniqueID
		_, err := store.StoreCard(ctx, testPrincipal, card)
		require.NoError(t, err)
	}

	cards, err := store.GetCardsByProvider(ctx, testPrincipal, "sim")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, "card_a", cards["card_a"].ProviderUniqueID)
	assert.Equal(t, "card_b", cards["card_b"].ProviderUniqueID)

	card := newTestCard(t)
	card.ProviderID = "sim"
	card.ProviderUniqueID = "card_a"
	_, err = store.StoreCard(ctx, testPrincipal, card)
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestFileStore_UpdateCard(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testLogger())

	id, err := store.StoreCard(ctx, testPrincipal, newTestCard(t))
	require.NoError(t, err)
	original, err := store.GetCard(ctx, testPrincipal, id)
	require.NoError(t, err)

	t.Run("details keep identity and expiration", func(t *testing.T) {
		update := original
		update.FirstName = "Augusta"
		update.ProviderUniqueID = "ignored"
		require.NoError(t, update.SetExpiration(1, original.ExpirationYear()+1))

		require.NoError(t, store.UpdateCard(ctx, testPrincipal, update))

		got, err := store.GetCard(ctx, testPrincipal, id)
		require.NoError(t, err)
		assert.Equal(t, "Augusta", got.FirstName)
		assert.Equal(t, "card_1", got.ProviderUniqueID)
		assert.Equal(t, original.ExpirationMonth(), got.ExpirationMonth())
		assert.Equal(t, original.ExpirationYear(), got.ExpirationYear())
	})

	t.Run("number and expiration", func(t *testing.T) {
		require.NoError(t, store.UpdateCardNumber(ctx, testPrincipal, original, "5555555555554444", 3, original.ExpirationYear()))

		got, err := store.GetCard(ctx, testPrincipal, id)
		require.NoError(t, err)
		assert.Equal(t, "555555XXXXXX4444", got.MaskedNumber())
		assert.Empty(t, got.Number())
		assert.Equal(t, 3, got.ExpirationMonth())
	})

	t.Run("expiration", func(t *testing.T) {
		require.NoError(t, store.UpdateExpiration(ctx, testPrincipal, original, models.UnknownExpirationMonth, models.UnknownExpirationYear))

		got, err := store.GetCard(ctx, testPrincipal, id)
		require.NoError(t, err)
		assert.Equal(t, models.UnknownExpirationMonth, got.ExpirationMonth())
		assert.Equal(t, models.UnknownExpirationYear, got.ExpirationYear())
	})

	t.Run("invalid expiration leaves card unchanged", func(t *testing.T) {
		before, err := store.GetCard(ctx, testPrincipal, id)
		require.NoError(t, err)

		err = store.UpdateExpiration(ctx, testPrincipal, original, 13, 2030)
		assert.ErrorIs(t, err, models.ErrValidation)

		after, err := store.GetCard(ctx, testPrincipal, id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing card", func(t *testing.T) {
		missing := original
		missing.ID = "404"
		assert.ErrorIs(t, store.UpdateCard(ctx, testPrincipal, missing), models.ErrNotFound)
		assert.ErrorIs(t, store.DeleteCard(ctx, testPrincipal, missing), models.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteCard(ctx, testPrincipal, original))
		_, err := store.GetCard(ctx, testPrincipal, id)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestFileStore_TransactionCompletion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testLogger())

	txn := newTestTransaction(t)
	txn.Status = models.TransactionStatusProcessing
	txn.AuthorizationResult = nil
	txn.CaptureResult = nil

	id, err := store.InsertTransaction(ctx, testPrincipal, "web", txn)
	require.NoError(t, err)
	txn.ID = id

	completions := []struct {
		complete func(context.Context, models.Principal, *models.Transaction) error
		name     string
		status   models.TransactionStatus
	}{
		{name: "sale", complete: store.SaleCompleted, status: models.TransactionStatusCaptured},
		{name: "authorize", complete: store.AuthorizeCompleted, status: models.TransactionStatusAuthorized},
		{name: "void", complete: store.VoidCompleted, status: models.TransactionStatusVoid},
	}
	for _, tt := range completions {
		t.Run(tt.name, func(t *testing.T) {
			txn.Status = tt.status
			require.NoError(t, tt.complete(ctx, testPrincipal, txn))

			got, err := store.GetTransaction(ctx, testPrincipal, id)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
		})
	}

	missing := txn.Clone()
	missing.ID = "42"
	assert.ErrorIs(t, store.SaleCompleted(ctx, testPrincipal, missing), models.ErrNotFound)
}

func TestFileStore_BackupRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "processor.store")
	ctx := context.Background()
	store := NewFileStore(path, testLogger())

	_, err := store.StoreCard(ctx, testPrincipal, newTestCard(t))
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	card := newTestCard(t)
	card.ProviderUniqueID = "card_2"
	_, err = store.StoreCard(ctx, testPrincipal, card)
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, first, backup)

	_, err = os.Stat(path + ".new")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed into place")
}

func TestFileStore_SaveFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "processor.store")
	ctx := context.Background()
	store := NewFileStore(path, testLogger())

	_, err := store.StoreCard(ctx, testPrincipal, newTestCard(t))
	require.Error(t, err)

	cards, err := store.GetCards(ctx, testPrincipal)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestFileStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{name: "missing separator", contents: "cards.0.id\n", wantErr: "missing '='"},
		{name: "bad ordinal", contents: `cards.x.id="1"` + "\n", wantErr: "invalid ordinal"},
		{name: "bad value", contents: "cards.0.id=1\"\n", wantErr: "invalid value"},
		{name: "unknown collection", contents: `accounts.0.id="1"` + "\n", wantErr: "unknown collection"},
		{name: "missing id", contents: `cards.0.firstName="Ada"` + "\n", wantErr: "missing id"},
		{name: "duplicate key", contents: "cards.0.id=\"1\"\ncards.0.id=\"2\"\n", wantErr: "duplicate key"},
		{
			name:     "invalid email",
			contents: "cards.0.id=\"1\"\ncards.0.expirationMonth=-1\ncards.0.expirationYear=-1\ncards.0.email=\"nope\"\n",
			wantErr:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "processor.store")
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o600))

			_, err := NewFileStore(path, testLogger()).GetCards(context.Background(), testPrincipal)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileStore_IgnoresCommentsAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.store")
	contents := strings.Join([]string{
		"# hand edited",
		"",
		`cards.3.id="7"`,
		`cards.3.maskedCardNumber="411111XXXXXX1111"`,
		`cards.3.expirationMonth=-1`,
		`cards.3.expirationYear=-1`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	store := NewFileStore(path, testLogger())
	card, err := store.GetCard(context.Background(), testPrincipal, "7")
	require.NoError(t, err)
	assert.Equal(t, "411111XXXXXX1111", card.MaskedNumber())

	id, err := store.StoreCard(context.Background(), testPrincipal, newTestCard(t))
	require.NoError(t, err)
	assert.Equal(t, "8", id)
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore(testLogger()).GetCards(ctx, testPrincipal)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStore_PingContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.store")
	require.NoError(t, os.WriteFile(path, []byte("cards.0.id=\n"), 0o600))

	assert.NoError(t, NewMemoryStore(testLogger()).PingContext(context.Background()))
	assert.Error(t, NewFileStore(path, testLogger()).PingContext(context.Background()))
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processor.store")
	ctx := context.Background()
	store := NewFileStore(path, testLogger())

	const writers = 20
	txn := newTestTransaction(t)
	var wg sync.WaitGroup
	ids := make(chan string, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.InsertTransaction(ctx, testPrincipal, "web", txn)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %s assigned twice", id)
		seen[id] = true
	}

	all := NewFileStore(path, testLogger())
	for id := range seen {
		_, err := all.GetTransaction(ctx, testPrincipal, id)
		assert.NoError(t, err)
	}
}
