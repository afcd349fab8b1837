package simulator

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benx421/payment-gateway/processor/internal/gateway"
	"github.com/benx421/payment-gateway/processor/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider() *Provider {
	return New("sim", Chaos{}, time.Hour, testLogger())
}

func testRequest(amount string) models.TransactionRequest {
	return models.TransactionRequest{CurrencyCode: "USD", Amount: decimal.RequireFromString(amount)}
}

func testCard(t *testing.T, number string) models.Card {
	t.Helper()
	card := models.NewCard()
	require.NoError(t, card.SetNumber(number))
	require.NoError(t, card.SetExpiration(12, time.Now().Year()+2))
	return card
}

func TestAuthorize_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		number      string
		amount      string
		currency    string
		cardCode    string
		wantComm    models.CommunicationResult
		wantApprove models.ApprovalResult
		wantDecline models.DeclineReason
		wantError   models.ErrorCode
	}{
		{name: "approved", number: "4242424242424242", amount: "10.00", wantComm: models.CommunicationSuccess, wantApprove: models.ApprovalApproved},
		{name: "declined", number: CardDeclined, amount: "10.00", wantComm: models.CommunicationSuccess, wantApprove: models.ApprovalDeclined, wantDecline: models.DeclineNoSpecific},
		{name: "insufficient funds", number: CardInsufficientFunds, amount: "10.00", wantComm: models.CommunicationSuccess, wantApprove: models.ApprovalDeclined, wantDecline: models.DeclineInsufficientFunds},
		{name: "hold", number: CardHold, amount: "10.00", wantComm: models.CommunicationSuccess, wantApprove: models.ApprovalHold},
		{name: "cvv mismatch", number: "4242424242424242", amount: "10.00", cardCode: CardCodeMismatch, wantComm: models.CommunicationSuccess, wantApprove: models.ApprovalDeclined, wantDecline: models.DeclineCVV2Mismatch},
		{name: "over limit", number: "4242424242424242", amount: "10000.01", wantComm: models.CommunicationSuccess, wantApprove: models.ApprovalDeclined, wantDecline: models.DeclineMaxSaleExceeded},
		{name: "unsupported currency", number: "4242424242424242", amount: "10.00", currency: "JPY", wantComm: models.CommunicationGatewayError, wantError: models.ErrorCodeCurrencyNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider()
			req := testRequest(tt.amount)
			if tt.currency != "" {
				req.CurrencyCode = tt.currency
			}
			card := testCard(t, tt.number)
			if tt.cardCode != "" {
				require.NoError(t, card.SetCardCode(tt.cardCode))
			}

			res := p.Authorize(context.Background(), req, card)

			assert.Equal(t, "sim", res.ProviderID)
			assert.Equal(t, tt.wantComm, res.CommunicationResult)
			assert.Equal(t, tt.wantApprove, res.ApprovalResult)
			assert.Equal(t, tt.wantDecline, res.DeclineReason)
			assert.Equal(t, tt.wantError, res.ErrorCode)
			assert.NoError(t, res.Validate())
			assert.True(t, res.ErrorCode == "" || res.ErrorCode.AllowedFor(res.CommunicationResult))
		})
	}
}

func TestAuthorize_ExpiredCard(t *testing.T) {
	p := newTestProvider()
	card := models.NewCard()
	require.NoError(t, card.SetNumber("4242424242424242"))
	require.NoError(t, card.SetExpiration(1, time.Now().Year()-1))

	res := p.Authorize(context.Background(), testRequest("5.00"), card)

	assert.Equal(t, models.ApprovalDeclined, res.ApprovalResult)
	assert.Equal(t, models.DeclineExpiredCard, res.DeclineReason)
}

func TestAuthorize_LocalErrorForInvalidRequest(t *testing.T) {
	p := newTestProvider()
	res := p.Authorize(context.Background(), testRequest("0"), testCard(t, "4242424242424242"))
	assert.Equal(t, models.CommunicationLocalError, res.CommunicationResult)
}

func TestChaos_FailureAndCancellation(t *testing.T) {
	t.Run("always failing network", func(t *testing.T) {
		p := New("sim", Chaos{FailureRate: 1}, time.Hour, testLogger())
		res := p.Authorize(context.Background(), testRequest("10.00"), testCard(t, "4242424242424242"))
		assert.Equal(t, models.CommunicationIOError, res.CommunicationResult)
		assert.Equal(t, models.ErrorCodeUnknown, res.ErrorCode)
	})

	t.Run("cancelled context", func(t *testing.T) {
		p := New("sim", Chaos{MinLatencyMS: 1000, MaxLatencyMS: 2000}, time.Hour, testLogger())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res := p.Capture(ctx, models.AuthorizationResult{})
		assert.Equal(t, models.CommunicationIOError, res.CommunicationResult)
	})
}

func TestCaptureAndVoid(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	auth := p.Authorize(ctx, testRequest("25.00"), testCard(t, "4242424242424242"))
	require.Equal(t, models.ApprovalApproved, auth.ApprovalResult)
	require.NotEmpty(t, auth.ProviderUniqueID)
	assert.Len(t, auth.ApprovalCode, 6)

	capture := p.Capture(ctx, auth)
	assert.Equal(t, models.CommunicationSuccess, capture.CommunicationResult)

	again := p.Capture(ctx, auth)
	assert.Equal(t, models.CommunicationGatewayError, again.CommunicationResult)
	assert.Equal(t, models.ErrorCodeDuplicate, again.ErrorCode)

	txn := &models.Transaction{AuthorizationResult: &auth}
	void := p.Void(ctx, txn)
	assert.Equal(t, models.CommunicationSuccess, void.CommunicationResult)

	voidAgain := p.Void(ctx, txn)
	assert.Equal(t, models.ErrorCodeDuplicate, voidAgain.ErrorCode)

	unknown := p.Capture(ctx, models.AuthorizationResult{TransactionResult: models.TransactionResult{ProviderUniqueID: "nope"}})
	assert.Equal(t, models.ErrorCodeTransactionNotFound, unknown.ErrorCode)
}

func TestSale(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()

	sale := p.Sale(ctx, testRequest("25.00"), testCard(t, "4242424242424242"))
	assert.Equal(t, models.ApprovalApproved, sale.Authorization.ApprovalResult)
	assert.Equal(t, models.CommunicationSuccess, sale.Capture.CommunicationResult)
	assert.Equal(t, sale.Authorization.ProviderUniqueID, sale.Capture.ProviderUniqueID)

	// a sale is already captured
	capture := p.Capture(ctx, sale.Authorization)
	assert.Equal(t, models.ErrorCodeDuplicate, capture.ErrorCode)

	declined := p.Sale(ctx, testRequest("25.00"), testCard(t, CardDeclined))
	assert.Empty(t, declined.Capture.ProviderUniqueID)
}

func TestCredit(t *testing.T) {
	p := newTestProvider()
	res := p.Credit(context.Background(), testRequest("5.00"), testCard(t, "4242424242424242"))
	assert.Equal(t, models.CommunicationSuccess, res.CommunicationResult)
	assert.NotEmpty(t, res.ProviderUniqueID)
}

func TestVault(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider()
	card := testCard(t, "4242424242424242")

	id, err := p.StoreCard(ctx, card)
	require.NoError(t, err)

	stored := card.WithoutSecrets()
	stored.ProviderUniqueID = id

	t.Run("stored card can be charged without its number", func(t *testing.T) {
		res := p.Authorize(ctx, testRequest("3.00"), stored)
		assert.Equal(t, models.ApprovalApproved, res.ApprovalResult)
		assert.Nil(t, res.TokenizedCard)
	})

	t.Run("reissue is reported as replacement", func(t *testing.T) {
		year := time.Now().Year() + 4
		require.NoError(t, p.Reissue(id, "4556737586899855", 6, year))

		res := p.Authorize(ctx, testRequest("3.00"), stored)
		require.NotNil(t, res.TokenizedCard)
		assert.Equal(t, "455673XXXXXX9855", res.TokenizedCard.ReplacementMaskedNumber)
		assert.Equal(t, 6, res.TokenizedCard.ReplacementExpirationMonth)

		tokenized, err := p.TokenizedCards(ctx, nil)
		require.NoError(t, err)
		require.Contains(t, tokenized, id)
		assert.True(t, tokenized[id].HasReplacementExpiration())

		require.NoError(t, p.UpdateCardNumberAndExpiration(ctx, stored, "4556737586899855", 6, year, ""))
		tokenized, err = p.TokenizedCards(ctx, nil)
		require.NoError(t, err)
		assert.False(t, tokenized[id].HasReplacementMaskedNumber())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, p.DeleteCard(ctx, stored))
		assert.Error(t, p.UpdateCard(ctx, stored))

		res := p.Authorize(ctx, testRequest("3.00"), stored)
		assert.Equal(t, models.ErrorCodeInvalidCardNumber, res.ErrorCode)
	})

	t.Run("store requires number", func(t *testing.T) {
		_, err := p.StoreCard(ctx, models.NewCard())
		assert.Error(t, err)
	})
}

func TestFactory(t *testing.T) {
	registry := gateway.NewRegistry(testLogger())
	require.NoError(t, registry.Register(Type, Factory(testLogger())))

	p, err := registry.Get(gateway.Config{ProviderID: "sim", Type: Type, Params: []string{"0", "0", "0", "1h"}})
	require.NoError(t, err)
	assert.Equal(t, "sim", p.ID())

	_, err = registry.Get(gateway.Config{ProviderID: "sim", Type: Type, Params: []string{"2"}})
	assert.Error(t, err)

	_, err = registry.Get(gateway.Config{ProviderID: "sim", Type: Type, Params: []string{"0", "50", "10"}})
	assert.Error(t, err)

	_, err = registry.Get(gateway.Config{ProviderID: "sim", Type: Type, Params: []string{"x"}})
	assert.Error(t, err)
}
