package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

func expYear() int { return time.Now().Year() + 2 }

func inlineSaleBody() string {
	return fmt.Sprintf(`{
		"groupName": "web",
		"amount": "42.10",
		"currencyCode": "USD",
		"orderNumber": "ord-1",
		"card": {
			"number": "4111 1111 1111 1111",
			"cardCode": "123",
			"expirationMonth": 10,
			"expirationYear": %d,
			"firstName": "Ada",
			"email": "ada@example.com"
		}
	}`, expYear())
}

func storedCard(t *testing.T) models.Card {
	t.Helper()

	card := models.NewCard()
	card.ID = "3"
	card.ProviderID = "sim"
	card.ProviderUniqueID = "card_3"
	card.SetMaskedNumber("411111XXXXXX1111")
	require.NoError(t, card.SetExpiration(10, expYear()))
	return card
}

func approvedTransaction(id string, status models.TransactionStatus, card models.Card) *models.Transaction {
	return &models.Transaction{
		ID:         id,
		ProviderID: "sim",
		GroupName:  "web",
		Status:     status,
		Request: models.TransactionRequest{
			Amount:       decimal.RequireFromString("42.10"),
			CurrencyCode: "USD",
			OrderNumber:  "ord-1",
		},
		Card:                   card.WithoutSecrets(),
		AuthorizationTime:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		AuthorizationPrincipal: "alice",
		AuthorizationResult: &models.AuthorizationResult{
			TransactionResult: models.TransactionResult{
				ProviderID:          "sim",
				CommunicationResult: models.CommunicationSuccess,
				ProviderUniqueID:    "auth_1",
			},
			ApprovalResult: models.ApprovalApproved,
			ApprovalCode:   "A1B2C3",
		},
	}
}

func decodeTransaction(t *testing.T, body []byte) api.Transaction {
	t.Helper()

	var resp api.Transaction
	require.NoError(t, json.Unmarshal(body, &resp), string(body))
	return resp
}

func TestCreateSale_InlineCard(t *testing.T) {
	ts := newTestServer(t, nil)

	matchRequest := mock.MatchedBy(func(req models.TransactionRequest) bool {
		return req.Amount.Equal(decimal.RequireFromString("42.1")) &&
			req.CurrencyCode == "USD" &&
			req.OrderNumber == "ord-1"
	})
	matchCard := mock.MatchedBy(func(c models.Card) bool {
		return c.Number() == "4111111111111111" &&
			c.CardCode() == "123" &&
			c.ExpirationMonth() == 10 &&
			c.FirstName == "Ada" &&
			c.Email() == "ada@example.com"
	})

	var submitted models.Card
	ts.transactions.On("Sale", mock.Anything, models.Principal("alice"), "web", matchRequest, matchCard).
		Run(func(args mock.Arguments) { submitted = args.Get(4).(models.Card) }).
		Return(func(_ context.Context, _ models.Principal, _ string, _ models.TransactionRequest, c models.Card) (*models.Transaction, error) {
			return approvedTransaction("7", models.TransactionStatusCaptured, c), nil
		})

	rec := ts.do(t, http.MethodPost, "/api/v1/sales", inlineSaleBody(), map[string]string{"X-Principal": "alice"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeTransaction(t, rec.Body.Bytes())
	assert.Equal(t, "7", resp.ID)
	assert.Equal(t, models.TransactionStatusCaptured, resp.Status)
	assert.True(t, decimal.RequireFromString("42.10").Equal(resp.Amount))
	assert.Equal(t, "411111XXXXXX1111", resp.Card.MaskedNumber)
	assert.Equal(t, "A1B2C3", resp.AuthorizationResult.ApprovalCode)
	require.NotNil(t, resp.AuthorizationTime)
	assert.Nil(t, resp.CaptureTime)

	assert.Equal(t, "4111111111111111", submitted.Number())
	assert.NotContains(t, rec.Body.String(), "4111111111111111")
	assert.NotContains(t, rec.Body.String(), `"123"`)
}

func TestCreateAuthorization_StoredCard(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)

	ts.cards.On("GetCard", mock.Anything, models.Principal(defaultPrincipal), "3").Return(card, nil)
	ts.transactions.On("Authorize", mock.Anything, models.Principal(defaultPrincipal), "", mock.Anything, card).
		Return(approvedTransaction("8", models.TransactionStatusAuthorized, card), nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/authorizations", `{"amount":"5","currencyCode":"EUR","cardId":"3"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeTransaction(t, rec.Body.Bytes())
	assert.Equal(t, models.TransactionStatusAuthorized, resp.Status)
	assert.Equal(t, "3", resp.Card.ID)
}

func TestCreateSale_StoredCardNotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.cards.On("GetCard", mock.Anything, mock.Anything, "99").
		Return(models.Card{}, &service.ServiceError{Code: service.ErrCodeNotFound, Message: "card 99 not found"})

	rec := ts.do(t, http.MethodPost, "/api/v1/sales", `{"amount":"5","currencyCode":"USD","cardId":"99"}`, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.ErrorCodeNotFound, decodeError(t, rec).Error)
}

func TestCreateSale_InvalidRequests(t *testing.T) {
	year := expYear()
	tests := []struct {
		name     string
		body     string
		wantCode api.ErrorCode
	}{
		{
			name:     "no card",
			body:     `{"amount":"5","currencyCode":"USD"}`,
			wantCode: api.ErrorCodeInvalidRequest,
		},
		{
			name:     "card and card id",
			body:     fmt.Sprintf(`{"amount":"5","currencyCode":"USD","cardId":"3","card":{"number":"4111111111111111","expirationMonth":1,"expirationYear":%d}}`, year),
			wantCode: api.ErrorCodeInvalidRequest,
		},
		{
			name:     "lower case currency",
			body:     `{"amount":"5","currencyCode":"usd","cardId":"3"}`,
			wantCode: api.ErrorCodeInvalidRequest,
		},
		{
			name:     "bad customer ip",
			body:     `{"amount":"5","currencyCode":"USD","cardId":"3","customerIp":"not-an-ip"}`,
			wantCode: api.ErrorCodeInvalidRequest,
		},
		{
			name:     "luhn failure",
			body:     fmt.Sprintf(`{"amount":"5","currencyCode":"USD","card":{"number":"4111111111111112","expirationMonth":1,"expirationYear":%d}}`, year),
			wantCode: api.ErrorCodeValidation,
		},
		{
			name:     "bad tax id",
			body:     `{"amount":"5","currencyCode":"USD","card":{"number":"4111111111111111","customerTaxId":"12"}}`,
			wantCode: api.ErrorCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)

			rec := ts.do(t, http.MethodPost, "/api/v1/sales", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Error)
		})
	}
}

func TestCreateSale_PersistenceFailureAfterGateway(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)

	ts.cards.On("GetCard", mock.Anything, mock.Anything, "3").Return(card, nil)
	ts.transactions.On("Sale", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(approvedTransaction("9", models.TransactionStatusCaptured, card),
			&service.ServiceError{Code: service.ErrCodePersistence, Message: "failed to record sale result"})

	rec := ts.do(t, http.MethodPost, "/api/v1/sales", `{"amount":"5","currencyCode":"USD","cardId":"3"}`, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, api.ErrorCodePersistence, resp.Error)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, "9", resp.Transaction.ID)
	assert.Equal(t, models.TransactionStatusCaptured, resp.Transaction.Status)
}

func TestCreateSale_IdempotentReplay(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)

	ts.cards.On("GetCard", mock.Anything, mock.Anything, "3").Return(card, nil).Once()
	ts.transactions.On("Sale", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(approvedTransaction("10", models.TransactionStatusCaptured, card), nil).Once()

	body := `{"amount":"5","currencyCode":"USD","cardId":"3"}`
	headers := map[string]string{"Idempotency-Key": "k-1", "X-Principal": "alice"}

	first := ts.do(t, http.MethodPost, "/api/v1/sales", body, headers)
	require.Equal(t, http.StatusCreated, first.Code)

	second := ts.do(t, http.MethodPost, "/api/v1/sales", body, headers)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestGetTransaction(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)

	ts.transactions.On("GetTransaction", mock.Anything, models.Principal("bob"), "7").
		Return(approvedTransaction("7", models.TransactionStatusAuthorized, card), nil)
	ts.transactions.On("GetTransaction", mock.Anything, models.Principal("bob"), "8").
		Return(nil, &service.ServiceError{Code: service.ErrCodeNotFound, Message: "transaction 8 not found"})

	rec := ts.do(t, http.MethodGet, "/api/v1/transactions/7", "", map[string]string{"X-Principal": "bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", decodeTransaction(t, rec.Body.Bytes()).ID)

	rec = ts.do(t, http.MethodGet, "/api/v1/transactions/8", "", map[string]string{"X-Principal": "bob"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCaptureTransaction(t *testing.T) {
	tests := []struct {
		name       string
		captureErr error
		wantStatus int
		wantCode   api.ErrorCode
	}{
		{name: "captured", wantStatus: http.StatusOK},
		{name: "wrong state", captureErr: &service.ServiceError{Code: service.ErrCodeInvalidState}, wantStatus: http.StatusConflict, wantCode: api.ErrorCodeInvalidState},
		{name: "no provider unique id", captureErr: &service.ServiceError{Code: service.ErrCodeProviderUniqueIDRequired}, wantStatus: http.StatusConflict, wantCode: api.ErrorCodeProviderUniqueIDRequired},
		{name: "unexpected result", captureErr: &service.ServiceError{Code: service.ErrCodeUnexpectedResult}, wantStatus: http.StatusInternalServerError, wantCode: api.ErrorCodeUnexpectedResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			card := storedCard(t)
			authorized := approvedTransaction("7", models.TransactionStatusAuthorized, card)

			ts.transactions.On("GetTransaction", mock.Anything, mock.Anything, "7").Return(authorized, nil)
			if tt.captureErr != nil {
				ts.transactions.On("Capture", mock.Anything, models.Principal(defaultPrincipal), authorized).Return(nil, tt.captureErr)
			} else {
				captured := authorized.Clone()
				captured.Status = models.TransactionStatusCaptured
				captured.CaptureTime = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
				ts.transactions.On("Capture", mock.Anything, models.Principal(defaultPrincipal), authorized).Return(captured, nil)
			}

			rec := ts.do(t, http.MethodPost, "/api/v1/transactions/7/capture", "", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.captureErr != nil {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Error)
				return
			}
			resp := decodeTransaction(t, rec.Body.Bytes())
			assert.Equal(t, models.TransactionStatusCaptured, resp.Status)
			assert.NotNil(t, resp.CaptureTime)
		})
	}
}

func TestVoidTransaction(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)
	captured := approvedTransaction("7", models.TransactionStatusCaptured, card)
	voided := captured.Clone()
	voided.Status = models.TransactionStatusVoid

	ts.transactions.On("GetTransaction", mock.Anything, mock.Anything, "7").Return(captured, nil)
	ts.transactions.On("Void", mock.Anything, models.Principal("alice"), captured).Return(voided, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/transactions/7/void", "", map[string]string{"X-Principal": "alice"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TransactionStatusVoid, decodeTransaction(t, rec.Body.Bytes()).Status)
}

func TestVoidTransaction_NotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.transactions.On("GetTransaction", mock.Anything, mock.Anything, "7").
		Return(nil, &service.ServiceError{Code: service.ErrCodeNotFound})

	rec := ts.do(t, http.MethodPost, "/api/v1/transactions/7/void", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	ts.transactions.AssertNotCalled(t, "Void", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCredit(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.transactions.On("Credit", mock.Anything,
		mock.MatchedBy(func(req models.TransactionRequest) bool { return req.Amount.Equal(decimal.NewFromInt(12)) }),
		mock.MatchedBy(func(c models.Card) bool { return c.Number() == "5555555555554444" }),
	).Return(models.CreditResult{TransactionResult: models.TransactionResult{
		ProviderID:          "sim",
		CommunicationResult: models.CommunicationSuccess,
		ProviderUniqueID:    "credit_1",
	}}, nil)

	body := fmt.Sprintf(`{"amount":"12","currencyCode":"USD","card":{"number":"5555555555554444","expirationMonth":2,"expirationYear":%d}}`, expYear())
	rec := ts.do(t, http.MethodPost, "/api/v1/credits", body, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp models.CreditResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CommunicationSuccess, resp.CommunicationResult)
	assert.Equal(t, "credit_1", resp.ProviderUniqueID)
}

func TestCreateCredit_InvalidRequest(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)

	ts.cards.On("GetCard", mock.Anything, mock.Anything, "3").Return(card, nil)
	ts.transactions.On("Credit", mock.Anything, mock.Anything, card).
		Return(models.CreditResult{}, &service.ServiceError{Code: service.ErrCodeValidation, Message: "validation failed"})

	rec := ts.do(t, http.MethodPost, "/api/v1/credits", `{"amount":"0","currencyCode":"USD","cardId":"3"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.ErrorCodeValidation, decodeError(t, rec).Error)
}
