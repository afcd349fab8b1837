package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

func recordFailure(op string) error {
	return &service.ServiceError{Code: service.ErrCodePersistence, Message: "failed to " + op, Err: errors.New("disk full")}
}

func matchTransactionID(id string) interface{} {
	return mock.MatchedBy(func(txn *models.Transaction) bool { return txn.ID == id })
}

func TestCompleteTransaction_AfterSaleNotRecorded(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)
	captured := approvedTransaction("9", models.TransactionStatusCaptured, card)

	ts.cards.On("GetCard", mock.Anything, mock.Anything, "3").Return(card, nil)
	ts.transactions.On("Sale", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(captured, recordFailure("record sale"))
	ts.transactions.On("RetryCompletion", mock.Anything, models.Principal("alice"), matchTransactionID("9")).
		Return(nil).Once()

	headers := map[string]string{"X-Principal": "alice"}
	rec := ts.do(t, http.MethodPost, "/api/v1/sales", `{"amount":"5","currencyCode":"USD","cardId":"3"}`, headers)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, decodeError(t, rec).Transaction)

	rec = ts.do(t, http.MethodPost, "/api/v1/transactions/9/complete", "", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeTransaction(t, rec.Body.Bytes())
	assert.Equal(t, "9", resp.ID)
	assert.Equal(t, models.TransactionStatusCaptured, resp.Status)

	rec = ts.do(t, http.MethodPost, "/api/v1/transactions/9/complete", "", headers)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.ErrorCodeNoPendingCompletion, decodeError(t, rec).Error)
}

func TestCompleteTransaction_AfterCaptureNotRecorded(t *testing.T) {
	ts := newTestServer(t, nil)
	card := storedCard(t)
	authorized := approvedTransaction("7", models.TransactionStatusAuthorized, card)
	captured := authorized.Clone()
	captured.Status = models.TransactionStatusCaptured

	ts.transactions.On("GetTransaction", mock.Anything, mock.Anything, "7").Return(authorized, nil)
	ts.transactions.On("Capture", mock.Anything, mock.Anything, authorized).Return(captured, recordFailure("record capture"))
	ts.transactions.On("RetryCompletion", mock.Anything, models.Principal(defaultPrincipal), matchTransactionID("7")).
		Return(recordFailure("record capture")).Once()
	ts.transactions.On("RetryCompletion", mock.Anything, models.Principal(defaultPrincipal), matchTransactionID("7")).
		Return(nil).Once()

	rec := ts.do(t, http.MethodPost, "/api/v1/transactions/7/capture", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, models.TransactionStatusCaptured, resp.Transaction.Status)

	rec = ts.do(t, http.MethodPost, "/api/v1/transactions/7/complete", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp = decodeError(t, rec)
	assert.Equal(t, api.ErrorCodePersistence, resp.Error)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, "7", resp.Transaction.ID)

	rec = ts.do(t, http.MethodPost, "/api/v1/transactions/7/complete", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TransactionStatusCaptured, decodeTransaction(t, rec.Body.Bytes()).Status)
}

func TestCompleteTransaction_NothingPending(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "never failed"},
		{name: "other principal", headers: map[string]string{"X-Principal": "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			if tt.headers != nil {
				card := storedCard(t)
				ts.cards.On("GetCard", mock.Anything, mock.Anything, "3").Return(card, nil)
				ts.transactions.On("Sale", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(approvedTransaction("9", models.TransactionStatusCaptured, card), recordFailure("record sale"))
				rec := ts.do(t, http.MethodPost, "/api/v1/sales", `{"amount":"5","currencyCode":"USD","cardId":"3"}`,
					map[string]string{"X-Principal": "alice"})
				require.Equal(t, http.StatusInternalServerError, rec.Code)
			}

			rec := ts.do(t, http.MethodPost, "/api/v1/transactions/9/complete", "", tt.headers)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, api.ErrorCodeNoPendingCompletion, decodeError(t, rec).Error)
			ts.transactions.AssertNotCalled(t, "RetryCompletion", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionError_OnlyPersistenceCarriesTransaction(t *testing.T) {
	tests := []struct {
		name       string
		txn        *models.Transaction
		err        error
		wantStatus int
		wantCode   api.ErrorCode
	}{
		{
			name:       "gateway error",
			err:        &service.ServiceError{Code: service.ErrCodeGateway, Message: "gateway unavailable"},
			wantStatus: http.StatusBadGateway,
			wantCode:   api.ErrorCodeGateway,
		},
		{
			name:       "insert failed before the gateway",
			err:        recordFailure("record transaction"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.ErrorCodePersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			card := storedCard(t)

			ts.cards.On("GetCard", mock.Anything, mock.Anything, "3").Return(card, nil)
			ts.transactions.On("Sale", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.txn, tt.err)

			rec := ts.do(t, http.MethodPost, "/api/v1/sales", `{"amount":"5","currencyCode":"USD","cardId":"3"}`, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Nil(t, resp.Transaction)
		})
	}
}
