package handlers

import (
	"context"
	"net/http"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/models"
)

type startFunc func(ctx context.Context, principal models.Principal, groupName string, req models.TransactionRequest, card models.Card) (*models.Transaction, error)

// CreateSale handles POST /api/v1/sales
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, "sale", h.transactions.Sale)
}

// CreateAuthorization handles POST /api/v1/authorizations
func (h *Handler) CreateAuthorization(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, "authorize", h.transactions.Authorize)
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request, op string, run startFunc) {
	var body api.TransactionRequest
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	principal := h.principal(r)
	card, err := h.requestCard(r.Context(), principal, body)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}

	txn, err := run(r.Context(), principal, body.GroupName, body.Model(), card)
	if err != nil {
		h.writeTransactionError(w, r, op, txn, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, api.NewTransaction(txn))
}

// requestCard returns the stored card named by CardID, or a new card built
// from the inline card input.
func (h *Handler) requestCard(ctx context.Context, principal models.Principal, body api.TransactionRequest) (models.Card, error) {
	if body.CardID != "" {
		return h.cards.GetCard(ctx, principal, body.CardID)
	}
	return newCard(*body.Card)
}

// GetTransaction handles GET /api/v1/transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	txn, err := h.transactions.GetTransaction(r.Context(), h.principal(r), id)
	if err != nil {
		h.writeServiceError(w, "get transaction", err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.NewTransaction(txn))
}

// CaptureTransaction handles POST /api/v1/transactions/{id}/capture
func (h *Handler) CaptureTransaction(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, "capture", h.transactions.Capture)
}

// VoidTransaction handles POST /api/v1/transactions/{id}/void
func (h *Handler) VoidTransaction(w http.ResponseWriter, r *http.Request) {
	h.complete(w, r, "void", h.transactions.Void)
}

func (h *Handler) complete(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	run func(ctx context.Context, principal models.Principal, txn *models.Transaction) (*models.Transaction, error),
) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	principal := h.principal(r)
	txn, err := h.transactions.GetTransaction(r.Context(), principal, id)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}

	updated, err := run(r.Context(), principal, txn)
	if err != nil {
		h.writeTransactionError(w, r, op, updated, err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.NewTransaction(updated))
}

// CreateCredit handles POST /api/v1/credits. Credits are not recorded.
func (h *Handler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var body api.TransactionRequest
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	card, err := h.requestCard(r.Context(), h.principal(r), body)
	if err != nil {
		h.writeServiceError(w, "credit", err)
		return
	}

	result, err := h.transactions.Credit(r.Context(), body.Model(), card)
	if err != nil {
		h.writeServiceError(w, "credit", err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
