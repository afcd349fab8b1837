package handlers

import (
	"fmt"
	"net/http"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

func pendingKey(principal models.Principal, id string) string {
	return string(principal) + "/" + id
}

// writeTransactionError writes the error of a transaction operation. When the
// gateway was reached but its outcome could not be saved, the transaction is
// returned in the body and kept for CompleteTransaction.
func (h *Handler) writeTransactionError(w http.ResponseWriter, r *http.Request, op string, txn *models.Transaction, err error) {
	if txn == nil || txn.ID == "" || !service.HasCode(err, service.ErrCodePersistence) {
		h.writeServiceError(w, op, err)
		return
	}

	principal := h.principal(r)
	h.pending.SetDefault(pendingKey(principal, txn.ID), txn.Clone())
	h.logger.Warn("transaction reached the gateway but was not fully recorded",
		"op", op, "transaction_id", txn.ID, "status", txn.Status, "principal", principal, "error", err)

	body := api.NewTransaction(txn)
	h.writeJSON(w, http.StatusInternalServerError, api.Error{
		Error:       api.ErrorCodePersistence,
		Message:     err.Error(),
		Transaction: &body,
	})
}

// CompleteTransaction handles POST /api/v1/transactions/{id}/complete. It
// saves the outcome of a transaction returned earlier with a
// persistence_error, without contacting the gateway.
func (h *Handler) CompleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	principal := h.principal(r)
	key := pendingKey(principal, id)
	cached, ok := h.pending.Get(key)
	if !ok {
		h.writeError(w, http.StatusNotFound, api.ErrorCodeNoPendingCompletion,
			fmt.Sprintf("transaction %s has no pending completion", id))
		return
	}
	txn := cached.(*models.Transaction).Clone()

	if err := h.transactions.RetryCompletion(r.Context(), principal, txn); err != nil {
		h.writeTransactionError(w, r, "complete", txn, err)
		return
	}

	h.pending.Delete(key)
	h.logger.Info("pending transaction completed", "transaction_id", id, "status", txn.Status)
	h.writeJSON(w, http.StatusOK, api.NewTransaction(txn))
}
