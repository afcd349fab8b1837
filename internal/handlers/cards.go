package handlers

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

// StoreCard handles POST /api/v1/cards
func (h *Handler) StoreCard(w http.ResponseWriter, r *http.Request) {
	var body api.StoreCardRequest
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	card, err := newCard(*body.Card)
	if err != nil {
		h.writeServiceError(w, "store card", err)
		return
	}

	stored, err := h.cards.StoreCard(r.Context(), h.principal(r), body.GroupName, card)
	if err != nil {
		h.writeServiceError(w, "store card", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, api.NewCard(stored))
}

// loadCard fetches the card named by the id path parameter. It writes the
// error response itself and reports false on failure.
func (h *Handler) loadCard(w http.ResponseWriter, r *http.Request, op string) (models.Card, bool) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return models.Card{}, false
	}

	card, err := h.cards.GetCard(r.Context(), h.principal(r), id)
	if err != nil {
		h.writeServiceError(w, op, err)
		return models.Card{}, false
	}
	return card, true
}

// GetCard handles GET /api/v1/cards/{id}
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, ok := h.loadCard(w, r, "get card")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, api.NewCard(card))
}

// UpdateCard handles PUT /api/v1/cards/{id}. The body replaces every
// cardholder detail.
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var body api.CardholderDetails
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	card, ok := h.loadCard(w, r, "update card")
	if !ok {
		return
	}
	if err := applyDetails(&card, body); err != nil {
		h.writeServiceError(w, "update card", err)
		return
	}

	updated, err := h.cards.UpdateCard(r.Context(), h.principal(r), card)
	if err != nil {
		h.writeServiceError(w, "update card", err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.NewCard(updated))
}

// UpdateCardNumber handles PUT /api/v1/cards/{id}/number
func (h *Handler) UpdateCardNumber(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateCardNumberRequest
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	card, ok := h.loadCard(w, r, "update card number")
	if !ok {
		return
	}

	updated, err := h.cards.UpdateCardNumberAndExpiration(r.Context(), h.principal(r), card,
		body.Number, body.ExpirationMonth, body.ExpirationYear, body.CardCode)
	if err != nil {
		h.writeServiceError(w, "update card number", err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.NewCard(updated))
}

// UpdateCardExpiration handles PUT /api/v1/cards/{id}/expiration
func (h *Handler) UpdateCardExpiration(w http.ResponseWriter, r *http.Request) {
	var body api.Expiration
	if err := h.decode(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	card, ok := h.loadCard(w, r, "update card expiration")
	if !ok {
		return
	}

	updated, err := h.cards.UpdateCardExpiration(r.Context(), h.principal(r), card, body.ExpirationMonth, body.ExpirationYear)
	if err != nil {
		h.writeServiceError(w, "update card expiration", err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.NewCard(updated))
}

// DeleteCard handles DELETE /api/v1/cards/{id}
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	card, ok := h.loadCard(w, r, "delete card")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(r.Context(), h.principal(r), card); err != nil {
		h.writeServiceError(w, "delete card", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SynchronizeCards handles POST /api/v1/cards/sync
func (h *Handler) SynchronizeCards(w http.ResponseWriter, r *http.Request) {
	var dryRun *bool
	if err := runtime.BindQueryParameter("form", true, false, "dry_run", r.URL.Query(), &dryRun); err != nil {
		h.writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "invalid dry_run: "+err.Error())
		return
	}

	report, err := h.cards.SynchronizeStoredCards(r.Context(), h.principal(r), dryRun != nil && *dryRun)
	if err != nil {
		h.writeServiceError(w, "synchronize cards", err)
		return
	}

	h.writeJSON(w, http.StatusOK, syncReport(report))
}

func syncReport(report *service.SyncReport) api.SyncReport {
	out := api.SyncReport{
		ProviderID:     report.ProviderID,
		Supported:      report.Supported,
		DryRun:         report.DryRun,
		PersistedCount: report.PersistedCount,
		TokenizedCount: report.TokenizedCount,
		Replacements:   make([]api.CardReplacement, 0, len(report.Replacements)),
		NotTokenized:   make([]api.Card, 0, len(report.NotTokenized)),
		NotPersisted:   make([]models.TokenizedCard, 0, len(report.NotPersisted)),
	}
	for _, rep := range report.Replacements {
		out.Replacements = append(out.Replacements, api.CardReplacement{
			CardID:           rep.CardID,
			ProviderUniqueID: rep.ProviderUniqueID,
			Kind:             string(rep.Kind),
			From:             rep.From,
			To:               rep.To,
		})
	}
	for _, c := range report.NotTokenized {
		out.NotTokenized = append(out.NotTokenized, api.NewCard(c))
	}
	out.NotPersisted = append(out.NotPersisted, report.NotPersisted...)
	return out
}
