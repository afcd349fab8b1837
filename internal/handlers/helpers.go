package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

const principalHeader = "X-Principal"

func (h *Handler) principal(r *http.Request) models.Principal {
	if p := strings.TrimSpace(r.Header.Get(principalHeader)); p != "" {
		return models.Principal(p)
	}
	return h.defaultPrincipal
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	h.writeJSON(w, status, api.Error{Error: code, Message: message})
}

// decode reads a JSON body into dst and runs its struct validation.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func pathID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func mapServiceError(code string) (int, api.ErrorCode) {
	switch code {
	case service.ErrCodeValidation:
		return http.StatusBadRequest, api.ErrorCodeValidation
	case service.ErrCodeNotFound:
		return http.StatusNotFound, api.ErrorCodeNotFound
	case service.ErrCodeInvalidState:
		return http.StatusConflict, api.ErrorCodeInvalidState
	case service.ErrCodeProviderUniqueIDRequired:
		return http.StatusConflict, api.ErrorCodeProviderUniqueIDRequired
	case service.ErrCodeUnsupported:
		return http.StatusNotImplemented, api.ErrorCodeUnsupported
	case service.ErrCodeGateway:
		return http.StatusBadGateway, api.ErrorCodeGateway
	case service.ErrCodeUnexpectedResult:
		return http.StatusInternalServerError, api.ErrorCodeUnexpectedResult
	case service.ErrCodePersistence:
		return http.StatusInternalServerError, api.ErrorCodePersistence
	default:
		return http.StatusInternalServerError, api.ErrorCodeInternalError
	}
}

// writeServiceError maps err to an HTTP error response. Model validation
// errors raised while building a card are client errors too.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		if errors.Is(err, models.ErrValidation) {
			h.writeError(w, http.StatusBadRequest, api.ErrorCodeValidation, err.Error())
			return
		}
		h.logger.Error("unexpected error", "op", op, "error", err)
		h.writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		return
	}

	status, code := mapServiceError(svcErr.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "op", op, "code", svcErr.Code, "error", err)
	}
	h.writeError(w, status, code, svcErr.Error())
}

func applyDetails(card *models.Card, d api.CardholderDetails) error {
	card.FirstName = d.FirstName
	card.LastName = d.LastName
	card.CompanyName = d.CompanyName
	card.Phone = d.Phone
	card.Fax = d.Fax
	card.CustomerID = d.CustomerID
	card.StreetAddress1 = d.StreetAddress1
	card.StreetAddress2 = d.StreetAddress2
	card.City = d.City
	card.State = d.State
	card.PostalCode = d.PostalCode
	card.Comments = d.Comments

	if err := card.SetEmail(d.Email); err != nil {
		return err
	}
	if err := card.SetCustomerTaxID(d.CustomerTaxID); err != nil {
		return err
	}
	return card.SetCountryCode(d.CountryCode)
}

// newCard builds a models.Card from client input. Expiration month and year
// are each optional.
func newCard(in api.CardInput) (models.Card, error) {
	card := models.NewCard()
	if err := applyDetails(&card, in.CardholderDetails); err != nil {
		return models.Card{}, err
	}
	if err := card.SetNumber(in.Number); err != nil {
		return models.Card{}, err
	}
	if err := card.SetCardCode(in.CardCode); err != nil {
		return models.Card{}, err
	}
	if in.ExpirationMonth != nil {
		if err := card.SetExpirationMonth(*in.ExpirationMonth); err != nil {
			return models.Card{}, err
		}
	}
	if in.ExpirationYear != nil {
		if err := card.SetExpirationYear(*in.ExpirationYear); err != nil {
			return models.Card{}, err
		}
	}
	return card, nil
}
