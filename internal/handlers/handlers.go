// Package handlers implements HTTP handlers for the processor API.
package handlers

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"

	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/benx421/payment-gateway/processor/internal/service"
)

// pendingCompletionTTL bounds how long a transaction whose final write failed
// can be completed through the API.
const pendingCompletionTTL = 24 * time.Hour

// Handler serves every API endpoint. Requests without an X-Principal header
// act as defaultPrincipal.
type Handler struct {
	transactions     service.TransactionService
	cards            service.CardService
	healthChecker    service.HealthChecker
	validate         *validator.Validate
	defaultPrincipal models.Principal

	// pending holds transactions whose gateway outcome could not be saved,
	// keyed by principal and id, until CompleteTransaction records them.
	pending *cache.Cache
	logger  *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	transactions service.TransactionService,
	cards service.CardService,
	healthChecker service.HealthChecker,
	defaultPrincipal models.Principal,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		transactions:     transactions,
		cards:            cards,
		healthChecker:    healthChecker,
		validate:         validator.New(),
		defaultPrincipal: defaultPrincipal,
		pending:          cache.New(pendingCompletionTTL, time.Hour),
		logger:           logger,
	}
}
