package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/benx421/payment-gateway/processor/internal/api"
	"github.com/benx421/payment-gateway/processor/internal/middleware"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	handler *Handler,
	idempotencyRepo middleware.IdempotencyRepository,
	logger *slog.Logger,
) (http.Handler, error) {
	doc, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	validator, err := middleware.RequestValidator(doc, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(validator)
	r.Use(middleware.Idempotency(idempotencyRepo, logger))

	api.RegisterDocsRoutes(r)
	r.Get("/health", handler.GetHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sales", handler.CreateSale)
		r.Post("/authorizations", handler.CreateAuthorization)
		r.Post("/credits", handler.CreateCredit)

		r.Route("/transactions/{id}", func(r chi.Router) {
			r.Get("/", handler.GetTransaction)
			r.Post("/capture", handler.CaptureTransaction)
			r.Post("/void", handler.VoidTransaction)
			r.Post("/complete", handler.CompleteTransaction)
		})

		r.Post("/cards", handler.StoreCard)
		r.Post("/cards/sync", handler.SynchronizeCards)
		r.Route("/cards/{id}", func(r chi.Router) {
			r.Get("/", handler.GetCard)
			r.Put("/", handler.UpdateCard)
			r.Delete("/", handler.DeleteCard)
			r.Put("/number", handler.UpdateCardNumber)
			r.Put("/expiration", handler.UpdateCardExpiration)
		})
	})

	return r, nil
}
