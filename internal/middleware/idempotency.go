// Package middleware provides HTTP middleware components for the processor API.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	principalHeader      = "X-Principal"
	replayedHeader       = "X-Idempotent-Replayed"
)

// idempotentPaths are the POST endpoints that create something.
var idempotentPaths = []string{
	"/api/v1/sales",
	"/api/v1/authorizations",
	"/api/v1/credits",
	"/api/v1/cards",
}

// transactionActions are the POST /api/v1/transactions/{id}/<action> paths
// that need idempotency.
var transactionActions = []string{"capture", "void", "complete"}

const transactionsPrefix = "/api/v1/transactions/"

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// Idempotency replays the stored 2xx response of a mutating request sent
// again with the same Idempotency-Key. Keys are scoped to the X-Principal
// header, and a key reused with a different request body is rejected with
// 422. Storage failures never fail the request.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyKeyHeader)
			if key == "" || !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}
			if principal := r.Header.Get(principalHeader); principal != "" {
				key = principal + "/" + key
			}

			hash, err := hashBody(r)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
				return
			}

			ctx := r.Context()
			requestPath := normalizeRequestPath(r.URL.Path)
			log := logger.With("key", key, "path", requestPath)

			cached, err := repo.Get(ctx, key, requestPath)
			if err != nil {
				log.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				if cached.RequestHash != "" && cached.RequestHash != hash {
					log.Warn("idempotency key reused with a different request body")
					writeJSONError(w, http.StatusUnprocessableEntity, "idempotency_key_reused",
						"idempotency key was already used for a different request")
					return
				}

				log.Debug("returning cached idempotent response", "status", cached.ResponseStatus)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(replayedHeader, "true")
				w.WriteHeader(cached.ResponseStatus)
				_, _ = w.Write([]byte(cached.ResponseBody)) //nolint:errcheck // Best effort response writing
				return
			}

			var body bytes.Buffer
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if !shouldCacheResponse(status) {
				return
			}
			if err := repo.Store(ctx, &models.IdempotencyKey{
				Key:            key,
				RequestPath:    requestPath,
				RequestHash:    hash,
				ResponseStatus: status,
				ResponseBody:   body.String(),
				CreatedAt:      time.Now().UTC(),
			}); err != nil {
				log.Error("failed to store idempotency key", "error", err)
			}
		})
	}
}

// hashBody returns the hex SHA-256 of the request body and leaves the body
// readable for the next handler.
func hashBody(r *http.Request) (string, error) {
	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return "", err
		}
		_ = r.Body.Close()
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}

func requiresIdempotency(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	path := normalizeRequestPath(r.URL.Path)
	if slices.Contains(idempotentPaths, path) {
		return true
	}

	rest, ok := strings.CutPrefix(path, transactionsPrefix)
	if !ok {
		return false
	}
	id, action, ok := strings.Cut(rest, "/")
	return ok && id != "" && slices.Contains(transactionActions, action)
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
