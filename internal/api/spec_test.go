package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	paths := []string{
		"/health",
		"/api/v1/sales",
		"/api/v1/authorizations",
		"/api/v1/transactions/{id}",
		"/api/v1/transactions/{id}/capture",
		"/api/v1/transactions/{id}/void",
		"/api/v1/transactions/{id}/complete",
		"/api/v1/credits",
		"/api/v1/cards",
		"/api/v1/cards/sync",
		"/api/v1/cards/{id}",
		"/api/v1/cards/{id}/number",
		"/api/v1/cards/{id}/expiration",
	}
	for _, p := range paths {
		assert.NotNil(t, doc.Paths.Find(p), "missing path %s", p)
	}

	again, err := GetSwagger()
	require.NoError(t, err)
	assert.Same(t, doc, again)
}

func TestDocsRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterDocsRoutes(r)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
	}{
		{name: "root redirects", path: "/", wantStatus: http.StatusMovedPermanently},
		{name: "swagger ui", path: "/docs", wantStatus: http.StatusOK, wantType: "text/html; charset=utf-8"},
		{name: "openapi document", path: "/docs/openapi", wantStatus: http.StatusOK, wantType: "application/json"},
		{name: "openapi yaml", path: "/docs/openapi.yaml", wantStatus: http.StatusOK, wantType: "application/yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
		})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi", nil))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Contains(t, rec.Body.String(), "<title>Card Processor API 1.0.0 - Swagger UI</title>")
}
