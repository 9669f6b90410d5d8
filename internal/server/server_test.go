package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/handler"
)

// routeFarm overrides only the methods the routing tests touch.
type routeFarm struct {
	handler.FarmService
}

func (routeFarm) State() domain.FarmState {
	return domain.FarmState{PlayerLevel: 1}
}

func (routeFarm) MarketTrends() []domain.MarketTrend { return nil }

func (routeFarm) LivestockState() domain.LivestockState { return domain.LivestockState{} }

func TestServerRoutes(t *testing.T) {
	srv := NewServer(0, "", nil, nil, routeFarm{})

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "readyz without db", method: http.MethodGet, path: "/readyz", expectedStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/version", expectedStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "farm state", method: http.MethodGet, path: "/api/v1/farm/state", expectedStatus: http.StatusOK},
		{name: "market trends", method: http.MethodGet, path: "/api/v1/market/trends", expectedStatus: http.StatusOK},
		{name: "livestock", method: http.MethodGet, path: "/api/v1/livestock/", expectedStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", expectedStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/v1/farm/save", expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			srv.httpServer.Handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServerRoutes_AuthRequired(t *testing.T) {
	srv := NewServer(0, "topsecret", nil, nil, routeFarm{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/farm/state", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/farm/state", nil)
	req.Header.Set(HeaderAPIKey, "topsecret")
	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
