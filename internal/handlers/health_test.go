package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gauchoeats/gaucho/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		wantStatus     string
	}{
		{"no database", nil, http.StatusOK, "healthy"},
		{"database up", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "healthy"},
		{"database down", pingFunc(func(context.Context) error { return errors.New("connection refused") }), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(logger.Discard(), tt.db)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus || resp.Version != Version {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}
