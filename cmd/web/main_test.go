package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/sales"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
)

func newTestDashboard() *services.Dashboard {
	return services.NewDashboard(sales.NewTable([]models.Transaction{
		{City: "Yangon", Gender: "Female", CustomerType: "Member", ProductLine: "Health and beauty", Total: 548.9715, Rating: 9.1, Time: "13:08:00", Hour: 13},
		{City: "Naypyitaw", Gender: "Female", CustomerType: "Normal", ProductLine: "Electronic accessories", Total: 80.22, Rating: 9.6, Time: "10:29:00", Hour: 10},
		{City: "Yangon", Gender: "Male", CustomerType: "Normal", ProductLine: "Home and lifestyle", Total: 340.5255, Rating: 7.4, Time: "13:23:00", Hour: 13},
	}), nil)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dashboard := newTestDashboard()

	templateHandlers := &server.TemplateHandlers{Dashboard: dashboardPage(dashboard, logger)}
	srv := server.NewServer(dashboard, logger, templateHandlers, observability.NewMetrics())

	security := config.SecurityConfig{AllowedOrigins: []string{"http://localhost:8084"}}
	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(security),
		middleware.RateLimit(middleware.NewRateLimiter(security), logger),
	)(srv)
}

func TestServer_Routes(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		path        string
		contentType string
	}{
		{"/", "text/html"},
		{"/api/options", "application/json"},
		{"/api/summary", "application/json"},
		{"/api/sales-by-product-line", "application/json"},
		{"/api/sales-by-hour", "application/json"},
		{"/api/transactions", "application/json"},
		{"/charts/product-line.svg", "image/svg+xml"},
		{"/charts/hourly.svg", "image/svg+xml"},
		{"/health", "application/json"},
		{"/admin/stats", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

			if tt.contentType == "application/json" {
				var result map[string]any
				require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
				assert.Equal(t, true, result["success"])
			}
		})
	}
}

func TestServer_SSERoute(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sse/filter", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "US $ 969")
}

func TestServer_ErrorHandling(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodPost, "/api/summary", http.StatusMethodNotAllowed},
		{http.MethodPut, "/", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/health", http.StatusMethodNotAllowed},
		{http.MethodPatch, "/charts/hourly.svg", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/transactions?limit=zero", http.StatusBadRequest},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestDashboardPage(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dashboardPage(newTestDashboard(), logger)(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	expected := []string{
		"Sales Dashboard",
		"Please filter here:",
		"Select the city:",
		"Select the customer type:",
		"Select the gender:",
		"Total Sales:",
		"US $ 969",
		"Average Rating:",
		"8.7",
		"Average Sales Per Transaction:",
		"US $ 323.24",
		"Sales by Product Line",
		"Sales by hour",
	}
	for _, s := range expected {
		assert.Contains(t, body, s)
	}
}

func TestDashboardPage_Preselected(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dashboardPage(newTestDashboard(), logger)(w, httptest.NewRequest(http.MethodGet, "/?city=Naypyitaw", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "US $ 80")
	assert.True(t, strings.Contains(body, "&#34;cities&#34;:[&#34;Naypyitaw&#34;]"))
}
