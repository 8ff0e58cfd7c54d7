package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/sales"
	"sales-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestDashboard() *services.Dashboard {
	return services.NewDashboard(sales.NewTable([]models.Transaction{
		{City: "Yangon", Gender: "Female", CustomerType: "Member", ProductLine: "Health and beauty", Total: 10, Rating: 5, Time: "10:00:00", Hour: 10},
		{City: "Yangon", Gender: "Male", CustomerType: "Normal", ProductLine: "Sports and travel", Total: 20, Rating: 7, Time: "11:30:00", Hour: 11},
		{City: "Mandalay", Gender: "Female", CustomerType: "Normal", ProductLine: "Health and beauty", Total: 5, Rating: 9, Time: "10:45:00", Hour: 10},
	}), testLogger())
}

func newTestAPIHandlers() *APIHandlers {
	return NewAPIHandlers(createTestDashboard(), observability.NewMetrics(), testLogger())
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var response envelope[T]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.True(t, response.Success)
	return response.Data
}

func TestSelectionFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.Selection
	}{
		{"absent means all", "", models.Selection{}},
		{"repeated", "city=Yangon&city=Mandalay", models.Selection{Cities: []string{"Yangon", "Mandalay"}}},
		{"comma kept in value", "city=Yangon%2C%20Myanmar&city=Mandalay", models.Selection{Cities: []string{"Yangon, Myanmar", "Mandalay"}}},
		{"present but empty means none", "customer_type=", models.Selection{CustomerTypes: []string{}}},
		{"blank values dropped", "city=Yangon&city=&city=%20", models.Selection{Cities: []string{"Yangon"}}},
		{"values trimmed", "gender=%20Female%20", models.Selection{Genders: []string{"Female"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, SelectionFromQuery(q))
		})
	}
}

func TestAPIHandlers_HandleSummary(t *testing.T) {
	h := newTestAPIHandlers()

	tests := []struct {
		name  string
		query string
		want  models.Summary
	}{
		{"all", "", models.Summary{TotalSales: 35, AverageRating: 7, AverageSale: 11.67, Stars: 7, Transactions: 3}},
		{"one city", "?city=Yangon", models.Summary{TotalSales: 30, AverageRating: 6, AverageSale: 15, Stars: 6, Transactions: 2}},
		{"empty dimension", "?gender=", models.Summary{}},
		{"unknown value", "?city=Paris", models.Summary{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleSummary(w, httptest.NewRequest(http.MethodGet, "/api/summary"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Equal(t, tt.want, decode[models.Summary](t, w))
		})
	}
}

func TestAPIHandlers_HandleSalesByProductLine(t *testing.T) {
	h := newTestAPIHandlers()

	w := httptest.NewRecorder()
	h.HandleSalesByProductLine(w, httptest.NewRequest(http.MethodGet, "/api/sales-by-product-line", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.GroupTotal{
		{Key: "Health and beauty", Total: 15},
		{Key: "Sports and travel", Total: 20},
	}, decode[[]models.GroupTotal](t, w))
}

func TestAPIHandlers_HandleSalesByHour_Empty(t *testing.T) {
	h := newTestAPIHandlers()

	w := httptest.NewRecorder()
	h.HandleSalesByHour(w, httptest.NewRequest(http.MethodGet, "/api/sales-by-hour?city=", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestAPIHandlers_HandleTransactions(t *testing.T) {
	h := newTestAPIHandlers()

	t.Run("filtered", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleTransactions(w, httptest.NewRequest(http.MethodGet, "/api/transactions?gender=Female", nil))

		require.Equal(t, http.StatusOK, w.Code)
		rows := decode[[]models.Transaction](t, w)
		require.Len(t, rows, 2)
		assert.Equal(t, "Yangon", rows[0].City)
		assert.Equal(t, "Mandalay", rows[1].City)
	})

	t.Run("limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HandleTransactions(w, httptest.NewRequest(http.MethodGet, "/api/transactions?limit=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]models.Transaction](t, w), 1)
	})

	invalid := []struct {
		limit string
		code  string
	}{
		{"abc", "BAD_REQUEST"},
		{"1.5", "BAD_REQUEST"},
		{"0", "VALIDATION_ERROR"},
		{"-3", "VALIDATION_ERROR"},
		{"1001", "VALIDATION_ERROR"},
	}
	for _, tt := range invalid {
		t.Run("invalid limit "+tt.limit, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleTransactions(w, httptest.NewRequest(http.MethodGet, "/api/transactions?limit="+tt.limit, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	h := newTestAPIHandlers()

	w := httptest.NewRecorder()
	h.HandleOptions(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Options{
		Cities:        []string{"Yangon", "Mandalay"},
		Genders:       []string{"Female", "Male"},
		CustomerTypes: []string{"Member", "Normal"},
	}, decode[models.Options](t, w))
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	h := newTestAPIHandlers()

	w := httptest.NewRecorder()
	h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, w)["status"])
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	h := newTestAPIHandlers()

	w := httptest.NewRecorder()
	h.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)
	assert.Equal(t, float64(3), stats["record_count"])
}

func BenchmarkAPIHandlers_HandleSummary(b *testing.B) {
	h := newTestAPIHandlers()
	req := httptest.NewRequest(http.MethodGet, "/api/summary?city=Yangon", nil)

	for b.Loop() {
		h.HandleSummary(httptest.NewRecorder(), req)
	}
}
