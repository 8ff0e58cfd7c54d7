package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/sales"
	"sales-dashboard/internal/services"
)

const (
	cacheControl        = "no-store"
	defaultTransactions = 100
	maxTransactions     = 1000
)

// Query parameter names for the three filter dimensions.
const (
	ParamCity         = "city"
	ParamGender       = "gender"
	ParamCustomerType = "customer_type"
)

type APIHandlers struct {
	dashboard *services.Dashboard
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, metrics *observability.Metrics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
}

// SelectionFromQuery reads the filter dimensions from q. A parameter that is
// absent selects every value; a present parameter selects exactly the listed
// values, one per repeated parameter. Values are taken whole, so a value may
// itself contain a comma.
func SelectionFromQuery(q url.Values) models.Selection {
	return models.Selection{
		Cities:        queryValues(q, ParamCity),
		Genders:       queryValues(q, ParamGender),
		CustomerTypes: queryValues(q, ParamCustomerType),
	}
}

func queryValues(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func (h *APIHandlers) selection(r *http.Request) models.Selection {
	h.metrics.CountSelection("api")
	return SelectionFromQuery(r.URL.Query())
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, r, h.dashboard.Options())
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	filtered := h.dashboard.Filter(h.selection(r))

	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	errors.WriteSuccessWithHeaders(w, r, sales.Summarize(filtered), headers)
}

func (h *APIHandlers) HandleSalesByProductLine(w http.ResponseWriter, r *http.Request) {
	filtered := h.dashboard.Filter(h.selection(r))

	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	errors.WriteSuccessWithHeaders(w, r, sales.GroupSum(filtered, sales.GroupByProductLine), headers)
}

func (h *APIHandlers) HandleSalesByHour(w http.ResponseWriter, r *http.Request) {
	filtered := h.dashboard.Filter(h.selection(r))

	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	errors.WriteSuccessWithHeaders(w, r, sales.GroupSum(filtered, sales.GroupByHour), headers)
}

func (h *APIHandlers) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultTransactions
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "limit must be an integer"))
			return
		}
		if n < 1 || n > maxTransactions {
			errors.WriteError(w, r, h.logger,
				errors.Validation("limit must be between 1 and "+strconv.Itoa(maxTransactions)))
			return
		}
		limit = n
	}

	rows := h.dashboard.Rows(h.selection(r), limit)

	headers := map[string]string{
		"Cache-Control": cacheControl,
	}

	errors.WriteSuccessWithHeaders(w, r, rows, headers)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, r, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, r, h.dashboard.Stats())
}
