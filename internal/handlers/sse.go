package handlers

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	dashboard *services.Dashboard
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, metrics *observability.Metrics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
}

// HandleFilter reads the selection signals sent by the sidebar and patches
// the KPI row and both charts.
func (h *SSEHandlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var sel models.Selection
	if err := datastar.ReadSignals(r, &sel); err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "invalid filter signals"))
		return
	}
	h.metrics.CountSelection("sse")

	ctx := r.Context()
	logger := observability.RequestLogger(ctx, h.logger)

	view, err := BuildView(ctx, h.dashboard, sel)
	if err != nil {
		errors.WriteError(w, r, h.logger, err)
		return
	}

	fragments := []struct {
		name string
		html func() (string, error)
	}{
		{"kpis", func() (string, error) { return templates.Render(ctx, templates.KPIs(view.Snapshot.Summary)) }},
		{"product line chart", func() (string, error) {
			return templates.Render(ctx, templates.Chart(templates.ProductLineChartID, view.ProductLineSVG))
		}},
		{"hourly chart", func() (string, error) {
			return templates.Render(ctx, templates.Chart(templates.HourlyChartID, view.HourlySVG))
		}},
	}

	rendered := make([]string, 0, len(fragments))
	for _, f := range fragments {
		html, err := f.html()
		if err != nil {
			logger.Error("render fragment", "fragment", f.name, "error", err)
			errors.WriteError(w, r, h.logger, errors.Internal("failed to render dashboard"))
			return
		}
		rendered = append(rendered, html)
	}

	sse := datastar.NewSSE(w, r)
	for _, html := range rendered {
		if err := sse.PatchElements(html); err != nil {
			logger.Warn("patch elements", "error", err)
			return
		}
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
