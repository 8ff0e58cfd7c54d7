package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"sales-dashboard/internal/charts"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/sales"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const (
	ProductLineChartTitle = "Sales by Product Line"
	HourlyChartTitle      = "Sales by hour"
)

// BuildView computes everything the page shows for sel. Nil dimensions of
// sel are resolved to every known value so the page can mark them selected.
// Work stops between steps once ctx is done.
func BuildView(ctx context.Context, d *services.Dashboard, sel models.Selection) (templates.View, error) {
	sel = d.Resolve(sel)
	snapshot := d.Snapshot(sel)

	view := templates.View{
		Options:   d.Options(),
		Selection: sel,
		Snapshot:  snapshot,
	}

	panels := []struct {
		title  string
		groups []models.GroupTotal
		out    *string
	}{
		{ProductLineChartTitle, chartBars(sales.GroupByProductLine, snapshot.ByProductLine), &view.ProductLineSVG},
		{HourlyChartTitle, chartBars(sales.GroupByHour, snapshot.ByHour), &view.HourlySVG},
	}
	for _, c := range panels {
		if err := ctx.Err(); err != nil {
			return templates.View{}, errors.Wrap(err, errors.CodeServiceUnavail, "dashboard rendering timed out")
		}
		svg, err := charts.BarSVG(c.title, c.groups)
		if err != nil {
			return templates.View{}, errors.Wrap(err, errors.CodeInternal, "failed to render chart")
		}
		*c.out = svg
	}
	return view, nil
}

// chartBars orders an aggregate for plotting. Product lines stay ascending by
// total; hours are plotted in hour order.
func chartBars(key sales.GroupKey, groups []models.GroupTotal) []models.GroupTotal {
	if key == sales.GroupByHour {
		return sales.InHourOrder(groups)
	}
	return groups
}

type ChartHandlers struct {
	dashboard *services.Dashboard
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewChartHandlers(dashboard *services.Dashboard, metrics *observability.Metrics, logger *slog.Logger) *ChartHandlers {
	return &ChartHandlers{
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
}

func (h *ChartHandlers) HandleProductLine(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, ProductLineChartTitle, sales.GroupByProductLine)
}

func (h *ChartHandlers) HandleHourly(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, HourlyChartTitle, sales.GroupByHour)
}

func (h *ChartHandlers) serveChart(w http.ResponseWriter, r *http.Request, title string, key sales.GroupKey) {
	h.metrics.CountSelection("chart")
	filtered := h.dashboard.Filter(SelectionFromQuery(r.URL.Query()))

	var buf bytes.Buffer
	if err := charts.Bar(&buf, title, chartBars(key, sales.GroupSum(filtered, key))); err != nil {
		errors.WriteError(w, r, h.logger, errors.Wrap(err, errors.CodeInternal, "failed to render chart"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
