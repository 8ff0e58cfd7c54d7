// Package templates holds the dashboard page and the fragments patched into
// it over SSE.
package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
)

const (
	DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

	KPIsID             = "kpis"
	ProductLineChartID = "chart-product-line"
	HourlyChartID      = "chart-hourly"
)

// View is everything the page needs for one selection.
type View struct {
	Options        models.Options
	Selection      models.Selection
	Snapshot       models.Snapshot
	ProductLineSVG string
	HourlySVG      string
}

// htmlWriter keeps the first write error so components can write freely and
// check once at the end.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Dashboard renders the full page.
func Dashboard(view View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(view.Selection)
		if err != nil {
			return fmt.Errorf("encode signals: %w", err)
		}

		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>Sales Dashboard</title>`)
		hw.raw(`<script type="module" src="` + DatastarScript + `"></script>`)
		hw.raw(`<style>` + stylesheet + `</style></head>`)
		hw.raw(`<body data-signals="`)
		hw.text(string(signals))
		hw.raw(`">`)
		hw.component(ctx, Sidebar(view.Options))
		hw.raw(`<main><h1>📊 Sales Dashboard</h1>`)
		hw.component(ctx, KPIs(view.Snapshot.Summary))
		hw.raw(`<hr><div class="charts">`)
		hw.component(ctx, Chart(ProductLineChartID, view.ProductLineSVG))
		hw.component(ctx, Chart(HourlyChartID, view.HourlySVG))
		hw.raw(`</div></main></body></html>`)
		return hw.err
	})
}

// Sidebar renders one multi-select per filter dimension, bound to the
// matching signal. Any change re-requests the filtered fragments.
func Sidebar(opts models.Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<aside class="sidebar"><h2>Please filter here:</h2>`)
		multiSelect(hw, "Select the city:", "cities", opts.Cities)
		multiSelect(hw, "Select the customer type:", "customerTypes", opts.CustomerTypes)
		multiSelect(hw, "Select the gender:", "genders", opts.Genders)
		hw.raw(`</aside>`)
		return hw.err
	})
}

func multiSelect(hw *htmlWriter, label, signal string, values []string) {
	hw.raw(`<label>`)
	hw.text(label)
	hw.raw(`<select multiple size="` + fmt.Sprint(max(len(values), 1)) + `" data-bind="` + signal + `"`)
	hw.raw(` data-on:change="@get('/sse/filter')">`)
	for _, v := range values {
		hw.raw(`<option value="`)
		hw.text(v)
		hw.raw(`" selected>`)
		hw.text(v)
		hw.raw(`</option>`)
	}
	hw.raw(`</select></label>`)
}

// KPIs renders the summary row.
func KPIs(summary models.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div id="` + KPIsID + `" class="kpis">`)
		kpi(hw, "Total Sales:", format.TotalSales(summary.TotalSales))
		kpi(hw, "Average Rating:", format.Rating(summary))
		kpi(hw, "Average Sales Per Transaction:", format.AverageSale(summary.AverageSale))
		hw.raw(`</div>`)
		return hw.err
	})
}

func kpi(hw *htmlWriter, label, value string) {
	hw.raw(`<div class="kpi"><h3>`)
	hw.text(label)
	hw.raw(`</h3><p>`)
	hw.text(value)
	hw.raw(`</p></div>`)
}

// Chart wraps a pre-rendered SVG in a patchable container.
func Chart(id, svg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div id="`)
		hw.text(id)
		hw.raw(`" class="chart">`)
		hw.raw(svg)
		hw.raw(`</div>`)
		return hw.err
	})
}

// Render writes c to a string, for use as an SSE fragment.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

const stylesheet = `
body{margin:0;display:flex;font-family:sans-serif;color:#262730}
.sidebar{width:260px;padding:1rem;background:#f0f2f6;min-height:100vh}
.sidebar label{display:block;margin-bottom:1rem}
.sidebar select{width:100%;margin-top:.25rem}
main{flex:1;padding:1rem 2rem}
.kpis{display:flex;gap:2rem}
.kpi{flex:1}
.charts{display:flex;flex-wrap:wrap;gap:1rem}
.chart{flex:1;min-width:480px;overflow-x:auto}
`
