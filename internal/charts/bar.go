// Package charts renders the dashboard aggregates as SVG bar charts.
package charts

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"unicode/utf8"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sales-dashboard/internal/models"
)

const (
	Height     = 400
	minWidth   = 480
	barWidth   = 40
	minSpacing = 24
	sideMargin = 160

	// labelCharWidth over-estimates the axis font's average glyph width so a
	// label never spills into its neighbour's slot.
	labelCharWidth = 8
	labelPadding   = 12
)

// BarColor is the fill used for every bar.
var BarColor = drawing.ColorFromHex("0083B8")

func barStyle() chart.Style {
	return chart.Style{
		FillColor:   BarColor,
		StrokeColor: BarColor,
		StrokeWidth: 0,
	}
}

// Spacing returns the gap between bars that leaves each bar's slot wide
// enough for the longest label on a single line.
func Spacing(groups []models.GroupTotal) int {
	longest := 0
	for _, g := range groups {
		longest = max(longest, utf8.RuneCountInString(g.Key))
	}
	return max(minSpacing, longest*labelCharWidth+labelPadding-barWidth)
}

// Width returns the canvas width needed to fit n bars spaced spacing apart.
func Width(n, spacing int) int {
	return max(minWidth, sideMargin+n*(barWidth+spacing))
}

// Bar writes groups as an SVG bar chart, one bar per group in the given
// order. An empty group list renders a placeholder instead of failing.
func Bar(w io.Writer, title string, groups []models.GroupTotal) error {
	if len(groups) == 0 {
		_, err := io.WriteString(w, placeholder(title))
		return err
	}

	bars := make([]chart.Value, len(groups))
	top := 0.0
	for i, g := range groups {
		bars[i] = chart.Value{Label: g.Key, Value: g.Total, Style: barStyle()}
		top = max(top, g.Total)
	}

	spacing := Spacing(groups)
	graph := chart.BarChart{
		Title:      title,
		Width:      Width(len(groups), spacing),
		Height:     Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 40}},
		XAxis:      chart.Style{TextWrap: chart.TextWrapNone},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max(top*1.1, 1)},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %q chart: %w", title, err)
	}
	return nil
}

// BarSVG is Bar rendered into a string.
func BarSVG(title string, groups []models.GroupTotal) (string, error) {
	var buf bytes.Buffer
	if err := Bar(&buf, title, groups); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func placeholder(title string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
		`<text x="50%%" y="24" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888">No data for the current selection</text>`+
		`</svg>`, minWidth, Height, html.EscapeString(title))
}
