// Package report prints a dashboard snapshot to a terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
)

var (
	PrimaryColor = lipgloss.Color("#0083B8")
	SubtleColor  = lipgloss.Color("#666666")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))
)

// Write prints the selection, the KPI row and both aggregates.
func Write(w io.Writer, sel models.Selection, snapshot models.Snapshot) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📊 Sales Dashboard"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(describe(sel)))
	b.WriteString("\n\n")

	if snapshot.Summary.Transactions == 0 {
		b.WriteString(SubtleStyle.Render("No transactions match the current selection."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(kpis(snapshot.Summary))
	b.WriteString("\n\n")

	if err := groups(&b, "Sales by Product Line", "Product line", snapshot.ByProductLine); err != nil {
		return err
	}
	b.WriteString("\n")
	if err := groups(&b, "Sales by hour", "Hour", snapshot.ByHour); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func describe(sel models.Selection) string {
	return fmt.Sprintf("City: %s | Customer type: %s | Gender: %s",
		values(sel.Cities), values(sel.CustomerTypes), values(sel.Genders))
}

func values(v []string) string {
	if v == nil {
		return "all"
	}
	if len(v) == 0 {
		return "none"
	}
	return strings.Join(v, ", ")
}

func kpis(s models.Summary) string {
	box := func(label, value string) string {
		return BoxStyle.Render(LabelStyle.Render(label) + "\n" + value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Total Sales:", format.TotalSales(s.TotalSales)),
		box("Average Rating:", format.Rating(s)),
		box("Average Sales Per Transaction:", format.AverageSale(s.AverageSale)),
	)
}

func groups(b *strings.Builder, title, keyHeader string, totals []models.GroupTotal) error {
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", TableHeaderStyle.Render(keyHeader), TableHeaderStyle.Render("Total"))
	for _, g := range totals {
		fmt.Fprintf(tw, "%s\t%s\t\n", g.Key, format.Amount(g.Total))
	}
	return tw.Flush()
}
