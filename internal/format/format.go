// Package format renders KPI values the same way on the page and in the
// terminal report.
package format

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-dashboard/internal/models"
)

const Star = "⭐"

var printer = message.NewPrinter(language.English)

// TotalSales formats with thousands separators, e.g. "US $ 322,966".
func TotalSales(total int64) string {
	return printer.Sprintf("US $ %d", total)
}

func AverageSale(avg float64) string {
	return printer.Sprintf("US $ %.2f", avg)
}

// Rating is the average rating followed by one star per rounded point.
func Rating(summary models.Summary) string {
	stars := strings.Join(slices.Repeat([]string{Star}, max(summary.Stars, 0)), "")
	return strings.TrimSpace(fmt.Sprintf("%.1f %s", summary.AverageRating, stars))
}

// Amount formats a group total with two decimals and thousands separators.
func Amount(v float64) string {
	return printer.Sprintf("%.2f", v)
}
