package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sales-dashboard/internal/models"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"total sales", TotalSales(322966), "US $ 322,966"},
		{"small total", TotalSales(30), "US $ 30"},
		{"zero total", TotalSales(0), "US $ 0"},
		{"average sale", AverageSale(322.97), "US $ 322.97"},
		{"large average sale", AverageSale(1042.5), "US $ 1,042.50"},
		{"rating", Rating(models.Summary{AverageRating: 7, Stars: 7}), "7.0 ⭐⭐⭐⭐⭐⭐⭐"},
		{"no stars", Rating(models.Summary{}), "0.0"},
		{"amount", Amount(54337.5315), "54,337.53"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
