package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
)

func TestSummarize(t *testing.T) {
	table := NewTable([]models.Transaction{
		{City: "Yangon", Total: 10, Rating: 5, Time: "10:00:00", Hour: 10},
		{City: "Yangon", Total: 20, Rating: 7, Time: "11:00:00", Hour: 11},
	})

	got := Summarize(table)

	assert.Equal(t, int64(30), got.TotalSales)
	assert.Equal(t, 6.0, got.AverageRating)
	assert.Equal(t, 15.0, got.AverageSale)
	assert.Equal(t, 6, got.Stars)
	assert.Equal(t, 2, got.Transactions)
}

func TestSummarize_Rounding(t *testing.T) {
	table := NewTable([]models.Transaction{
		{Total: 548.9715, Rating: 9.1},
		{Total: 80.22, Rating: 9.6},
		{Total: 340.5255, Rating: 7.4},
	})

	got := Summarize(table)

	// 969.717 truncated
	assert.Equal(t, int64(969), got.TotalSales)
	// 26.1 / 3 = 8.7
	assert.Equal(t, 8.7, got.AverageRating)
	// 969.717 / 3 = 323.239
	assert.Equal(t, 323.24, got.AverageSale)
	assert.Equal(t, 9, got.Stars)
}

func TestSummarize_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Transaction
		rating  float64
		sale    float64
		stars   int
	}{
		{
			name:    "rating tie goes to even tenth",
			records: []models.Transaction{{Total: 1, Rating: 6.2}, {Total: 1, Rating: 6.3}},
			rating:  6.2,
			sale:    1,
			stars:   6,
		},
		{
			name:    "stars tie goes to even",
			records: []models.Transaction{{Total: 1, Rating: 6}, {Total: 1, Rating: 7}},
			rating:  6.5,
			sale:    1,
			stars:   6,
		},
		{
			name:    "stars tie above odd",
			records: []models.Transaction{{Total: 1, Rating: 7}, {Total: 1, Rating: 8}},
			rating:  7.5,
			sale:    1,
			stars:   8,
		},
		{
			name:    "sale tie goes to even cent",
			records: []models.Transaction{{Total: 0.125, Rating: 5}, {Total: 0.125, Rating: 5}},
			rating:  5,
			sale:    0.12,
			stars:   5,
		},
		{
			name:    "sale tie above odd cent",
			records: []models.Transaction{{Total: 0.135, Rating: 5}, {Total: 0.135, Rating: 5}},
			rating:  5,
			sale:    0.14,
			stars:   5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(NewTable(tt.records))

			assert.Equal(t, tt.rating, got.AverageRating)
			assert.Equal(t, tt.sale, got.AverageSale)
			assert.Equal(t, tt.stars, got.Stars)
		})
	}
}

func TestSummarize_EmptyTable(t *testing.T) {
	got := Summarize(NewTable(nil))
	assert.Equal(t, models.Summary{}, got)
}

func TestGroupSumBy_City(t *testing.T) {
	table := NewTable([]models.Transaction{
		{City: "Yangon", Total: 100},
		{City: "Yangon", Total: 50},
		{City: "Naypyitaw", Total: 30},
	})

	got, err := GroupSumBy(table, ColCity)
	require.NoError(t, err)

	assert.Equal(t, []models.GroupTotal{
		{Key: "Naypyitaw", Total: 30},
		{Key: "Yangon", Total: 150},
	}, got)
}

func TestGroupSum_TiesKeepFirstSeenOrder(t *testing.T) {
	table := NewTable([]models.Transaction{
		{ProductLine: "Sports and travel", Total: 40},
		{ProductLine: "Health and beauty", Total: 10},
		{ProductLine: "Food and beverages", Total: 25},
		{ProductLine: "Health and beauty", Total: 15},
		{ProductLine: "Fashion accessories", Total: 25},
	})

	got := GroupSum(table, GroupByProductLine)

	assert.Equal(t, []models.GroupTotal{
		{Key: "Health and beauty", Total: 25},
		{Key: "Food and beverages", Total: 25},
		{Key: "Fashion accessories", Total: 25},
		{Key: "Sports and travel", Total: 40},
	}, got)
}

func TestGroupSum_ByHour(t *testing.T) {
	table := NewTable([]models.Transaction{
		{Total: 12.5, Time: "13:08:00", Hour: 13},
		{Total: 7.5, Time: "10:29:00", Hour: 10},
		{Total: 1, Time: "13:59:59", Hour: 13},
	})

	got := GroupSum(table, GroupByHour)

	assert.Equal(t, []models.GroupTotal{
		{Key: "10", Total: 7.5},
		{Key: "13", Total: 13.5},
	}, got)
}

func TestGroupSum_SortedAndConserving(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		table := NewTable(randomTransactions(seed, 300))
		total := 0.0
		for _, tx := range table.Records() {
			total += tx.Total
		}

		for _, key := range []GroupKey{GroupByProductLine, GroupByHour} {
			groups := GroupSum(table, key)
			require.NotEmpty(t, groups)

			sum := 0.0
			for i, g := range groups {
				sum += g.Total
				if i > 0 {
					assert.LessOrEqual(t, groups[i-1].Total, g.Total, "seed %d key %s not sorted", seed, key)
				}
			}
			assert.InDelta(t, total, sum, 1e-6, "seed %d key %s does not conserve Total", seed, key)
		}
	}
}

func TestGroupSum_EmptyTable(t *testing.T) {
	got := GroupSum(NewTable(nil), GroupByProductLine)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroupSumBy_UnknownColumn(t *testing.T) {
	_, err := GroupSumBy(NewTable(nil), "Branch")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestInHourOrder(t *testing.T) {
	groups := []models.GroupTotal{
		{Key: "10", Total: 80.22},
		{Key: "20", Total: 489.048},
		{Key: "9", Total: 500},
		{Key: "13", Total: 889.497},
	}

	got := InHourOrder(groups)

	assert.Equal(t, []models.GroupTotal{
		{Key: "9", Total: 500},
		{Key: "10", Total: 80.22},
		{Key: "13", Total: 889.497},
		{Key: "20", Total: 489.048},
	}, got)
	// the aggregate itself stays ascending by total
	assert.Equal(t, "10", groups[0].Key)
}

func TestInHourOrder_Empty(t *testing.T) {
	assert.Empty(t, InHourOrder([]models.GroupTotal{}))
}
