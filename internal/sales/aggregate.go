package sales

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// GroupKey selects the column a chart aggregate is grouped by.
type GroupKey string

const (
	GroupByProductLine GroupKey = ColProductLine
	GroupByHour        GroupKey = ColHour
)

// Summarize computes the KPI row over t. Averages round half to even. An
// empty table yields a zero Summary.
func Summarize(t *Table) models.Summary {
	n := t.Len()
	if n == 0 {
		return models.Summary{}
	}

	total := sum(t.df.Col(ColTotal).Float())
	rating := sum(t.df.Col(ColRating).Float())
	count := decimal.NewFromInt(int64(n))

	averageRating := rating.Div(count).RoundBank(1)

	return models.Summary{
		TotalSales:    total.IntPart(),
		AverageRating: averageRating.InexactFloat64(),
		AverageSale:   total.Div(count).RoundBank(2).InexactFloat64(),
		Stars:         int(averageRating.RoundBank(0).IntPart()),
		Transactions:  n,
	}
}

// GroupSum sums Total per value of key, ascending by the summed Total.
// Groups with equal sums keep the order in which they first appear.
func GroupSum(t *Table, key GroupKey) []models.GroupTotal {
	// both keys are columns of every Table
	groups, _ := GroupSumBy(t, string(key))
	return groups
}

// GroupSumBy is GroupSum over an arbitrary column.
func GroupSumBy(t *Table, column string) ([]models.GroupTotal, error) {
	if !t.hasColumn(column) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if t.Len() == 0 {
		return []models.GroupTotal{}, nil
	}

	keys := t.df.Col(column).Records()
	totals := t.df.Col(ColTotal).Float()

	type group struct {
		key string
		sum decimal.Decimal
	}

	index := make(map[string]int)
	groups := make([]group, 0)
	for i, key := range keys {
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, group{key: key})
		}
		groups[pos].sum = groups[pos].sum.Add(decimal.NewFromFloat(totals[i]))
	}

	slices.SortStableFunc(groups, func(a, b group) int {
		return a.sum.Cmp(b.sum)
	})

	result := make([]models.GroupTotal, len(groups))
	for i, g := range groups {
		result[i] = models.GroupTotal{Key: g.key, Total: g.sum.InexactFloat64()}
	}
	return result, nil
}

// InHourOrder returns a copy of groups keyed by hour, ordered by hour for
// plotting on a time axis. Keys that are not hours keep their relative order
// after the hours.
func InHourOrder(groups []models.GroupTotal) []models.GroupTotal {
	ordered := slices.Clone(groups)
	hour := func(g models.GroupTotal) int {
		h, err := strconv.Atoi(g.Key)
		if err != nil || h < 0 || h > 23 {
			return 24
		}
		return h
	}
	slices.SortStableFunc(ordered, func(a, b models.GroupTotal) int {
		return cmp.Compare(hour(a), hour(b))
	})
	return ordered
}

func sum(values []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}
