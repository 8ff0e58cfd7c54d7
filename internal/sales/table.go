// Package sales loads the supermarket sales sheet and computes the
// filtered views and aggregates shown on the dashboard.
package sales

import (
	"errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"sales-dashboard/internal/models"
)

// Column names as they appear in the sheet header, plus the derived hour.
const (
	ColCity         = "City"
	ColGender       = "Gender"
	ColCustomerType = "Customer_type"
	ColProductLine  = "Product line"
	ColTotal        = "Total"
	ColRating       = "Rating"
	ColTime         = "Time"
	ColHour         = "hour"
)

var (
	ErrFileNotFound   = errors.New("input file not found")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrParse          = errors.New("parse error")
	ErrUnknownColumn  = errors.New("unknown column")
)

// Table is an immutable, ordered set of transactions. Operations on a Table
// return new tables and never modify the receiver.
type Table struct {
	df dataframe.DataFrame
}

// NewTable builds a table from records, keeping their order.
func NewTable(records []models.Transaction) *Table {
	n := len(records)
	cities := make([]string, n)
	genders := make([]string, n)
	customerTypes := make([]string, n)
	productLines := make([]string, n)
	totals := make([]float64, n)
	ratings := make([]float64, n)
	times := make([]string, n)
	hours := make([]int, n)

	for i, tx := range records {
		cities[i] = tx.City
		genders[i] = tx.Gender
		customerTypes[i] = tx.CustomerType
		productLines[i] = tx.ProductLine
		totals[i] = tx.Total
		ratings[i] = tx.Rating
		times[i] = tx.Time
		hours[i] = tx.Hour
	}

	return &Table{df: dataframe.New(
		series.New(cities, series.String, ColCity),
		series.New(genders, series.String, ColGender),
		series.New(customerTypes, series.String, ColCustomerType),
		series.New(productLines, series.String, ColProductLine),
		series.New(totals, series.Float, ColTotal),
		series.New(ratings, series.Float, ColRating),
		series.New(times, series.String, ColTime),
		series.New(hours, series.Int, ColHour),
	)}
}

func emptyTable() *Table {
	return NewTable(nil)
}

func (t *Table) Len() int {
	return t.df.Nrow()
}

func (t *Table) hasColumn(name string) bool {
	for _, col := range t.df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// Records materializes the table back into transactions.
func (t *Table) Records() []models.Transaction {
	n := t.Len()
	if n == 0 {
		return []models.Transaction{}
	}

	cities := t.df.Col(ColCity).Records()
	genders := t.df.Col(ColGender).Records()
	customerTypes := t.df.Col(ColCustomerType).Records()
	productLines := t.df.Col(ColProductLine).Records()
	totals := t.df.Col(ColTotal).Float()
	ratings := t.df.Col(ColRating).Float()
	times := t.df.Col(ColTime).Records()
	// hour is always built as series.Int
	hours, _ := t.df.Col(ColHour).Int()

	records := make([]models.Transaction, n)
	for i := range records {
		records[i] = models.Transaction{
			City:         cities[i],
			Gender:       genders[i],
			CustomerType: customerTypes[i],
			ProductLine:  productLines[i],
			Total:        totals[i],
			Rating:       ratings[i],
			Time:         times[i],
			Hour:         hours[i],
		}
	}
	return records
}

// Distinct returns the distinct values of a column in first-seen order.
func (t *Table) Distinct(column string) ([]string, error) {
	if !t.hasColumn(column) {
		return nil, ErrUnknownColumn
	}

	values := t.df.Col(column).Records()
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	return distinct, nil
}
