package sales

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/models"
)

// Layout of the Sales sheet.
const (
	SheetName  = "Sales"
	SkipRows   = 3
	MaxRows    = 1000
	TimeLayout = "15:04:05"

	firstColumn = 1  // B
	lastColumn  = 17 // R
)

var requiredColumns = []string{
	ColCity,
	ColGender,
	ColCustomerType,
	ColProductLine,
	ColTotal,
	ColRating,
	ColTime,
}

// Load reads the Sales sheet of the workbook at path. The first SkipRows rows
// are a banner, the next row is the header and at most MaxRows data rows
// follow. Only columns B through R are read.
func Load(ctx context.Context, path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	// Time is read as displayed, numbers as stored.
	display, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrSchemaMismatch, SheetName, err)
	}
	raw, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrSchemaMismatch, SheetName, err)
	}

	if len(display) <= SkipRows {
		return nil, fmt.Errorf("%w: sheet %q has no header row", ErrSchemaMismatch, SheetName)
	}

	index, err := columnIndex(window(display[SkipRows]))
	if err != nil {
		return nil, err
	}

	data := display[SkipRows+1:]
	if len(data) > MaxRows {
		data = data[:MaxRows]
	}

	records := make([]models.Transaction, 0, len(data))
	for i, row := range data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells := window(row)
		if blank(cells) {
			continue
		}

		var rawCells []string
		if pos := SkipRows + 1 + i; pos < len(raw) {
			rawCells = window(raw[pos])
		} else {
			rawCells = cells
		}

		tx, err := parseRow(cells, rawCells, index)
		if err != nil {
			// sheet rows are 1-based
			return nil, fmt.Errorf("row %d: %w", SkipRows+2+i, err)
		}
		records = append(records, tx)
	}

	return NewTable(records), nil
}

// window cuts a sheet row down to columns B..R, padding short rows.
func window(row []string) []string {
	cells := make([]string, lastColumn-firstColumn+1)
	for i := range cells {
		if c := firstColumn + i; c < len(row) {
			cells[i] = strings.TrimSpace(row[c])
		}
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup && name != "" {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(cells, rawCells []string, index map[string]int) (models.Transaction, error) {
	timeValue := cells[index[ColTime]]
	clock, err := time.Parse(TimeLayout, timeValue)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %s %q is not HH:MM:SS", ErrParse, ColTime, timeValue)
	}

	total, err := parseNumber(rawCells, index, ColTotal)
	if err != nil {
		return models.Transaction{}, err
	}

	rating, err := parseNumber(rawCells, index, ColRating)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		City:         cells[index[ColCity]],
		Gender:       cells[index[ColGender]],
		CustomerType: cells[index[ColCustomerType]],
		ProductLine:  cells[index[ColProductLine]],
		Total:        total,
		Rating:       rating,
		Time:         timeValue,
		Hour:         clock.Hour(),
	}, nil
}

func parseNumber(cells []string, index map[string]int, column string) (float64, error) {
	value := cells[index[column]]
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrParse, column, value)
	}
	return n, nil
}
