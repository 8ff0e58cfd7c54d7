package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/sales"
)

// Dashboard serves filtered views of a table loaded once at startup. The
// table is never modified, so a Dashboard is safe for concurrent use.
type Dashboard struct {
	table     *sales.Table
	options   models.Options
	source    string
	loadedAt  time.Time
	snapshots atomic.Int64
	logger    *slog.Logger
}

func NewDashboard(table *sales.Table, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		table:    table,
		options:  optionsOf(table),
		loadedAt: time.Now(),
		logger:   logger,
	}
}

// LoadDashboard reads the workbook at path and wraps the result.
func LoadDashboard(ctx context.Context, path string, logger *slog.Logger) (*Dashboard, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	logger.Info("loading sales workbook", "filename", path, "sheet", sales.SheetName)

	table, err := sales.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load sales workbook: %w", err)
	}

	d := NewDashboard(table, logger)
	d.source = path

	logger.Info("sales workbook loaded",
		"records", table.Len(),
		"cities", len(d.options.Cities),
		"product_lines", len(d.productLines()),
		"duration", time.Since(start),
	)
	return d, nil
}

func optionsOf(table *sales.Table) models.Options {
	// the three columns exist in every table
	cities, _ := table.Distinct(sales.ColCity)
	genders, _ := table.Distinct(sales.ColGender)
	customerTypes, _ := table.Distinct(sales.ColCustomerType)
	return models.Options{
		Cities:        cities,
		Genders:       genders,
		CustomerTypes: customerTypes,
	}
}

func (d *Dashboard) productLines() []string {
	lines, _ := d.table.Distinct(sales.ColProductLine)
	return lines
}

// Table returns the full loaded table.
func (d *Dashboard) Table() *sales.Table {
	return d.table
}

// Options returns the selectable values per dimension, in first-seen order.
func (d *Dashboard) Options() models.Options {
	return models.Options{
		Cities:        clone(d.options.Cities),
		Genders:       clone(d.options.Genders),
		CustomerTypes: clone(d.options.CustomerTypes),
	}
}

// DefaultSelection accepts every known value.
func (d *Dashboard) DefaultSelection() models.Selection {
	return d.Resolve(models.Selection{})
}

// Resolve replaces nil dimensions of sel with every known value.
func (d *Dashboard) Resolve(sel models.Selection) models.Selection {
	if sel.Cities == nil {
		sel.Cities = clone(d.options.Cities)
	}
	if sel.Genders == nil {
		sel.Genders = clone(d.options.Genders)
	}
	if sel.CustomerTypes == nil {
		sel.CustomerTypes = clone(d.options.CustomerTypes)
	}
	return sel
}

func (d *Dashboard) Filter(sel models.Selection) *sales.Table {
	sel = d.Resolve(sel)
	return sales.Filter(d.table, sel.Cities, sel.Genders, sel.CustomerTypes)
}

// Snapshot computes the KPIs and both chart aggregates for sel.
func (d *Dashboard) Snapshot(sel models.Selection) models.Snapshot {
	filtered := d.Filter(sel)
	d.snapshots.Add(1)

	return models.Snapshot{
		Summary:       sales.Summarize(filtered),
		ByProductLine: sales.GroupSum(filtered, sales.GroupByProductLine),
		ByHour:        sales.GroupSum(filtered, sales.GroupByHour),
	}
}

// Rows returns up to limit filtered transactions in source order. A limit
// of zero or less returns every row.
func (d *Dashboard) Rows(sel models.Selection, limit int) []models.Transaction {
	rows := d.Filter(sel).Records()
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func (d *Dashboard) Stats() map[string]any {
	return map[string]any{
		"record_count":   d.table.Len(),
		"source":         d.source,
		"loaded_at":      d.loadedAt,
		"cities":         len(d.options.Cities),
		"genders":        len(d.options.Genders),
		"customer_types": len(d.options.CustomerTypes),
		"product_lines":  len(d.productLines()),
		"snapshots":      d.snapshots.Load(),
	}
}

func clone(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
