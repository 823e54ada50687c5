package schema

import (
	"sort"
	"strings"
	"time"
)

// wide table fields, used as column name prefixes
const (
	FieldValues          = "Values"
	FieldDaysSince       = "DaysSince"
	FieldDailyChange     = "DailyChange"
	FieldPercentOfGlobal = "PercentOfGlobal"
)

var Fields = []string{FieldValues, FieldDaysSince, FieldDailyChange, FieldPercentOfGlobal}

// Table - wide table, one row per date and one column per (field, country)
type Table struct {
	Metric  Metric
	Dates   []time.Time
	Columns []string

	cells map[string][]NullFloat
	rows  map[time.Time]int
}

// NewTable creates an empty table with one row per date.
func NewTable(metric Metric, dates []time.Time) *Table {
	rows := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rows[d] = i
	}

	return &Table{
		Metric:  metric,
		Dates:   dates,
		Columns: []string{},
		cells:   make(map[string][]NullFloat),
		rows:    rows,
	}
}

// ColumnName - e.g. Values_France
func ColumnName(field, country string) string {
	return field + "_" + country
}

// SplitColumnName is the inverse of ColumnName for the known fields.
func SplitColumnName(column string) (string, string, bool) {
	for _, f := range Fields {
		if strings.HasPrefix(column, f+"_") {
			return f, strings.TrimPrefix(column, f+"_"), true
		}
	}
	return "", "", false
}

// Row returns the row index of a date.
func (t *Table) Row(date time.Time) (int, bool) {
	i, ok := t.rows[date]
	return i, ok
}

// Set assigns a cell, adding the column on first use.
func (t *Table) Set(column string, date time.Time, value NullFloat) bool {
	row, ok := t.rows[date]
	if !ok {
		return false
	}

	cells, ok := t.cells[column]
	if !ok {
		cells = make([]NullFloat, len(t.Dates))
		t.cells[column] = cells
		t.Columns = append(t.Columns, column)
	}
	cells[row] = value
	return true
}

// Column returns the cells of a column, in date order.
func (t *Table) Column(column string) ([]NullFloat, bool) {
	cells, ok := t.cells[column]
	return cells, ok
}

// Cell returns a single cell, missing when the column does not exist.
func (t *Table) Cell(column string, row int) NullFloat {
	cells, ok := t.cells[column]
	if !ok || row < 0 || row >= len(cells) {
		return NullFloat{}
	}
	return cells[row]
}

// SortDates sorts dates ascending in place.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}
