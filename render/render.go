package render

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/covid-monitor/chart"
)

const (
	logPrefix = "render"
)

var (
	ErrEmptyDashboard = fmt.Errorf("dashboard has no panel")
)

// Dashboard - a grid of charts, row by row
type Dashboard struct {
	Title     string
	Language  string
	Generated time.Time
	Footer    string
	Rows      [][]chart.Spec
}

// Panels returns the number of charts of the dashboard.
func (d Dashboard) Panels() int {
	count := 0
	for _, row := range d.Rows {
		count += len(row)
	}
	return count
}

func (d Dashboard) columns() int {
	cols := 0
	for _, row := range d.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}
