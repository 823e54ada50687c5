package render

import (
	"time"

	"github.com/bitmark-inc/covid-monitor/chart"
	"github.com/bitmark-inc/covid-monitor/schema"
)

func day(d int) time.Time {
	return time.Date(2020, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testTable() *schema.Table {
	dates := []time.Time{day(8), day(9), day(10)}
	t := schema.NewTable(schema.Metric{Kind: schema.Deaths, Threshold: 5}, dates)
	values := map[string][]float64{
		"Italy":  {366, 463, 631},
		"France": {19, 0, 48},
	}
	for _, country := range []string{"Italy", "France"} {
		for i, d := range dates {
			t.Set(schema.ColumnName(schema.FieldValues, country), d, schema.Float(values[country][i]))
			t.Set(schema.ColumnName(schema.FieldDaysSince, country), d, schema.Float(float64(i+1)))
		}
	}
	t.Set(schema.ColumnName(schema.FieldPercentOfGlobal, "Italy"), day(9), schema.Float(80))
	t.Set(schema.ColumnName(schema.FieldPercentOfGlobal, "France"), day(9), schema.Float(20))
	return t
}

var keys = []string{"Italy", "France"}

var testTooltip = []chart.TooltipField{
	{Title: "Name", Field: chart.FieldKey},
	{Title: "deaths", Field: chart.FieldY, Format: ",.0f"},
	{Title: "Date", Field: chart.FieldDate},
}

func lineChart() chart.Spec {
	return chart.TimeSeries(testTable(), keys, chart.Config{
		Title:   "COVID-19 cumulative deaths per country (log scale)",
		X:       chart.Axis{Label: "Days Since >5 deaths recorded", Type: chart.Linear, Range: &chart.Range{Min: 0, Max: 45}},
		Y:       chart.Axis{Label: "deaths", Type: chart.Log},
		Field:   schema.FieldValues,
		Aligned: true,
		Tooltip: testTooltip,
		Width:   300,
		Height:  200,
	}, chart.NewPalette(keys))
}

func areaChart() chart.Spec {
	return chart.StackedArea(testTable(), keys, chart.Config{
		Title:   "share of global new deaths",
		X:       chart.Axis{Type: chart.Datetime, Range: chart.DateRange(day(8), day(10))},
		Y:       chart.Axis{Label: "%", Type: chart.Linear},
		Field:   schema.FieldPercentOfGlobal,
		Tooltip: testTooltip,
		Legend:  chart.Legend{Visible: true, Location: "top_left", FontSize: 6},
		Width:   300,
		Height:  200,
	}, chart.NewPalette(keys))
}

func dashboard() Dashboard {
	return Dashboard{
		Title:     "COVID-19 monitoring",
		Generated: time.Date(2020, time.March, 11, 6, 30, 0, 0, time.UTC),
		Footer:    "Data: JHU CSSE",
		Rows: [][]chart.Spec{
			{lineChart(), areaChart()},
			{lineChart()},
		},
	}
}
