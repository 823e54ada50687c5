package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/bitmark-inc/covid-monitor/chart"
	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/metrics"
	"github.com/bitmark-inc/covid-monitor/schema"
	"github.com/bitmark-inc/covid-monitor/series"
)

func reshape(t *testing.T, metric schema.Metric, countries []string) (*schema.Frame, *schema.Table) {
	frame, err := series.Reshape(observations(metric.Kind), metric, countries)
	require.NoError(t, err)
	return frame, series.Pivot(frame)
}

func testMonitor(countries []string) *Monitor {
	m := New(Options{
		Countries: countries,
		Metrics:   []schema.Metric{deaths, cases},
		Start:     day(6),
		Days:      45,
		Language:  language.English,
	}, nil, nil, nil, metrics.New("test"))
	m.now = func() time.Time {
		return time.Date(2020, time.March, 10, 6, 0, 0, 0, time.UTC)
	}
	return m
}

func TestDashboardLayout(t *testing.T) {
	countries := []string{"France", "Italy", consts.RestOfWorld}
	m := testMonitor(countries)

	deathFrame, deathTable := reshape(t, deaths, countries)
	caseFrame, caseTable := reshape(t, cases, countries)

	d, err := m.dashboard(
		map[schema.MetricKind]*schema.Frame{schema.Deaths: deathFrame, schema.Cases: caseFrame},
		map[schema.MetricKind]*schema.Table{schema.Deaths: deathTable, schema.Cases: caseTable},
	)
	require.NoError(t, err)

	assert.Equal(t, "COVID-19 monitoring", d.Title)
	assert.Equal(t, "en", d.Language)
	require.Len(t, d.Rows, 3)

	titles := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		require.Len(t, row, 2)
		titles = append(titles, []string{row[0].Title, row[1].Title})
	}
	assert.Equal(t, [][]string{
		{"COVID-19 cumulative cases per country (log scale)", "COVID-19 new daily cases per country"},
		{"COVID-19 cumulative deaths per country (log scale)", "COVID-19 new daily deaths per country"},
		{"COVID-19 cumulative deaths per country", "COVID-19 share of global new deaths per country"},
	}, titles)

	aligned := d.Rows[1][0]
	assert.Equal(t, chart.Log, aligned.Y.Type)
	assert.Equal(t, "Days Since >5 deaths recorded", aligned.X.Label)
	assert.Equal(t, &chart.Range{Min: 0, Max: 45}, aligned.X.Range)
	assert.False(t, aligned.Legend.Visible)
	// france reaches 5 deaths on the second day
	require.Len(t, aligned.Series, 3)
	assert.Len(t, aligned.Series[0].Points, 3)

	daily := d.Rows[1][1]
	assert.Equal(t, chart.Datetime, daily.X.Type)
	assert.Equal(t, chart.DateRange(day(6), day(10)), daily.X.Range)
	assert.Equal(t, 6, daily.Legend.FontSize)
	assert.Equal(t, "top_left", daily.Legend.Location)

	share := d.Rows[2][1]
	assert.Equal(t, chart.KindStackedArea, share.Kind)
	assert.Equal(t, ".1f", share.Tooltip[1].Format)

	// one color per country across every chart
	for _, row := range d.Rows {
		for _, spec := range row {
			for i, s := range spec.Series {
				assert.Equal(t, chart.Category20[i], s.Color, spec.Title)
				assert.Equal(t, countries[i], s.Key)
			}
		}
	}
}

func TestDashboardAllCountries(t *testing.T) {
	m := testMonitor([]string{consts.AllCountries})

	deathFrame, deathTable := reshape(t, deaths, []string{consts.AllCountries})
	caseFrame, caseTable := reshape(t, cases, []string{consts.AllCountries})

	d, err := m.dashboard(
		map[schema.MetricKind]*schema.Frame{schema.Deaths: deathFrame, schema.Cases: caseFrame},
		map[schema.MetricKind]*schema.Table{schema.Deaths: deathTable, schema.Cases: caseTable},
	)
	require.NoError(t, err)

	keys := make([]string, 0)
	for _, s := range d.Rows[0][1].Series {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"France", "Italy", "Spain"}, keys)
}

func TestKeysUnionOfMetrics(t *testing.T) {
	m := testMonitor([]string{consts.AllCountries})

	keys := m.keys(map[schema.MetricKind]*schema.Frame{
		schema.Deaths: {Countries: []string{"France", "Italy"}},
		schema.Cases:  {Countries: []string{"Italy", "Brazil", "France"}},
	})
	assert.Equal(t, []string{"France", "Italy", "Brazil"}, keys)

	m = testMonitor([]string{"Spain", "France", "Spain"})
	assert.Equal(t, []string{"Spain", "France"}, m.keys(nil))
}

func TestDashboardMissingMetric(t *testing.T) {
	m := testMonitor([]string{"France"})
	deathFrame, deathTable := reshape(t, deaths, []string{"France"})

	_, err := m.dashboard(
		map[schema.MetricKind]*schema.Frame{schema.Deaths: deathFrame},
		map[schema.MetricKind]*schema.Table{schema.Deaths: deathTable},
	)
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitRefresh, ExitCode(ErrRefresh))
	assert.Equal(t, ExitInput, ExitCode(ErrInput))
	assert.Equal(t, ExitRender, ExitCode(ErrRender))
	assert.Equal(t, ExitUpload, ExitCode(ErrUpload))
	assert.Equal(t, ExitOther, ExitCode(assert.AnError))
}
