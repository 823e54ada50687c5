package monitor

import (
	"fmt"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bitmark-inc/covid-monitor/chart"
	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/render"
	"github.com/bitmark-inc/covid-monitor/schema"
	"github.com/bitmark-inc/covid-monitor/utils"
)

const (
	compactFontSize = 6
	legendLocation  = "top_left"
	countFormat     = ",.0f"
	percentFormat   = ".1f"
)

// panels builds the charts of one metric with shared labels and ranges
type panels struct {
	table     *schema.Table
	keys      []string
	palette   chart.Palette
	localizer *i18n.Localizer
	dates     *chart.Range
	days      int
}

func (p panels) text(suffix string) string {
	return utils.Translate(p.localizer, fmt.Sprintf("%s.%s", p.table.Metric.Kind, suffix), map[string]interface{}{
		"Threshold": p.table.Metric.Threshold,
	})
}

func (p panels) tooltip(format string) []chart.TooltipField {
	return []chart.TooltipField{
		{Title: utils.Translate(p.localizer, "tooltip.name", nil), Field: chart.FieldKey},
		{Title: p.text("noun"), Field: chart.FieldY, Format: format},
		{Title: utils.Translate(p.localizer, "tooltip.date", nil), Field: chart.FieldDate},
	}
}

func (p panels) dateAxis() chart.Axis {
	return chart.Axis{
		Label: utils.Translate(p.localizer, "axis.date", nil),
		Type:  chart.Datetime,
		Range: p.dates,
	}
}

// aligned - cumulative values on a log axis, by days since threshold
func (p panels) aligned() chart.Spec {
	return chart.TimeSeries(p.table, p.keys, chart.Config{
		Title: p.text("aligned.title"),
		X: chart.Axis{
			Label: p.text("aligned.x"),
			Type:  chart.Linear,
			Range: &chart.Range{Min: 0, Max: float64(p.days)},
		},
		Y:       chart.Axis{Label: p.text("aligned.y"), Type: chart.Log},
		Field:   schema.FieldValues,
		Aligned: true,
		Tooltip: p.tooltip(countFormat),
	}, p.palette)
}

// daily - new daily values by date
func (p panels) daily() chart.Spec {
	return chart.TimeSeries(p.table, p.keys, chart.Config{
		Title:   p.text("daily.title"),
		X:       p.dateAxis(),
		Y:       chart.Axis{Label: p.text("daily.y"), Type: chart.Linear},
		Field:   schema.FieldDailyChange,
		Tooltip: p.tooltip(countFormat),
		Legend:  chart.Legend{Visible: true, Location: legendLocation, FontSize: compactFontSize},
	}, p.palette)
}

// cumulative - cumulative values by date on a linear axis
func (p panels) cumulative() chart.Spec {
	return chart.TimeSeries(p.table, p.keys, chart.Config{
		Title:   p.text("cumulative.title"),
		X:       p.dateAxis(),
		Y:       chart.Axis{Label: p.text("noun"), Type: chart.Linear},
		Field:   schema.FieldValues,
		Tooltip: p.tooltip(countFormat),
		Legend:  chart.Legend{Visible: true, Location: legendLocation},
	}, p.palette)
}

// share - stacked percentage of the global daily change
func (p panels) share() chart.Spec {
	return chart.StackedArea(p.table, p.keys, chart.Config{
		Title:   p.text("share.title"),
		X:       p.dateAxis(),
		Y:       chart.Axis{Label: p.text("share.y"), Type: chart.Linear},
		Field:   schema.FieldPercentOfGlobal,
		Tooltip: p.tooltip(percentFormat),
		Legend:  chart.Legend{Visible: true, Location: legendLocation, FontSize: compactFontSize},
	}, p.palette)
}

// dashboard lays out the panels:
//
//	cases aligned (log)        new daily cases
//	deaths aligned (log)       new daily deaths
//	deaths cumulative          share of global new deaths
func (m *Monitor) dashboard(frames map[schema.MetricKind]*schema.Frame, tables map[schema.MetricKind]*schema.Table) (render.Dashboard, error) {
	deaths, ok := tables[schema.Deaths]
	if !ok {
		return render.Dashboard{}, fmt.Errorf("no %s table", schema.Deaths)
	}
	cases, ok := tables[schema.Cases]
	if !ok {
		return render.Dashboard{}, fmt.Errorf("no %s table", schema.Cases)
	}

	keys := m.keys(frames)
	palette := chart.NewPalette(keys)

	now := m.now().UTC()
	end := now.Truncate(24 * time.Hour)
	dates := chart.DateRange(m.options.Start, end)

	newPanels := func(t *schema.Table) panels {
		return panels{
			table:     t,
			keys:      keys,
			palette:   palette,
			localizer: m.localizer,
			dates:     dates,
			days:      m.options.Days,
		}
	}
	d, c := newPanels(deaths), newPanels(cases)

	return render.Dashboard{
		Title:     utils.Translate(m.localizer, "dashboard.title", nil),
		Language:  m.options.Language.String(),
		Generated: now,
		Footer:    utils.Translate(m.localizer, "dashboard.footer", nil),
		Rows: [][]chart.Spec{
			{c.aligned(), c.daily()},
			{d.aligned(), d.daily()},
			{d.cumulative(), d.share()},
		},
	}, nil
}

// keys are the requested countries without repeats, or the ordered union of
// every metric's countries when all countries are requested
func (m *Monitor) keys(frames map[schema.MetricKind]*schema.Frame) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	add := func(countries []string) {
		for _, c := range countries {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			result = append(result, c)
		}
	}

	if len(m.options.Countries) != 1 || m.options.Countries[0] != consts.AllCountries {
		add(m.options.Countries)
		return result
	}

	for _, metric := range m.options.Metrics {
		if f, ok := frames[metric.Kind]; ok {
			add(f.Countries)
		}
	}
	return result
}
