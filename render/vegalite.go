package render

import (
	"strings"
	"time"

	"github.com/bitmark-inc/covid-monitor/chart"
	"github.com/bitmark-inc/covid-monitor/schema"
)

const (
	vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"
	selectionName  = "series"
	hiddenOpacity  = 0.08
	dateFormat     = "%Y-%m-%d"
)

type vegaRow struct {
	Key   string  `json:"key"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Date  string  `json:"date"`
	Order int     `json:"order"`
}

// VegaLite converts a chart into a vega-lite specification. A legend click
// toggles the series, hovering shows the tooltip fields.
func VegaLite(s chart.Spec) map[string]interface{} {
	rows := make([]vegaRow, 0)
	keys := make([]string, 0, len(s.Series))
	colors := make([]string, 0, len(s.Series))
	for i, series := range s.Series {
		keys = append(keys, series.Key)
		colors = append(colors, series.Color)
		for _, p := range series.Points {
			rows = append(rows, vegaRow{
				Key:   series.Key,
				X:     p.X,
				Y:     p.Y,
				Date:  p.Date.Format(schema.DateLayout),
				Order: i,
			})
		}
	}

	encoding := map[string]interface{}{
		"x": xEncoding(s.X),
		"y": yEncoding(s),
		"color": map[string]interface{}{
			"field":  chart.FieldKey,
			"type":   "nominal",
			"scale":  map[string]interface{}{"domain": keys, "range": colors},
			"legend": legend(s.Legend),
		},
		"opacity": map[string]interface{}{
			"condition": map[string]interface{}{"param": selectionName, "value": 1},
			"value":     hiddenOpacity,
		},
		"tooltip": tooltip(s.Tooltip),
	}

	selection := []interface{}{
		map[string]interface{}{
			"name":   selectionName,
			"select": map[string]interface{}{"type": "point", "fields": []string{chart.FieldKey}},
			"bind":   "legend",
		},
	}

	spec := map[string]interface{}{
		"$schema":  vegaLiteSchema,
		"title":    s.Title,
		"width":    s.Width,
		"height":   s.Height,
		"data":     map[string]interface{}{"values": rows},
		"encoding": encoding,
	}

	switch s.Kind {
	case chart.KindStackedArea:
		encoding["order"] = map[string]interface{}{"field": "order", "type": "quantitative"}
		spec["mark"] = map[string]interface{}{"type": "area", "line": true}
		spec["params"] = selection
	default:
		spec["layer"] = []interface{}{
			map[string]interface{}{
				"params": selection,
				"mark":   map[string]interface{}{"type": "line"},
			},
			map[string]interface{}{
				"mark": map[string]interface{}{"type": "point", "filled": true},
			},
		}
	}

	return spec
}

func xEncoding(axis chart.Axis) map[string]interface{} {
	if axis.Type == chart.Datetime {
		enc := map[string]interface{}{
			"field": chart.FieldDate,
			"type":  "temporal",
			"title": axis.Label,
			"axis":  map[string]interface{}{"format": dateFormat},
		}
		if axis.Range != nil {
			enc["scale"] = map[string]interface{}{
				"domain": []int64{millisecond(axis.Range.Min), millisecond(axis.Range.Max)},
			}
		}
		return enc
	}

	return map[string]interface{}{
		"field": chart.FieldX,
		"type":  "quantitative",
		"title": axis.Label,
		"scale": scale(axis),
	}
}

func yEncoding(s chart.Spec) map[string]interface{} {
	enc := map[string]interface{}{
		"field": chart.FieldY,
		"type":  "quantitative",
		"title": s.Y.Label,
		"scale": scale(s.Y),
	}
	if s.Kind == chart.KindStackedArea {
		enc["stack"] = "zero"
	}
	return enc
}

func scale(axis chart.Axis) map[string]interface{} {
	sc := map[string]interface{}{}
	switch axis.Type {
	case chart.Log:
		sc["type"] = "log"
	default:
		sc["type"] = "linear"
		sc["zero"] = false
	}
	if axis.Range != nil {
		sc["domain"] = []float64{axis.Range.Min, axis.Range.Max}
	}
	return sc
}

// legend returns nil for a hidden legend, which vega-lite takes as no legend
func legend(l chart.Legend) interface{} {
	if !l.Visible {
		return nil
	}

	result := map[string]interface{}{
		"orient": orient(l.Location),
	}
	if l.FontSize > 0 {
		result["labelFontSize"] = l.FontSize
		result["symbolSize"] = l.FontSize * l.FontSize
		result["rowPadding"] = 1
	}
	return result
}

// orient maps locations such as top_left to the vega-lite legend orient
func orient(location string) string {
	if location == "" {
		return "right"
	}
	return strings.ReplaceAll(location, "_", "-")
}

func tooltip(fields []chart.TooltipField) []interface{} {
	result := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		t := map[string]interface{}{
			"field": f.Field,
			"title": f.Title,
		}
		switch f.Field {
		case chart.FieldKey:
			t["type"] = "nominal"
		case chart.FieldDate:
			t["type"] = "temporal"
			t["format"] = dateFormat
		default:
			t["type"] = "quantitative"
		}
		if f.Format != "" {
			t["format"] = f.Format
		}
		result = append(result, t)
	}
	return result
}

func millisecond(unix float64) int64 {
	return time.Unix(int64(unix), 0).UnixNano() / int64(time.Millisecond)
}
