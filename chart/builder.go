package chart

import (
	"time"

	"github.com/bitmark-inc/covid-monitor/schema"
)

// TimeSeries builds one line and point series per key from a wide table.
// Missing cells are dropped, as are non-positive values on a log axis.
func TimeSeries(table *schema.Table, keys []string, cfg Config, pal Palette) Spec {
	spec := newSpec(KindTimeSeries, cfg)

	for _, key := range keys {
		ys, ok := table.Column(schema.ColumnName(cfg.Field, key))
		if !ok {
			continue
		}

		var xs []schema.NullFloat
		if cfg.Aligned {
			xs, _ = table.Column(schema.ColumnName(schema.FieldDaysSince, key))
		}

		points := make([]Point, 0, len(ys))
		for i, d := range table.Dates {
			y := ys[i]
			if !y.Valid {
				continue
			}
			if cfg.Y.Type == Log && y.Float64 <= 0 {
				continue
			}

			x := dateX(d)
			if cfg.Aligned {
				if i >= len(xs) || !xs[i].Valid || xs[i].Float64 <= 0 {
					continue
				}
				x = xs[i].Float64
			}
			if !cfg.X.Range.Contains(x) {
				continue
			}

			points = append(points, Point{X: x, Y: y.Float64, Date: d})
		}

		spec.Series = append(spec.Series, Series{
			Key:    key,
			Color:  pal.Color(key),
			Points: points,
		})
	}

	return spec
}

// StackedArea builds one area layer per key over the date axis, stacked in
// key order. Missing cells contribute zero.
func StackedArea(table *schema.Table, keys []string, cfg Config, pal Palette) Spec {
	spec := newSpec(KindStackedArea, cfg)
	spec.X.Type = Datetime

	for _, key := range keys {
		ys, ok := table.Column(schema.ColumnName(cfg.Field, key))
		if !ok {
			continue
		}

		points := make([]Point, 0, len(ys))
		for i, d := range table.Dates {
			x := dateX(d)
			if !cfg.X.Range.Contains(x) {
				continue
			}

			y := float64(0)
			if ys[i].Valid {
				y = ys[i].Float64
			}
			points = append(points, Point{X: x, Y: y, Date: d})
		}

		spec.Series = append(spec.Series, Series{
			Key:    key,
			Color:  pal.Color(key),
			Points: points,
		})
	}

	return spec
}

func newSpec(kind Kind, cfg Config) Spec {
	width := cfg.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := cfg.Height
	if height <= 0 {
		height = DefaultHeight
	}

	return Spec{
		Kind:    kind,
		Title:   cfg.Title,
		X:       cfg.X,
		Y:       cfg.Y,
		Tooltip: cfg.Tooltip,
		Legend:  cfg.Legend,
		Width:   width,
		Height:  height,
		Series:  make([]Series, 0),
	}
}

func dateX(d time.Time) float64 {
	return float64(d.Unix())
}
