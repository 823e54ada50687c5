package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bitmark-inc/covid-monitor/chart"
)

const (
	snapshotPadding = 10
	titleFontSize   = 11
	pointRadius     = 1.5
)

// WriteSnapshot draws every chart of the dashboard into a single png file.
func WriteSnapshot(path string, d Dashboard) error {
	f, err := os.Create(path)
	if nil != err {
		return err
	}

	if err := Snapshot(f, d); nil != err {
		f.Close()
		return err
	}

	return f.Close()
}

// Snapshot draws the dashboard as a png image, one tile per chart.
func Snapshot(w io.Writer, d Dashboard) error {
	if d.Panels() == 0 {
		return ErrEmptyDashboard
	}

	rows := len(d.Rows)
	cols := d.columns()
	width, height := 0, 0
	plots := make([][]*plot.Plot, rows)
	for i, row := range d.Rows {
		plots[i] = make([]*plot.Plot, cols)
		for j, s := range row {
			p, err := newPlot(s)
			if nil != err {
				return fmt.Errorf("%s: %w", s.Title, err)
			}
			plots[i][j] = p

			if s.Width > width {
				width = s.Width
			}
			if s.Height > height {
				height = s.Height
			}
		}
	}

	img := vgimg.New(vg.Points(float64(cols*width)), vg.Points(float64(rows*height)))
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Points(snapshotPadding),
		PadY:      vg.Points(snapshotPadding),
		PadTop:    vg.Points(snapshotPadding),
		PadBottom: vg.Points(snapshotPadding),
		PadLeft:   vg.Points(snapshotPadding),
		PadRight:  vg.Points(snapshotPadding),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); nil != err {
		return err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"rows":   rows,
		"cols":   cols,
	}).Debug("draw snapshot")

	return nil
}

func newPlot(s chart.Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.Title.TextStyle.Font.Size = vg.Points(titleFontSize)
	p.X.Label.Text = s.X.Label
	p.Y.Label.Text = s.Y.Label

	if s.X.Range != nil {
		p.X.Min = s.X.Range.Min
		p.X.Max = s.X.Range.Max
	}
	if s.Y.Range != nil {
		p.Y.Min = s.Y.Range.Min
		p.Y.Max = s.Y.Range.Max
	}

	if s.X.Type == chart.Datetime {
		p.X.Tick.Marker = plot.TimeTicks{Format: "01-02"}
	}

	if s.Legend.Visible {
		p.Legend.Top = strings.HasPrefix(s.Legend.Location, "top")
		p.Legend.Left = strings.HasSuffix(s.Legend.Location, "left")
		if s.Legend.FontSize > 0 {
			p.Legend.TextStyle.Font.Size = vg.Points(float64(s.Legend.FontSize))
		}
	}

	var err error
	switch s.Kind {
	case chart.KindStackedArea:
		err = addStack(p, s)
	default:
		err = addLines(p, s)
	}
	if nil != err {
		return nil, err
	}

	if s.Y.Type == chart.Log {
		logScale(p)
	}

	p.Add(plotter.NewGrid())
	return p, nil
}

// logScale switches the y axis to a log scale when its bounds allow one.
// A flat series is widened by a factor of two on both sides, since the
// default widening of one unit can reach zero.
func logScale(p *plot.Plot) {
	if p.Y.Min == p.Y.Max {
		p.Y.Min /= 2
		p.Y.Max *= 2
	}
	if p.Y.Min <= 0 || p.Y.Max <= 0 || math.IsInf(p.Y.Min, 0) || math.IsInf(p.Y.Max, 0) {
		return
	}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

func addLines(p *plot.Plot, s chart.Spec) error {
	for _, series := range s.Series {
		if len(series.Points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(series.Points))
		for i, pt := range series.Points {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}

		c := parseColor(series.Color)
		line, err := plotter.NewLine(xys)
		if nil != err {
			return err
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(1)

		points, err := plotter.NewScatter(xys)
		if nil != err {
			return err
		}
		points.GlyphStyle.Color = c
		points.GlyphStyle.Radius = vg.Points(pointRadius)
		points.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, points)
		if s.Legend.Visible {
			p.Legend.Add(series.Key, line, points)
		}
	}
	return nil
}

// addStack draws cumulative layers from the top of the stack down, so each
// filled layer covers the area of the layers above it
func addStack(p *plot.Plot, s chart.Spec) error {
	layers := make([]plotter.XYs, len(s.Series))
	var below plotter.XYs
	for i, series := range s.Series {
		xys := make(plotter.XYs, len(series.Points))
		for j, pt := range series.Points {
			xys[j].X = pt.X
			xys[j].Y = pt.Y
			if j < len(below) {
				xys[j].Y += below[j].Y
			}
		}
		layers[i] = xys
		below = xys
	}

	for i := len(layers) - 1; i >= 0; i-- {
		if len(layers[i]) == 0 {
			continue
		}

		area, err := plotter.NewLine(layers[i])
		if nil != err {
			return err
		}
		c := parseColor(s.Series[i].Color)
		area.FillColor = c
		area.LineStyle.Color = c
		p.Add(area)

		if s.Legend.Visible {
			p.Legend.Add(s.Series[i].Key, area)
		}
	}
	return nil
}

// parseColor reads #rrggbb, black on anything else
func parseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.Black
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if nil != err {
		return color.Black
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: math.MaxUint8,
	}
}
