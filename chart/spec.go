package chart

import (
	"time"
)

type AxisType string

const (
	Linear   AxisType = "linear"
	Log      AxisType = "log"
	Datetime AxisType = "datetime"
)

type Kind string

const (
	KindTimeSeries  Kind = "timeseries"
	KindStackedArea Kind = "stackedarea"
)

// fields of a chart point, referenced by tooltips
const (
	FieldKey  = "key"
	FieldX    = "x"
	FieldY    = "y"
	FieldDate = "date"
)

const (
	DefaultWidth  = 700
	DefaultHeight = 400
)

// Range - axis bounds. Datetime bounds are unix seconds.
type Range struct {
	Min float64
	Max float64
}

// DateRange returns the bounds of a datetime axis.
func DateRange(start, end time.Time) *Range {
	return &Range{
		Min: float64(start.Unix()),
		Max: float64(end.Unix()),
	}
}

// Contains reports whether v is within the bounds, a nil range contains
// everything.
func (r *Range) Contains(v float64) bool {
	if r == nil {
		return true
	}
	return v >= r.Min && v <= r.Max
}

type Axis struct {
	Label string
	Type  AxisType
	Range *Range
}

// TooltipField - one line of the hover tooltip, format is a d3 format string
type TooltipField struct {
	Title  string
	Field  string
	Format string
}

type Legend struct {
	Visible  bool
	Location string
	FontSize int
}

// Config - everything a builder needs besides the data
type Config struct {
	Title string
	X     Axis
	Y     Axis

	// Field is the table field plotted on the y axis, e.g. schema.FieldValues
	Field string
	// Aligned takes x from the DaysSince column of each key instead of the
	// date, dropping days below threshold
	Aligned bool

	Tooltip []TooltipField
	Legend  Legend
	Width   int
	Height  int
}

type Point struct {
	X    float64
	Y    float64
	Date time.Time
}

type Series struct {
	Key    string
	Color  string
	Points []Point
}

// Spec - a declarative chart, ready for a renderer
type Spec struct {
	Kind    Kind
	Title   string
	X       Axis
	Y       Axis
	Tooltip []TooltipField
	Legend  Legend
	Width   int
	Height  int
	Series  []Series
}

// Empty reports whether no series has a point.
func (s Spec) Empty() bool {
	for _, series := range s.Series {
		if len(series.Points) > 0 {
			return false
		}
	}
	return true
}
