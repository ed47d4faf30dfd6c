// Package diagram decouples what to plot from when to plot it. A layout
// fixes a panel grid and a registry records rendering actions; after every
// run the registry replays its actions in registration order against the
// fresh results.
package diagram

import (
	"fmt"

	"github.com/bioproclab/fmex/internal/engine"
)

// Style selects how a series is drawn.
type Style int

const (
	StyleLine Style = iota
	StyleStep
)

// Color is a small symbolic palette, resolved by each renderer.
type Color string

const (
	ColorBlue  Color = "b"
	ColorRed   Color = "r"
	ColorGreen Color = "g"
)

// SeriesOp combines named result series into the values a panel draws.
type SeriesOp int

const (
	// OpSeries draws one named series as is.
	OpSeries SeriesOp = iota
	// OpDiff draws A minus B, point by point.
	OpDiff
	// OpProduct draws A times B, point by point.
	OpProduct
)

// Series is a data-driven series expression over a result.
type Series struct {
	Op   SeriesOp
	A, B string
}

func Name(a string) Series        { return Series{Op: OpSeries, A: a} }
func Diff(a, b string) Series     { return Series{Op: OpDiff, A: a, B: b} }
func Product(a, b string) Series  { return Series{Op: OpProduct, A: a, B: b} }

// Label is the series expression in display form.
func (s Series) Label() string {
	switch s.Op {
	case OpDiff:
		return s.A + "-" + s.B
	case OpProduct:
		return s.A + "*" + s.B
	default:
		return s.A
	}
}

// Eval resolves the expression against one result.
func (s Series) Eval(res *engine.Result) ([]float64, error) {
	a, err := res.Get(s.A)
	if err != nil {
		return nil, err
	}
	if s.Op == OpSeries {
		return a, nil
	}
	b, err := res.Get(s.B)
	if err != nil {
		return nil, err
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("series %q and %q have different lengths", s.A, s.B)
	}
	out := make([]float64, len(a))
	for i := range a {
		switch s.Op {
		case OpDiff:
			out[i] = a[i] - b[i]
		case OpProduct:
			out[i] = a[i] * b[i]
		}
	}
	return out, nil
}

// Action is one registered rendering step: draw a series expression on a
// panel with a given style. YMin/YMax clamp the panel's vertical range when
// non-nil.
type Action struct {
	Panel  int
	Series Series
	Style  Style
	Color  Color
	YMin   *float64
	YMax   *float64
}

// Float is a convenience for optional axis limits.
func Float(v float64) *float64 { return &v }
