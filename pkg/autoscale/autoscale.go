// Package autoscale derives a widget's presentation parameters from the pixel
// box it was given.
//
// Every field is a clamped linear function of one raw dimension, so a widget
// with more vertical room gets larger text and looser spacing without any
// discrete breakpoint table. The constants are load-bearing: changing them
// changes how every dashboard card looks.
//
//	p := autoscale.Scale(320, 240)
//	p.FontSize      // 19.2
//	p.TitleFontSize // 23.2
package autoscale

import "math"

// Floors and ceilings for the derived fields.
const (
	MinFontSize = 12.0
	MaxFontSize = 28.0

	// TitleFontOffset is added to FontSize to get TitleFontSize.
	TitleFontOffset = 4.0

	MinChartPadding = 20.0
	MaxChartPadding = 60.0

	MinRowCount = 3
	// RowHeight is the pixel height budgeted for one table/list row.
	RowHeight = 48.0

	MinBarSize = 15.0
	MaxBarSize = 80.0

	MinIconSize = 24.0
	MaxIconSize = 48.0

	MinCardPadding = 12.0
	MaxCardPadding = 24.0
)

// Linear factors applied to the raw dimension before clamping.
const (
	fontSizeFactor     = 0.08
	chartPaddingFactor = 0.10
	barSizeFactor      = 0.08
	iconSizeFactor     = 0.15
	cardPaddingFactor  = 0.05
)

// Params is the bundle of presentation parameters for one widget.
// It is derived state: never persisted and never shared between widgets.
type Params struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	FontSize      float64 `json:"fontSize"`
	TitleFontSize float64 `json:"titleFontSize"`
	ChartPadding  float64 `json:"chartPadding"`
	RowCount      int     `json:"rowCount"`
	BarSize       float64 `json:"barSize"`
	IconSize      float64 `json:"iconSize"`
	CardPadding   float64 `json:"cardPadding"`
}

// Scale maps a rendered box to its presentation parameters.
// It is pure: the same inputs always yield the same Params.
//
// Negative and NaN dimensions are treated as 0, which yields every field at
// its documented minimum. +Inf is treated as the largest finite float, so
// every clamped field saturates at its maximum.
func Scale(width, height float64) Params {
	width = sanitize(width)
	height = sanitize(height)

	fontSize := Clamp(MinFontSize, height*fontSizeFactor, MaxFontSize)
	return Params{
		Width:         width,
		Height:        height,
		FontSize:      fontSize,
		TitleFontSize: fontSize + TitleFontOffset,
		ChartPadding:  Clamp(MinChartPadding, height*chartPaddingFactor, MaxChartPadding),
		RowCount:      rowCount(height),
		BarSize:       Clamp(MinBarSize, width*barSizeFactor, MaxBarSize),
		IconSize:      Clamp(MinIconSize, height*iconSizeFactor, MaxIconSize),
		CardPadding:   Clamp(MinCardPadding, height*cardPaddingFactor, MaxCardPadding),
	}
}

// Clamp returns v limited to [lo, hi]. A NaN v returns lo.
func Clamp(lo, v, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rowCount is max(3, floor(height/48)), bounded so +Inf cannot overflow int.
func rowCount(height float64) int {
	rows := math.Floor(height / RowHeight)
	if rows > math.MaxInt32 {
		return math.MaxInt32
	}
	return max(MinRowCount, int(rows))
}

func sanitize(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	}
	return v
}
