package layout

import (
	"strings"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
)

// Breakpoint is a responsive class of container widths. Each breakpoint has
// its own column count and its own persisted layout.
type Breakpoint string

// Supported breakpoints, largest first.
const (
	BreakpointLG Breakpoint = "lg"
	BreakpointMD Breakpoint = "md"
	BreakpointSM Breakpoint = "sm"
	BreakpointXS Breakpoint = "xs"
)

type breakpointDef struct {
	bp       Breakpoint
	minWidth float64
	cols     int
}

// breakpointDefs is ordered from largest to smallest.
var breakpointDefs = []breakpointDef{
	{bp: BreakpointLG, minWidth: 1200, cols: 12},
	{bp: BreakpointMD, minWidth: 996, cols: 10},
	{bp: BreakpointSM, minWidth: 768, cols: 6},
	{bp: BreakpointXS, minWidth: 0, cols: 4},
}

// Breakpoints returns all breakpoints, largest first.
func Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(breakpointDefs))
	for i, s := range breakpointDefs {
		out[i] = s.bp
	}
	return out
}

// BreakpointFor returns the largest breakpoint whose minimum width fits.
func BreakpointFor(width float64) Breakpoint {
	for _, s := range breakpointDefs {
		if width >= s.minWidth {
			return s.bp
		}
	}
	return BreakpointXS
}

// ParseBreakpoint parses a breakpoint name (case-insensitive).
func ParseBreakpoint(s string) (Breakpoint, error) {
	bp := Breakpoint(strings.ToLower(strings.TrimSpace(s)))
	if !bp.Valid() {
		return "", apperr.New(apperr.ErrCodeInvalidBreakpoint, "unknown breakpoint %q (want lg, md, sm or xs)", s)
	}
	return bp, nil
}

// Valid reports whether b is a supported breakpoint.
func (b Breakpoint) Valid() bool {
	_, ok := b.def()
	return ok
}

// Cols is the number of grid columns at b. Unknown breakpoints use lg.
func (b Breakpoint) Cols() int {
	s, _ := b.def()
	return s.cols
}

// MinWidth is the smallest container width, in pixels, that selects b.
func (b Breakpoint) MinWidth() float64 {
	s, _ := b.def()
	return s.minWidth
}

func (b Breakpoint) String() string { return string(b) }

func (b Breakpoint) def() (breakpointDef, bool) {
	for _, s := range breakpointDefs {
		if s.bp == b {
			return s, true
		}
	}
	return breakpointDefs[0], false
}
