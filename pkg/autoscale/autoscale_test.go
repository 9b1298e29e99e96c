package autoscale

import (
	"math"
	"testing"
)

func TestScaleZero(t *testing.T) {
	p := Scale(0, 0)

	want := Params{
		FontSize:      MinFontSize,
		TitleFontSize: MinFontSize + TitleFontOffset,
		ChartPadding:  MinChartPadding,
		RowCount:      MinRowCount,
		BarSize:       MinBarSize,
		IconSize:      MinIconSize,
		CardPadding:   MinCardPadding,
	}
	if p != want {
		t.Errorf("Scale(0, 0) = %+v, want %+v", p, want)
	}
	assertFinite(t, p)
}

func TestScaleFormulas(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		want          Params
	}{
		{
			name:  "mid-size card",
			width: 400, height: 250,
			want: Params{
				Width: 400, Height: 250,
				FontSize: 20, TitleFontSize: 24,
				ChartPadding: 25, RowCount: 5,
				BarSize: 32, IconSize: 37.5, CardPadding: 12.5,
			},
		},
		{
			name:  "small card clamps to floors",
			width: 100, height: 100,
			want: Params{
				Width: 100, Height: 100,
				FontSize: 12, TitleFontSize: 16,
				ChartPadding: 20, RowCount: 3,
				BarSize: 15, IconSize: 24, CardPadding: 12,
			},
		},
		{
			name:  "huge card clamps to ceilings",
			width: 5000, height: 2000,
			want: Params{
				Width: 5000, Height: 2000,
				FontSize: 28, TitleFontSize: 32,
				ChartPadding: 60, RowCount: 41,
				BarSize: 80, IconSize: 48, CardPadding: 24,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(tt.width, tt.height)
			if !approxEqual(got, tt.want) {
				t.Errorf("Scale(%v, %v) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestFontSizeBoundedAndMonotonic(t *testing.T) {
	prev := 0.0
	for h := 0.0; h <= 1000; h += 0.5 {
		p := Scale(300, h)
		if p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
			t.Fatalf("FontSize at height %v = %v, outside [%v, %v]", h, p.FontSize, MinFontSize, MaxFontSize)
		}
		if p.FontSize < prev {
			t.Fatalf("FontSize decreased at height %v: %v < %v", h, p.FontSize, prev)
		}
		if p.TitleFontSize != p.FontSize+TitleFontOffset {
			t.Fatalf("TitleFontSize at height %v = %v, want FontSize+4", h, p.TitleFontSize)
		}
		prev = p.FontSize
	}
}

func TestScaleInvalidInputs(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"negative", -10, -200},
		{"nan", math.NaN(), math.NaN()},
		{"positive infinity", math.Inf(1), math.Inf(1)},
		{"negative infinity", math.Inf(-1), math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Scale(tt.width, tt.height)
			assertFinite(t, p)
			if p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
				t.Errorf("FontSize = %v out of range", p.FontSize)
			}
			if p.RowCount < MinRowCount {
				t.Errorf("RowCount = %d, want >= %d", p.RowCount, MinRowCount)
			}
		})
	}
}

func TestScaleDeterministic(t *testing.T) {
	a := Scale(640, 480)
	b := Scale(640, 480)
	if a != b {
		t.Errorf("Scale not deterministic: %+v != %+v", a, b)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		lo, v, hi, want float64
	}{
		{1, 0, 3, 1},
		{1, 2, 3, 2},
		{1, 4, 3, 3},
		{1, math.NaN(), 3, 1},
		{1, math.Inf(1), 3, 3},
	}
	for _, tt := range tests {
		if got := Clamp(tt.lo, tt.v, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.lo, tt.v, tt.hi, got, tt.want)
		}
	}
}

func assertFinite(t *testing.T, p Params) {
	t.Helper()
	for name, v := range map[string]float64{
		"Width":         p.Width,
		"Height":        p.Height,
		"FontSize":      p.FontSize,
		"TitleFontSize": p.TitleFontSize,
		"ChartPadding":  p.ChartPadding,
		"BarSize":       p.BarSize,
		"IconSize":      p.IconSize,
		"CardPadding":   p.CardPadding,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			t.Errorf("%s = %v, want finite non-negative", name, v)
		}
	}
}

func approxEqual(a, b Params) bool {
	const eps = 1e-9
	eq := func(x, y float64) bool { return math.Abs(x-y) < eps }
	return eq(a.Width, b.Width) && eq(a.Height, b.Height) &&
		eq(a.FontSize, b.FontSize) && eq(a.TitleFontSize, b.TitleFontSize) &&
		eq(a.ChartPadding, b.ChartPadding) && a.RowCount == b.RowCount &&
		eq(a.BarSize, b.BarSize) && eq(a.IconSize, b.IconSize) &&
		eq(a.CardPadding, b.CardPadding)
}
