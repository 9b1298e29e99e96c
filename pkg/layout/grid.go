package layout

// Default grid metrics in pixels.
const (
	DefaultRowHeight = 60.0
	DefaultMargin    = 10.0
)

// Grid converts grid units into pixel boxes for one container width.
// One row has a fixed pixel height; one column is a fraction of the
// container width.
type Grid struct {
	Cols           int
	RowHeight      float64
	Margin         float64
	ContainerWidth float64
}

// NewGrid returns the grid for a container, with the column count of the
// breakpoint the width falls into.
func NewGrid(containerWidth float64) Grid {
	return Grid{
		Cols:           BreakpointFor(containerWidth).Cols(),
		RowHeight:      DefaultRowHeight,
		Margin:         DefaultMargin,
		ContainerWidth: containerWidth,
	}
}

// Box is a pixel rectangle relative to the container's top-left corner.
type Box struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ColWidth is the pixel width of one column. Never negative.
func (g Grid) ColWidth() float64 {
	if g.Cols <= 0 {
		return 0
	}
	w := (g.ContainerWidth - g.Margin*float64(g.Cols+1)) / float64(g.Cols)
	return max(w, 0)
}

// Box returns the pixel box of r, using its rendered height.
func (g Grid) Box(r PlacementRecord) Box {
	cw := g.ColWidth()
	h := r.RenderedHeight()
	return Box{
		Left:   g.Margin + float64(r.X)*(cw+g.Margin),
		Top:    g.Margin + float64(r.Y)*(g.RowHeight+g.Margin),
		Width:  max(cw*float64(r.W)+g.Margin*float64(max(r.W-1, 0)), 0),
		Height: max(g.RowHeight*float64(h)+g.Margin*float64(max(h-1, 0)), 0),
	}
}

// Height is the container height needed to show every record in l.
func (g Grid) Height(l Layout) float64 {
	rows := l.Rows()
	if rows == 0 {
		return 0
	}
	return float64(rows)*(g.RowHeight+g.Margin) + g.Margin
}
