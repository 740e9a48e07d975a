package geometry

import "math"

// DefaultCellWidth and DefaultCellHeight approximate a typical monospace
// terminal cell in pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Grid maps between terminal cells and viewport pixels.
type Grid struct {
	CellWidth, CellHeight float64
}

// DefaultGrid returns the 8x16 grid.
func DefaultGrid() Grid {
	return Grid{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}
}

func (g Grid) normalized() Grid {
	if !(g.CellWidth > 0) || math.IsInf(g.CellWidth, 0) {
		g.CellWidth = DefaultCellWidth
	}
	if !(g.CellHeight > 0) || math.IsInf(g.CellHeight, 0) {
		g.CellHeight = DefaultCellHeight
	}
	return g
}

// Viewport is the pixel viewport covered by cols x rows cells.
func (g Grid) Viewport(cols, rows int) Viewport {
	g = g.normalized()
	return Viewport{
		Width:  float64(max(cols, 0)) * g.CellWidth,
		Height: float64(max(rows, 0)) * g.CellHeight,
	}
}

// Center is the pixel centre of cell (col, row). Pointer input from a
// terminal is delivered here.
func (g Grid) Center(col, row int) Point {
	g = g.normalized()
	return Point{
		X: (float64(col) + 0.5) * g.CellWidth,
		Y: (float64(row) + 0.5) * g.CellHeight,
	}
}

// Cell is the cell containing p.
func (g Grid) Cell(p Point) (col, row int) {
	g = g.normalized()
	return int(math.Floor(sane(p.X) / g.CellWidth)), int(math.Floor(sane(p.Y) / g.CellHeight))
}

// Cells rounds r to the nearest cell box.
func (g Grid) Cells(r Rect) (x, y, w, h int) {
	g = g.normalized()
	x = int(math.Round(sane(r.X) / g.CellWidth))
	y = int(math.Round(sane(r.Y) / g.CellHeight))
	right := int(math.Round((sane(r.X) + sane(r.Width)) / g.CellWidth))
	bottom := int(math.Round((sane(r.Y) + sane(r.Height)) / g.CellHeight))
	return x, y, max(right-x, 0), max(bottom-y, 0)
}
