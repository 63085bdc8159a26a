package terrain

import (
	"fmt"
	"math"
)

// Grid is a captured elevation frame stored row-major, one sample per sensor pixel.
type Grid struct {
	W, H int
	Data []float64
}

// NewGrid wraps data as a w×h frame.
func NewGrid(w, h int, data []float64) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid size %dx%d must be positive", w, h)
	}
	if len(data) != w*h {
		return nil, fmt.Errorf("grid data has %d samples, want %d", len(data), w*h)
	}
	return &Grid{W: w, H: h, Data: data}, nil
}

// Elevation samples the grid with bilinear interpolation.
// Points outside the frame return +Inf so they are never water.
func (g *Grid) Elevation(x, y float64) float64 {
	if x < 0 || y < 0 || x > float64(g.W-1) || y > float64(g.H-1) || math.IsNaN(x) || math.IsNaN(y) {
		return math.Inf(1)
	}
	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, g.W-1), min(y0+1, g.H-1)
	fx, fy := x-float64(x0), y-float64(y0)

	top := g.at(x0, y0)*(1-fx) + g.at(x1, y0)*fx
	bottom := g.at(x0, y1)*(1-fx) + g.at(x1, y1)*fx
	return top*(1-fy) + bottom*fy
}

func (g *Grid) at(x, y int) float64 {
	return g.Data[y*g.W+x]
}
