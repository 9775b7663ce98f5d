package sensitivity

import (
	"errors"

	"github.com/sourcegraph/conc/iter"

	"lcoe-calculator/internal/model"
)

// Grid is a two-parameter LCOE surface. Cells[y][x] pairs YValues[y] with XValues[x].
type Grid struct {
	XParam  model.Parameter
	YParam  model.Parameter
	XValues []float64
	YValues []float64
	Cells   [][]Point
}

// Min and Max return the extreme LCOE per kWh over computed cells. Both are 0
// when no cell computed.
func (g *Grid) Min() float64 { return g.extreme(func(a, b float64) bool { return a < b }) }
func (g *Grid) Max() float64 { return g.extreme(func(a, b float64) bool { return a > b }) }

func (g *Grid) extreme(better func(a, b float64) bool) float64 {
	found := false
	out := 0.0
	for _, row := range g.Cells {
		for _, c := range row {
			if !c.OK() {
				continue
			}
			if !found || better(c.LCOEPerKWh(), out) {
				out = c.LCOEPerKWh()
				found = true
			}
		}
	}
	return out
}

// Heatmap evaluates every (x, y) combination of the two parameters.
func Heatmap(base model.ProjectInputs, xParam model.Parameter, xs []float64, yParam model.Parameter, ys []float64) (*Grid, error) {
	if xParam == yParam {
		return nil, errors.New("sensitivity: heatmap axes must be different parameters")
	}
	if _, err := base.Get(xParam); err != nil {
		return nil, err
	}
	if _, err := base.Get(yParam); err != nil {
		return nil, err
	}
	if len(xs) == 0 || len(ys) == 0 {
		return nil, errors.New("sensitivity: heatmap axes must not be empty")
	}
	if len(xs)*len(ys) > MaxTrials {
		return nil, ErrTooManyTrials
	}

	type cell struct{ x, y int }
	coords := make([]cell, 0, len(xs)*len(ys))
	for y := range ys {
		for x := range xs {
			coords = append(coords, cell{x: x, y: y})
		}
	}

	points := iter.Map(coords, func(c *cell) Point {
		rowBase, err := base.With(yParam, ys[c.y])
		if err != nil {
			return Point{Value: xs[c.x], Err: err}
		}
		return trial(rowBase, xParam, xs[c.x])
	})

	cells := make([][]Point, len(ys))
	for y := range ys {
		cells[y] = points[y*len(xs) : (y+1)*len(xs)]
	}
	return &Grid{
		XParam:  xParam,
		YParam:  yParam,
		XValues: xs,
		YValues: ys,
		Cells:   cells,
	}, nil
}
