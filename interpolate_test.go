/*
Copyright © 2025 the FieldView authors.
This file is part of FieldView.

FieldView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FieldView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FieldView.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldview

import (
	"context"
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func fillGrid(t *testing.T, points []Point, neighbors, nx, ny int, extent *geom.Bounds) *Grid {
	t.Helper()
	g := newGrid(extent, nx, ny)
	ri := newRBFInterpolator(points, neighbors)
	if err := ri.interpolateGrid(context.Background(), g); err != nil {
		t.Fatal(err)
	}
	return g
}

func unitExtent(size float64) *geom.Bounds {
	return &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: size, Y: size}}
}

// A constant-valued point set must reproduce the constant everywhere; the
// polynomial term of the thin-plate spline makes the fit exact.
func TestConstantFieldExactness(t *testing.T) {
	const c = 5.25
	points := []Point{
		{P: geom.Point{X: 0, Y: 0}, V: c},
		{P: geom.Point{X: 10, Y: 0}, V: c},
		{P: geom.Point{X: 0, Y: 10}, V: c},
		{P: geom.Point{X: 10, Y: 10}, V: c},
		{P: geom.Point{X: 5, Y: 6}, V: c},
	}
	g := fillGrid(t, points, 30, 20, 20, unitExtent(10))
	for i, v := range g.Data.Elements {
		if different(v, c, 1e-6) {
			t.Fatalf("cell %d: want %g, got %g", i, c, v)
		}
	}
}

// Linear trends are also inside the span of the polynomial block.
func TestLinearFieldExactness(t *testing.T) {
	f := func(x, y float64) float64 { return 2*x - 3*y + 1 }
	var points []Point
	for _, xy := range [][2]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {3, 7}, {8, 2}} {
		points = append(points, Point{P: geom.Point{X: xy[0], Y: xy[1]}, V: f(xy[0], xy[1])})
	}
	g := fillGrid(t, points, 30, 10, 10, unitExtent(10))
	for iy := 0; iy < g.Ny; iy++ {
		for ix := 0; ix < g.Nx; ix++ {
			p := g.CellCenter(ix, iy)
			if got := g.Data.Get(iy, ix); different(got, f(p.X, p.Y), 1e-6) {
				t.Fatalf("cell (%d,%d): want %g, got %g", ix, iy, f(p.X, p.Y), got)
			}
		}
	}
}

func TestSinglePointUniform(t *testing.T) {
	points := []Point{{P: geom.Point{X: 5, Y: 5}, V: 3.5}}
	g := fillGrid(t, points, 30, 8, 8, unitExtent(10))
	for i, v := range g.Data.Elements {
		if v != 3.5 {
			t.Fatalf("cell %d: want 3.5, got %g", i, v)
		}
	}
}

func TestNoPointsLeavesZeroGrid(t *testing.T) {
	g := fillGrid(t, nil, 30, 4, 4, unitExtent(1))
	for i, v := range g.Data.Elements {
		if v != 0 {
			t.Fatalf("cell %d: want 0, got %g", i, v)
		}
	}
}

// Coincident points make the local system singular; the interpolator must
// recover with a finite value rather than failing the grid.
func TestCoincidentPointsRecover(t *testing.T) {
	points := []Point{
		{P: geom.Point{X: 0, Y: 0}, V: 1},
		{P: geom.Point{X: 0, Y: 0}, V: 1},
		{P: geom.Point{X: 5, Y: 5}, V: 1},
		{P: geom.Point{X: 10, Y: 0}, V: 1},
	}
	g := fillGrid(t, points, 30, 6, 6, unitExtent(10))
	for i, v := range g.Data.Elements {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("cell %d: not finite: %g", i, v)
		}
		if different(v, 1, 1e-3) {
			t.Fatalf("cell %d: want ≈1, got %g", i, v)
		}
	}
}

func TestInterpolateCancellation(t *testing.T) {
	points := pts(0, 0, 1, 0, 0, 1, 1, 1)
	g := newGrid(unitExtent(1), 200, 200)
	ri := newRBFInterpolator(points, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ri.interpolateGrid(ctx, g); err != context.Canceled {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestThinPlateKernel(t *testing.T) {
	if thinPlate(0) != 0 {
		t.Error("φ(0) must be 0")
	}
	if thinPlate(1) != 0 {
		t.Error("φ(1) = 1²·log 1 must be 0")
	}
	if got := thinPlate(math.E); different(got, math.E*math.E, 1e-12) {
		t.Errorf("φ(e): want %g, got %g", math.E*math.E, got)
	}
}
