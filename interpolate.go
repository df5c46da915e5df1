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

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/mat"
)

// rowBatch is the number of grid rows interpolated between cancellation
// checks.
const rowBatch = 8

// rbfInterpolator evaluates a thin-plate-spline radial basis function,
// fitted locally to the k nearest neighbors of each query point, over the
// cells of a grid.
type rbfInterpolator struct {
	points    []Point
	index     *NeighborIndex
	neighbors int
}

func newRBFInterpolator(points []Point, neighbors int) *rbfInterpolator {
	if neighbors < 1 {
		neighbors = 1
	}
	return &rbfInterpolator{
		points:    points,
		index:     buildIndex(points),
		neighbors: neighbors,
	}
}

// thinPlate is the thin-plate-spline kernel φ(r) = r² log r.
func thinPlate(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return r * r * math.Log(r)
}

// interpolateGrid fills g.Data with interpolated values at every cell
// center. The context is checked between row batches so an in-flight pass
// can be cancelled without finishing the whole grid.
func (ri *rbfInterpolator) interpolateGrid(ctx context.Context, g *Grid) error {
	switch len(ri.points) {
	case 0:
		return nil // leave the grid zero-filled
	case 1:
		v := ri.points[0].V
		for i := range g.Data.Elements {
			g.Data.Elements[i] = v
		}
		return nil
	}
	for iy := 0; iy < g.Ny; iy++ {
		if iy%rowBatch == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for ix := 0; ix < g.Nx; ix++ {
			g.Data.Set(ri.evaluateAt(g.CellCenter(ix, iy)), iy, ix)
		}
	}
	return nil
}

// evaluateAt fits the local RBF model at p and evaluates it there. A
// singular local system falls back to the nearest point's raw value.
func (ri *rbfInterpolator) evaluateAt(p geom.Point) float64 {
	nn := ri.index.KNearest(p, ri.neighbors)
	if len(nn) == 0 {
		return 0
	}
	if len(nn) < 3 {
		// Too few neighbors to anchor the polynomial trend.
		return ri.points[nn[0]].V
	}

	w, poly, ok := ri.solveLocal(nn)
	if !ok {
		return ri.points[nn[0]].V
	}

	v := poly[0] + poly[1]*p.X + poly[2]*p.Y
	for i, j := range nn {
		q := ri.points[j].P
		v += w[i] * thinPlate(math.Hypot(p.X-q.X, p.Y-q.Y))
	}
	return v
}

// solveLocal solves the bordered thin-plate-spline system
//
//	| K  P | |w|   |v|
//	| Pᵀ 0 | |c| = |0|
//
// where K is the kernel matrix over the neighborhood and P = [1 x y]. The
// polynomial block makes the fit exact for constant and linear trends.
// Near-singular systems (coincident points) are retried with diagonal
// regularization before giving up.
func (ri *rbfInterpolator) solveLocal(nn []int) (w, poly []float64, ok bool) {
	n := len(nn)
	dim := n + 3
	a := mat.NewDense(dim, dim, nil)
	b := mat.NewVecDense(dim, nil)

	for i, ii := range nn {
		pi := ri.points[ii].P
		for j, jj := range nn {
			pj := ri.points[jj].P
			a.Set(i, j, thinPlate(math.Hypot(pi.X-pj.X, pi.Y-pj.Y)))
		}
		a.Set(i, n, 1)
		a.Set(i, n+1, pi.X)
		a.Set(i, n+2, pi.Y)
		a.Set(n, i, 1)
		a.Set(n+1, i, pi.X)
		a.Set(n+2, i, pi.Y)
		b.SetVec(i, ri.points[ii].V)
	}

	x := mat.NewDense(dim, 1, nil)
	var qr mat.QR
	qr.Factorize(a)
	if err := qr.SolveTo(x, false, b); err != nil {
		// Coincident neighbors make K rank-deficient; nudge the diagonal
		// and retry once.
		for i := 0; i < n; i++ {
			a.Set(i, i, a.At(i, i)+1e-8)
		}
		qr.Factorize(a)
		if err := qr.SolveTo(x, false, b); err != nil {
			return nil, nil, false
		}
	}

	w = make([]float64, n)
	for i := range w {
		w[i] = x.At(i, 0)
	}
	poly = []float64{x.At(n, 0), x.At(n+1, 0), x.At(n+2, 0)}
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, false
		}
	}
	for _, v := range poly {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, false
		}
	}
	return w, poly, true
}
