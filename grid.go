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
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// ResolutionTag identifies which scheduler pass produced a grid or raster.
type ResolutionTag int

const (
	// LowResolution marks the fast pass run during interaction.
	LowResolution ResolutionTag = iota
	// HighResolution marks the settled full-resolution pass.
	HighResolution
)

func (t ResolutionTag) String() string {
	switch t {
	case LowResolution:
		return "low-resolution"
	case HighResolution:
		return "high-resolution"
	default:
		return "unknown-resolution"
	}
}

// Grid is a regular raster of interpolated scalar values. A Grid is created
// fresh for each interpolation pass and is immutable once filled.
type Grid struct {
	// Origin is the lower-left corner of the grid.
	Origin geom.Point

	// Dx and Dy are the cell dimensions.
	Dx, Dy float64

	// Nx and Ny are the number of cells along each axis.
	Nx, Ny int

	// Data holds the interpolated values with shape [Ny, Nx]; row iy=0 is
	// the southernmost row.
	Data *sparse.DenseArray

	// Mask marks cells inside the boundary, in the same row-major order as
	// Data. A nil Mask means masking is disabled.
	Mask []bool
}

// newGrid creates a zero-filled grid of nx×ny cells covering extent.
func newGrid(extent *geom.Bounds, nx, ny int) *Grid {
	return &Grid{
		Origin: extent.Min,
		Dx:     (extent.Max.X - extent.Min.X) / float64(nx),
		Dy:     (extent.Max.Y - extent.Min.Y) / float64(ny),
		Nx:     nx,
		Ny:     ny,
		Data:   sparse.ZerosDense(ny, nx),
	}
}

// CellCenter returns the center position of cell (ix, iy).
func (g *Grid) CellCenter(ix, iy int) geom.Point {
	return geom.Point{
		X: g.Origin.X + (float64(ix)+0.5)*g.Dx,
		Y: g.Origin.Y + (float64(iy)+0.5)*g.Dy,
	}
}

// applyMask fills the grid mask from the original (not resampled) boundary
// shape for geometric fidelity.
func (g *Grid) applyMask(b Boundary) {
	if b == nil || b.Degenerate() {
		g.Mask = nil
		return
	}
	g.Mask = make([]bool, g.Nx*g.Ny)
	for iy := 0; iy < g.Ny; iy++ {
		for ix := 0; ix < g.Nx; ix++ {
			g.Mask[iy*g.Nx+ix] = b.Contains(g.CellCenter(ix, iy))
		}
	}
}

// lowResDims reduces full-resolution grid dimensions by factor along each
// axis, keeping at least one cell.
func lowResDims(nx, ny, factor int) (int, int) {
	if factor < 1 {
		factor = 1
	}
	lx := int(math.Ceil(float64(nx) / float64(factor)))
	ly := int(math.Ceil(float64(ny) / float64(factor)))
	if lx < 1 {
		lx = 1
	}
	if ly < 1 {
		ly = 1
	}
	return lx, ly
}
