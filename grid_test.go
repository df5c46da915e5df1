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
	"testing"

	"github.com/ctessum/geom"
)

func TestLowResDims(t *testing.T) {
	cases := []struct {
		nx, ny, factor int
		wantX, wantY   int
	}{
		{300, 300, 10, 30, 30},
		{305, 300, 10, 31, 30},
		{50, 50, 1, 50, 50},
		{5, 5, 10, 1, 1},
		{1, 1, 1, 1, 1},
		{300, 300, 0, 300, 300}, // factor below 1 is treated as 1
	}
	for _, c := range cases {
		gx, gy := lowResDims(c.nx, c.ny, c.factor)
		if gx != c.wantX || gy != c.wantY {
			t.Errorf("lowResDims(%d, %d, %d) = (%d, %d), want (%d, %d)",
				c.nx, c.ny, c.factor, gx, gy, c.wantX, c.wantY)
		}
	}
}

func TestGridGeometry(t *testing.T) {
	ext := &geom.Bounds{Min: geom.Point{X: -5, Y: -5}, Max: geom.Point{X: 15, Y: 15}}
	g := newGrid(ext, 10, 20)
	if different(g.Dx, 2, 1e-12) || different(g.Dy, 1, 1e-12) {
		t.Fatalf("cell size: want (2, 1), got (%g, %g)", g.Dx, g.Dy)
	}
	c := g.CellCenter(0, 0)
	if different(c.X, -4, 1e-12) || different(c.Y, -4.5, 1e-12) {
		t.Errorf("first cell center: want (-4, -4.5), got %v", c)
	}
	c = g.CellCenter(9, 19)
	if different(c.X, 14, 1e-12) || different(c.Y, 14.5, 1e-12) {
		t.Errorf("last cell center: want (14, 14.5), got %v", c)
	}
	if got := g.Data.Shape[0]; got != 20 {
		t.Errorf("Data shape[0]: want 20, got %d", got)
	}
}

func TestApplyMask(t *testing.T) {
	ext := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}
	g := newGrid(ext, 10, 10)
	g.applyMask(&CircleBoundary{Center: geom.Point{X: 5, Y: 5}, Radius: 3})

	if g.Mask == nil {
		t.Fatal("mask not set")
	}
	center := 5*g.Nx + 5
	corner := 0
	if !g.Mask[center] {
		t.Error("cell at circle center should be inside")
	}
	if g.Mask[corner] {
		t.Error("grid corner should be outside the circle")
	}

	g.applyMask(&CircleBoundary{Radius: 0})
	if g.Mask != nil {
		t.Error("degenerate boundary must disable masking")
	}
}
