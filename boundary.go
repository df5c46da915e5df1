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
)

// A Boundary is the clipping region of the rendered field. Implementations
// are immutable values; replacing the engine's boundary is done with
// Engine.SetBoundary.
type Boundary interface {
	// polyline returns the boundary approximated as a closed loop of
	// vertices in traversal order. The final closing segment back to the
	// first vertex is implicit. target is the desired segment length, used
	// by curved shapes to pick their chord count.
	polyline(target float64) []geom.Point

	// Contains reports whether p is inside the boundary. Points on the
	// edge count as inside.
	Contains(p geom.Point) bool

	// Extent returns the bounding box of the boundary.
	Extent() *geom.Bounds

	// Degenerate reports whether the boundary is too small or malformed
	// to define a region. Degenerate boundaries disable masking.
	Degenerate() bool
}

// PolygonBoundary clips the field to a simple closed polygon. Only the
// first ring of the polygon is used for resampling; interior rings still
// participate in the containment test.
type PolygonBoundary struct {
	Polygon geom.Polygon
}

// NewPolygonBoundary creates a polygon boundary from a closed loop of
// vertices. The loop should not repeat its first vertex.
func NewPolygonBoundary(vertices []geom.Point) *PolygonBoundary {
	ring := make([]geom.Point, len(vertices))
	copy(ring, vertices)
	return &PolygonBoundary{Polygon: geom.Polygon{ring}}
}

func (b *PolygonBoundary) polyline(target float64) []geom.Point {
	if len(b.Polygon) == 0 {
		return nil
	}
	ring := b.Polygon[0]
	// Drop an explicit closing vertex; the loop closure is implicit.
	if n := len(ring); n > 1 && ring[0].Equals(ring[n-1]) {
		ring = ring[:n-1]
	}
	return ring
}

func (b *PolygonBoundary) Contains(p geom.Point) bool {
	return p.Within(b.Polygon) != geom.Outside
}

func (b *PolygonBoundary) Extent() *geom.Bounds {
	return b.Polygon.Bounds()
}

func (b *PolygonBoundary) Degenerate() bool {
	distinct := make(map[geom.Point]bool)
	for _, v := range b.polyline(0) {
		distinct[v] = true
	}
	return len(distinct) < 3
}

// CircleBoundary clips the field to a circle.
type CircleBoundary struct {
	Center geom.Point
	Radius float64
}

func (b *CircleBoundary) polyline(target float64) []geom.Point {
	// Pick the chord count so that chord length does not exceed target,
	// with a floor that keeps coarse circles recognizable.
	n := 16
	if target > 0 {
		if m := int(math.Ceil(2 * math.Pi * b.Radius / target)); m > n {
			n = m
		}
	}
	pts := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		θ := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Point{
			X: b.Center.X + b.Radius*math.Cos(θ),
			Y: b.Center.Y + b.Radius*math.Sin(θ),
		}
	}
	return pts
}

func (b *CircleBoundary) Contains(p geom.Point) bool {
	dx, dy := p.X-b.Center.X, p.Y-b.Center.Y
	return dx*dx+dy*dy <= b.Radius*b.Radius
}

func (b *CircleBoundary) Extent() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: b.Center.X - b.Radius, Y: b.Center.Y - b.Radius},
		Max: geom.Point{X: b.Center.X + b.Radius, Y: b.Center.Y + b.Radius},
	}
}

func (b *CircleBoundary) Degenerate() bool {
	return b.Radius <= 0 || math.IsNaN(b.Radius) || math.IsInf(b.Radius, 0)
}

// RectBoundary clips the field to an axis-aligned rectangle.
type RectBoundary struct {
	Min, Max geom.Point
}

func (b *RectBoundary) polyline(target float64) []geom.Point {
	return []geom.Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

func (b *RectBoundary) Contains(p geom.Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b *RectBoundary) Extent() *geom.Bounds {
	return &geom.Bounds{Min: b.Min, Max: b.Max}
}

func (b *RectBoundary) Degenerate() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}
