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

const (
	// defaultSegmentLength is used when fewer than two real points exist
	// and no data density can be measured.
	defaultSegmentLength = 10.0

	// segmentFactor positions the target segment length within the
	// [1.0, 1.5]×ANND band.
	segmentFactor = 1.25
)

// ResampledBoundary is a boundary shape discretized into a dense closed
// polyline whose segment lengths track the data density of the point set
// that produced it. It is regenerated whenever the shape or the point set
// changes.
type ResampledBoundary struct {
	// Points is the closed loop of resample points in traversal order of
	// the source shape. The closing segment is implicit.
	Points []geom.Point

	// Target is the segment length the discretization aimed for.
	Target float64

	// ANND is the average nearest-neighbor distance the target was
	// derived from, or 0 if the point set was degenerate.
	ANND float64
}

// resampleBoundary discretizes b into segments whose lengths track the
// density of the real points: segments never exceed 1.5×ANND and fall
// within [1.0, 1.5]×ANND whenever the edge length allows both bounds.
// Degenerate point sets fall back to defaultSegmentLength. Edges shorter
// than the target collapse to their original vertices with no subdivision.
func resampleBoundary(b Boundary, real []Point) *ResampledBoundary {
	a := annd(real)
	target := defaultSegmentLength
	if a > 0 {
		target = a * segmentFactor
	}

	loop := b.polyline(target)
	rb := &ResampledBoundary{Target: target, ANND: a}
	if len(loop) < 2 {
		rb.Points = loop
		return rb
	}

	for i := range loop {
		p1 := loop[i]
		p2 := loop[(i+1)%len(loop)]
		edge := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)

		n := segmentCount(edge, target, a)
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			rb.Points = append(rb.Points, geom.Point{
				X: p1.X + t*(p2.X-p1.X),
				Y: p1.Y + t*(p2.Y-p1.Y),
			})
		}
	}
	return rb
}

// segmentCount picks how many pieces to cut an edge into so that the
// resulting segment length stays within [1.0, 1.5]×annd whenever the edge
// is long enough to allow it. When no count satisfies both bounds the
// ceiling wins: segments may come out shorter than annd but never longer
// than 1.5×annd.
func segmentCount(edge, target, annd float64) int {
	if edge <= 0 || target <= 0 {
		return 1
	}
	n := int(math.Round(edge / target))
	if n < 1 {
		n = 1
	}
	if annd > 0 {
		if hi := int(math.Floor(edge / annd)); hi >= 1 && n > hi {
			n = hi
		}
		if lo := int(math.Ceil(edge / (1.5 * annd))); n < lo {
			n = lo
		}
	}
	return n
}
