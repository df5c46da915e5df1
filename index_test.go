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

func pts(coords ...float64) []Point {
	out := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, Point{P: geom.Point{X: coords[i], Y: coords[i+1]}})
	}
	return out
}

func TestKNearestOrdering(t *testing.T) {
	points := pts(
		0, 0,
		5, 0,
		1, 0,
		3, 0,
	)
	idx := buildIndex(points)

	got := idx.KNearest(geom.Point{X: 0, Y: 0}, 3)
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestKNearestTiesByInsertionOrder(t *testing.T) {
	points := pts(
		1, 0,
		-1, 0,
		0, 2,
	)
	idx := buildIndex(points)
	got := idx.KNearest(geom.Point{X: 0, Y: 0}, 2)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("equidistant points should keep insertion order, got %v", got)
	}
}

func TestKNearestCapsAtAvailable(t *testing.T) {
	points := pts(0, 0, 1, 1)
	idx := buildIndex(points)
	if got := idx.KNearest(geom.Point{}, 10); len(got) != 2 {
		t.Errorf("want all 2 points, got %v", got)
	}
	empty := buildIndex(nil)
	if got := empty.KNearest(geom.Point{}, 3); got != nil {
		t.Errorf("empty index should return nil, got %v", got)
	}
}

func TestANND(t *testing.T) {
	if a := annd(nil); a != 0 {
		t.Errorf("no points: want 0, got %g", a)
	}
	if a := annd(pts(3, 4)); a != 0 {
		t.Errorf("one point: want 0, got %g", a)
	}
	if a := annd(pts(0, 0, 3, 4)); different(a, 5, 1e-12) {
		t.Errorf("two points: want 5, got %g", a)
	}
	// Unit-square corners: each point's nearest other point is one side
	// length away.
	square := pts(0, 0, 10, 0, 0, 10, 10, 10)
	if a := annd(square); different(a, 10, 1e-12) {
		t.Errorf("square corners: want 10, got %g", a)
	}
}

func TestANNDPositiveForMultiplePoints(t *testing.T) {
	points := pts(0, 0, 1, 2, 4, 4, 9, 1, 3, 7)
	if a := annd(points); a <= 0 {
		t.Errorf("ANND must be positive for ≥2 distinct points, got %g", a)
	}
}
