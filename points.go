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
	"fmt"
	"math"
	"sync"

	"github.com/ctessum/geom"
)

// Point is a single field sample. Ghost points are synthetic boundary
// samples generated by the engine; they are never stored in a PointSet.
type Point struct {
	P     geom.Point
	V     float64
	Ghost bool
}

// PointSet holds the real (caller-supplied) samples that drive the
// interpolation. All methods are safe for concurrent use.
type PointSet struct {
	mu     sync.Mutex
	points []Point
	gen    uint64
}

// NewPointSet creates an empty PointSet.
func NewPointSet() *PointSet {
	return new(PointSet)
}

// SetData replaces all samples. positions and values must have equal length.
func (s *PointSet) SetData(positions []geom.Point, values []float64) error {
	if len(positions) != len(values) {
		return fmt.Errorf("fieldview: point count mismatch: %d positions, %d values",
			len(positions), len(values))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = make([]Point, len(positions))
	for i, p := range positions {
		s.points[i] = Point{P: p, V: values[i]}
	}
	s.gen++
	return nil
}

// Add appends new samples to the set.
func (s *PointSet) Add(positions []geom.Point, values []float64) error {
	if len(positions) != len(values) {
		return fmt.Errorf("fieldview: point count mismatch: %d positions, %d values",
			len(positions), len(values))
	}
	if len(positions) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range positions {
		s.points = append(s.points, Point{P: p, V: values[i]})
	}
	s.gen++
	return nil
}

// UpdateValue replaces the value of the sample at index i.
func (s *PointSet) UpdateValue(i int, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("fieldview: point index %d out of range [0,%d)", i, len(s.points))
	}
	s.points[i].V = v
	s.gen++
	return nil
}

// UpdatePosition moves the sample at index i.
func (s *PointSet) UpdatePosition(i int, p geom.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("fieldview: point index %d out of range [0,%d)", i, len(s.points))
	}
	s.points[i].P = p
	s.gen++
	return nil
}

// Remove deletes the samples at the given indices. Indices may be supplied
// in any order; out-of-range indices are an error and leave the set
// unchanged.
func (s *PointSet) Remove(indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.points) {
			return fmt.Errorf("fieldview: point index %d out of range [0,%d)", i, len(s.points))
		}
		drop[i] = true
	}
	kept := s.points[:0]
	for i, p := range s.points {
		if !drop[i] {
			kept = append(kept, p)
		}
	}
	s.points = kept
	s.gen++
	return nil
}

// Clear removes all samples.
func (s *PointSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = s.points[:0]
	s.gen++
}

// Len returns the number of samples.
func (s *PointSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// ClosestPoint returns the index of the sample nearest to p. If threshold
// is positive and the nearest sample is farther away than threshold, no
// index is returned.
func (s *PointSet) ClosestPoint(p geom.Point, threshold float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.points) == 0 {
		return 0, false
	}
	best, bestD := 0, math.Inf(1)
	for i, q := range s.points {
		dx, dy := q.P.X-p.X, q.P.Y-p.Y
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	if threshold > 0 && bestD > threshold*threshold {
		return 0, false
	}
	return best, true
}

// snapshot returns a copy of the current samples for use by a single
// interpolation pass. The copy is never mutated afterwards.
func (s *PointSet) snapshot() []Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// generation returns a counter that increments on every mutation.
func (s *PointSet) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
