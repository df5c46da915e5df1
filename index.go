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
	"container/heap"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// treePoint is a sample position tagged with its index in the combined
// point slice, stored in a k-d tree.
type treePoint struct {
	p   geom.Point
	idx int
}

func (t treePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(treePoint)
	switch d {
	case 0:
		return t.p.X - q.p.X
	case 1:
		return t.p.Y - q.p.Y
	default:
		panic("illegal dimension")
	}
}

func (t treePoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between two points.
func (t treePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(treePoint)
	dx := t.p.X - q.p.X
	dy := t.p.Y - q.p.Y
	return dx*dx + dy*dy
}

// treePoints satisfies kdtree.Interface.
type treePoints []treePoint

func (p treePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p treePoints) Len() int                              { return len(p) }
func (p treePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p treePoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(treePlane{treePoints: p, Dim: d},
		kdtree.MedianOfRandoms(treePlane{treePoints: p, Dim: d}, 100))
}

// treePlane satisfies sort.Interface and kdtree.SortSlicer for treePoints.
type treePlane struct {
	treePoints
	kdtree.Dim
}

func (p treePlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.treePoints[i].p.X < p.treePoints[j].p.X
	case 1:
		return p.treePoints[i].p.Y < p.treePoints[j].p.Y
	default:
		panic("illegal dimension")
	}
}

func (p treePlane) Slice(start, end int) kdtree.SortSlicer {
	return treePlane{treePoints: p.treePoints[start:end], Dim: p.Dim}
}

func (p treePlane) Swap(i, j int) {
	p.treePoints[i], p.treePoints[j] = p.treePoints[j], p.treePoints[i]
}

// NeighborIndex supports k-nearest-neighbor queries over a combined
// real+ghost point set. It is built once per interpolation pass and is
// read-only afterwards.
type NeighborIndex struct {
	tree   *kdtree.Tree
	points []Point
}

// buildIndex creates an index over points. The slice must not be mutated
// for the lifetime of the index.
func buildIndex(points []Point) *NeighborIndex {
	tp := make(treePoints, len(points))
	for i, p := range points {
		tp[i] = treePoint{p: p.P, idx: i}
	}
	ni := &NeighborIndex{points: points}
	if len(tp) > 0 {
		ni.tree = kdtree.New(tp, true)
	}
	return ni
}

// Len returns the number of indexed points.
func (ni *NeighborIndex) Len() int { return len(ni.points) }

// KNearest returns the indices of the k points nearest to p, ordered by
// ascending distance. Distance ties are broken by insertion order (real
// points precede ghost points). If fewer than k points are indexed, all
// of them are returned.
func (ni *NeighborIndex) KNearest(p geom.Point, k int) []int {
	if ni.tree == nil || k < 1 {
		return nil
	}
	if k > len(ni.points) {
		k = len(ni.points)
	}
	keeper := kdtree.NewNKeeper(k)
	ni.tree.NearestSet(keeper, treePoint{p: p})

	type hit struct {
		idx  int
		dist float64
	}
	hits := make([]hit, 0, k)
	for keeper.Len() > 0 {
		item := heap.Pop(keeper).(kdtree.ComparableDist)
		if tp, ok := item.Comparable.(treePoint); ok {
			hits = append(hits, hit{idx: tp.idx, dist: item.Dist})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].idx < hits[j].idx
	})
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.idx
	}
	return out
}

// annd computes the average nearest-neighbor distance over points: the
// mean, over all points, of the Euclidean distance to the nearest other
// point. It returns 0 if fewer than two points are supplied.
func annd(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	tp := make(treePoints, len(points))
	for i, p := range points {
		tp[i] = treePoint{p: p.P, idx: i}
	}
	tree := kdtree.New(tp, true)
	dists := make([]float64, 0, len(points))
	for _, q := range tp {
		keeper := kdtree.NewNKeeper(2)
		tree.NearestSet(keeper, q)
		// The keeper holds the query point itself at distance 0 and its
		// nearest other point; the larger distance is the one we want.
		var d float64
		for keeper.Len() > 0 {
			item := heap.Pop(keeper).(kdtree.ComparableDist)
			if _, ok := item.Comparable.(treePoint); ok && item.Dist > d {
				d = item.Dist
			}
		}
		dists = append(dists, math.Sqrt(d))
	}
	return floats.Sum(dists) / float64(len(dists))
}
