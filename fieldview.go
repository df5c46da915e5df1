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

// Package fieldview renders a continuous scalar field from sparse,
// irregularly placed 2D samples, clipped to an arbitrary boundary shape,
// at interactive rates. It densifies the boundary according to data
// density, pads the samples with synthetic ghost points, fits local
// thin-plate-spline models per raster cell, and schedules a fast
// low-resolution pass during interaction with a debounced full-resolution
// pass once the input settles.
package fieldview

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// lowResNeighborCap limits the neighborhood size of the interactive pass
// so its per-cell solves stay cheap.
const lowResNeighborCap = 10

// Params holds the engine configuration. Use DefaultParams as a starting
// point; invalid values are rejected by SetParameters.
type Params struct {
	// NeighborCount is the number of nearest points each local RBF fit
	// uses. Minimum 1.
	NeighborCount int

	// GridNx and GridNy are the full (settled) grid resolution.
	GridNx, GridNy int

	// Debounce is how long the input must be quiet before the
	// high-resolution pass runs. Zero disables the interactive pass and
	// always computes at full resolution.
	Debounce time.Duration

	// LowResFactor divides the grid resolution along each axis during the
	// interactive pass. Minimum 1.
	LowResFactor int

	// Colormap names the palette used to color rasters.
	Colormap string

	// Ghost configures boundary ghost-point values.
	Ghost GhostConfig

	// FixedRange, if non-nil, pins value normalization to [min, max]
	// instead of the observed range of real samples.
	FixedRange *[2]float64
}

// DefaultParams returns the documented default configuration.
func DefaultParams() Params {
	return Params{
		NeighborCount: 30,
		GridNx:        300,
		GridNy:        300,
		Debounce:      300 * time.Millisecond,
		LowResFactor:  10,
		Colormap:      "viridis",
		Ghost:         GhostConfig{Policy: GhostMinimum},
	}
}

// check validates p and resolves its colormap.
func (p Params) check() (*Colormap, error) {
	if p.NeighborCount < 1 {
		return nil, configErrorf("neighbor count %d < 1", p.NeighborCount)
	}
	if p.GridNx < 1 || p.GridNy < 1 {
		return nil, configErrorf("grid resolution %d×%d is not positive", p.GridNx, p.GridNy)
	}
	if p.Debounce < 0 {
		return nil, configErrorf("negative debounce %v", p.Debounce)
	}
	if p.LowResFactor < 1 {
		return nil, configErrorf("low-resolution factor %d < 1", p.LowResFactor)
	}
	switch p.Ghost.Policy {
	case GhostMinimum, GhostConstant, GhostIDW:
	default:
		return nil, configErrorf("unknown ghost policy %d", p.Ghost.Policy)
	}
	if p.FixedRange != nil && !(p.FixedRange[0] < p.FixedRange[1]) {
		return nil, configErrorf("fixed range [%g, %g] is empty", p.FixedRange[0], p.FixedRange[1])
	}
	cm, err := ColormapByName(p.Colormap)
	if err != nil {
		return nil, configErrorf("%v", err)
	}
	return cm, nil
}

// Engine is the adaptive field interpolation engine. Mutating the points
// or boundary triggers a low-resolution pass immediately and a debounced
// high-resolution pass once the input settles; completed rasters are
// delivered through the OnRaster callback.
type Engine struct {
	mu       sync.Mutex
	params   Params
	cmap     *Colormap
	points   *PointSet
	boundary Boundary

	emitMu   sync.Mutex
	onRaster func(*RenderRaster)
	onError  func(error)

	sched *scheduler
}

// New creates an engine with default parameters, no points, and no
// boundary.
func New() *Engine {
	e := &Engine{
		params: DefaultParams(),
		points: NewPointSet(),
	}
	cm, err := e.params.check()
	if err != nil {
		panic("fieldview: default parameters are invalid: " + err.Error())
	}
	e.cmap = cm
	e.sched = newScheduler(e.runPass, e.params.Debounce)
	return e
}

// OnRaster registers the consumer callback for completed passes. It is
// invoked from whichever goroutine the pass ran on; the consumer is
// responsible for thread-safe handoff to its rendering surface.
func (e *Engine) OnRaster(f func(*RenderRaster)) {
	e.emitMu.Lock()
	e.onRaster = f
	e.emitMu.Unlock()
}

// OnError registers the consumer callback for pass failures. Cancelled
// passes are not reported.
func (e *Engine) OnError(f func(error)) {
	e.emitMu.Lock()
	e.onError = f
	e.emitMu.Unlock()
}

// SetPoints replaces all samples and triggers recomputation.
func (e *Engine) SetPoints(positions []geom.Point, values []float64) error {
	if err := e.points.SetData(positions, values); err != nil {
		return err
	}
	e.sched.mutated()
	return nil
}

// AddPoints appends samples and triggers recomputation.
func (e *Engine) AddPoints(positions []geom.Point, values []float64) error {
	if err := e.points.Add(positions, values); err != nil {
		return err
	}
	e.sched.mutated()
	return nil
}

// UpdatePoint changes the value of one sample and triggers recomputation.
func (e *Engine) UpdatePoint(index int, value float64) error {
	if err := e.points.UpdateValue(index, value); err != nil {
		return err
	}
	e.sched.mutated()
	return nil
}

// MovePoint changes the position of one sample and triggers recomputation.
func (e *Engine) MovePoint(index int, p geom.Point) error {
	if err := e.points.UpdatePosition(index, p); err != nil {
		return err
	}
	e.sched.mutated()
	return nil
}

// RemovePoints deletes samples and triggers recomputation.
func (e *Engine) RemovePoints(indices []int) error {
	if err := e.points.Remove(indices); err != nil {
		return err
	}
	e.sched.mutated()
	return nil
}

// Points exposes the engine's sample set for read access (hit testing and
// the like).
func (e *Engine) Points() *PointSet { return e.points }

// SetBoundary replaces the clipping boundary and triggers recomputation.
// A nil boundary disables masking and ghost-point padding.
func (e *Engine) SetBoundary(b Boundary) {
	e.mu.Lock()
	e.boundary = b
	e.mu.Unlock()
	e.sched.mutated()
}

// SetParameters atomically replaces the engine configuration. Invalid
// parameters return a *ConfigurationError and leave the previous
// configuration intact.
func (e *Engine) SetParameters(p Params) error {
	cm, err := p.check()
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.params = p
	e.cmap = cm
	e.mu.Unlock()
	e.sched.setDebounce(p.Debounce)
	return nil
}

// Parameters returns the current configuration.
func (e *Engine) Parameters() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Close cancels any in-flight computation and releases the engine's
// worker. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.sched.close()
}

// runPass captures an immutable snapshot of the live inputs, computes one
// pass, and emits the result. Cancellation is silent; other failures are
// reported through OnError as a *ComputationError.
func (e *Engine) runPass(ctx context.Context, tag ResolutionTag) error {
	e.mu.Lock()
	params := e.params
	cmap := e.cmap
	boundary := e.boundary
	e.mu.Unlock()
	real := e.points.snapshot()

	raster, err := computeRaster(ctx, real, boundary, params, cmap, tag)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		e.emitError(&ComputationError{Resolution: tag, Err: err})
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err() // cancelled while finishing; never emit
	}
	e.emitRaster(raster)
	return nil
}

func (e *Engine) emitRaster(r *RenderRaster) {
	e.emitMu.Lock()
	f := e.onRaster
	e.emitMu.Unlock()
	if f != nil {
		f(r)
	}
}

func (e *Engine) emitError(err error) {
	e.emitMu.Lock()
	f := e.onError
	e.emitMu.Unlock()
	if f != nil {
		f(err)
	}
}

// computeRaster runs the full pipeline for one pass: boundary resampling,
// ghost generation, neighbor indexing, RBF interpolation, masking, and
// color mapping.
func computeRaster(ctx context.Context, real []Point, boundary Boundary, params Params, cmap *Colormap, tag ResolutionTag) (*RenderRaster, error) {
	combined := real
	masked := boundary != nil && !boundary.Degenerate()
	if masked {
		rb := resampleBoundary(boundary, real)
		ghosts := generateGhosts(rb, real, params.Ghost)
		combined = make([]Point, 0, len(real)+len(ghosts))
		combined = append(combined, real...)
		combined = append(combined, ghosts...)
	}

	nx, ny := params.GridNx, params.GridNy
	k := params.NeighborCount
	if tag == LowResolution {
		nx, ny = lowResDims(nx, ny, params.LowResFactor)
		if k > lowResNeighborCap {
			k = lowResNeighborCap
		}
	}

	g := newGrid(passExtent(boundary, combined), nx, ny)
	ri := newRBFInterpolator(combined, k)
	if err := ri.interpolateGrid(ctx, g); err != nil {
		return nil, err
	}
	if masked {
		g.applyMask(boundary)
	} else if len(combined) == 0 {
		// Nothing to show: mask everything out.
		g.Mask = make([]bool, nx*ny)
	}

	lo, hi := valueRange(real, params.FixedRange)
	return renderRaster(g, cmap, lo, hi, tag), nil
}

// passExtent picks the grid extent: the boundary's bounding box when one
// is set, otherwise the bounding box of the points, padded where it has
// zero size.
func passExtent(boundary Boundary, points []Point) *geom.Bounds {
	if boundary != nil && !boundary.Degenerate() {
		return boundary.Extent()
	}
	b := geom.NewBounds()
	for _, p := range points {
		b.Extend(p.P.Bounds())
	}
	if b.Empty() {
		return &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 1, Y: 1}}
	}
	out := &geom.Bounds{Min: b.Min, Max: b.Max}
	if out.Max.X-out.Min.X <= 0 {
		out.Min.X -= defaultSegmentLength / 2
		out.Max.X += defaultSegmentLength / 2
	}
	if out.Max.Y-out.Min.Y <= 0 {
		out.Min.Y -= defaultSegmentLength / 2
		out.Max.Y += defaultSegmentLength / 2
	}
	return out
}

// valueRange returns the normalization range for color mapping. Ghost
// points never contribute: only real sample values set the displayed
// range.
func valueRange(real []Point, fixed *[2]float64) (float64, float64) {
	if fixed != nil {
		return fixed[0], fixed[1]
	}
	if len(real) == 0 {
		return 0, 0
	}
	vals := make([]float64, len(real))
	for i, p := range real {
		vals[i] = p.V
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 0
	}
	return lo, hi
}
