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

// Package fieldviewutil wires the fieldview engine into a command-line
// renderer: TOML job configuration, CSV sample loading, and PNG output.
package fieldviewutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"

	"github.com/spatialmodel/fieldview"
)

// RenderConfig describes one render job.
type RenderConfig struct {
	// Points is the path to a CSV file with x,y,value rows. A header row
	// is skipped if its first field does not parse as a number.
	Points string

	// Output is the destination PNG path.
	Output string

	// Grid is the output resolution [nx, ny]. Defaults to 300×300.
	Grid []int

	// Neighbors is the RBF neighborhood size. Defaults to 30.
	Neighbors int

	// Colormap names the palette. Defaults to "viridis".
	Colormap string

	// GhostPolicy is "minimum", "constant", or "idw". Defaults to
	// "minimum".
	GhostPolicy string

	// GhostConstant is the value used by the "constant" policy.
	GhostConstant float64

	// Boundary describes the clipping shape. An empty Kind disables
	// masking.
	Boundary BoundaryConfig
}

// BoundaryConfig selects one boundary shape variant.
type BoundaryConfig struct {
	Kind     string      // "polygon", "circle", or "rect"
	Vertices [][]float64 // polygon vertices, [x, y] pairs
	Center   []float64   // circle center [x, y]
	Radius   float64     // circle radius
	Min      []float64   // rect lower-left [x, y]
	Max      []float64   // rect upper-right [x, y]
}

// ReadConfig loads and validates a render job configuration file.
func ReadConfig(path string) (*RenderConfig, error) {
	c := &RenderConfig{
		Grid:        []int{300, 300},
		Neighbors:   30,
		Colormap:    "viridis",
		GhostPolicy: "minimum",
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("fieldviewutil: while reading config %s: %v", path, err)
	}
	if c.Points == "" {
		return nil, fmt.Errorf("fieldviewutil: config %s does not specify a points file", path)
	}
	if c.Output == "" {
		return nil, fmt.Errorf("fieldviewutil: config %s does not specify an output file", path)
	}
	if len(c.Grid) != 2 {
		return nil, fmt.Errorf("fieldviewutil: config %s grid must be [nx, ny]", path)
	}
	return c, nil
}

// Params converts the job configuration into engine parameters. A short
// debounce collapses the boundary and point mutations of a render job
// into a single settled full-resolution pass.
func (c *RenderConfig) Params() (fieldview.Params, error) {
	p := fieldview.DefaultParams()
	p.GridNx, p.GridNy = c.Grid[0], c.Grid[1]
	p.NeighborCount = c.Neighbors
	p.Colormap = c.Colormap
	p.Debounce = 50 * time.Millisecond
	switch c.GhostPolicy {
	case "", "minimum":
		p.Ghost = fieldview.GhostConfig{Policy: fieldview.GhostMinimum}
	case "constant":
		p.Ghost = fieldview.GhostConfig{Policy: fieldview.GhostConstant, Constant: c.GhostConstant}
	case "idw":
		p.Ghost = fieldview.GhostConfig{Policy: fieldview.GhostIDW}
	default:
		return p, fmt.Errorf("fieldviewutil: unknown ghost policy %q", c.GhostPolicy)
	}
	return p, nil
}

// MakeBoundary converts the boundary section into a fieldview.Boundary,
// or nil if no boundary is configured.
func (c *RenderConfig) MakeBoundary() (fieldview.Boundary, error) {
	b := c.Boundary
	switch b.Kind {
	case "":
		return nil, nil
	case "polygon":
		if len(b.Vertices) < 3 {
			return nil, fmt.Errorf("fieldviewutil: polygon boundary needs at least 3 vertices, got %d", len(b.Vertices))
		}
		verts := make([]geom.Point, len(b.Vertices))
		for i, v := range b.Vertices {
			if len(v) != 2 {
				return nil, fmt.Errorf("fieldviewutil: polygon vertex %d is not an [x, y] pair", i)
			}
			verts[i] = geom.Point{X: v[0], Y: v[1]}
		}
		return fieldview.NewPolygonBoundary(verts), nil
	case "circle":
		if len(b.Center) != 2 {
			return nil, fmt.Errorf("fieldviewutil: circle boundary needs a center [x, y]")
		}
		return &fieldview.CircleBoundary{
			Center: geom.Point{X: b.Center[0], Y: b.Center[1]},
			Radius: b.Radius,
		}, nil
	case "rect":
		if len(b.Min) != 2 || len(b.Max) != 2 {
			return nil, fmt.Errorf("fieldviewutil: rect boundary needs min and max [x, y]")
		}
		return &fieldview.RectBoundary{
			Min: geom.Point{X: b.Min[0], Y: b.Min[1]},
			Max: geom.Point{X: b.Max[0], Y: b.Max[1]},
		}, nil
	default:
		return nil, fmt.Errorf("fieldviewutil: unknown boundary kind %q", b.Kind)
	}
}

// ReadPoints loads x,y,value samples from a CSV file.
func ReadPoints(path string) ([]geom.Point, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("fieldviewutil: while opening points file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("fieldviewutil: while reading points file %s: %v", path, err)
	}
	var positions []geom.Point
	var values []float64
	for i, row := range rows {
		if len(row) < 3 {
			return nil, nil, fmt.Errorf("fieldviewutil: %s row %d has %d fields, need 3", path, i+1, len(row))
		}
		x, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, nil, fmt.Errorf("fieldviewutil: %s row %d: %v", path, i+1, err)
		}
		y, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("fieldviewutil: %s row %d: %v", path, i+1, err)
		}
		v, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("fieldviewutil: %s row %d: %v", path, i+1, err)
		}
		positions = append(positions, geom.Point{X: x, Y: y})
		values = append(values, v)
	}
	return positions, values, nil
}
