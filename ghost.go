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

	"gonum.org/v1/gonum/floats"
)

// GhostPolicy selects how ghost-point values are derived from the real
// samples.
type GhostPolicy int

const (
	// GhostMinimum assigns every ghost point the minimum observed real
	// value. This is the default.
	GhostMinimum GhostPolicy = iota

	// GhostConstant assigns every ghost point a fixed constant.
	GhostConstant

	// GhostIDW assigns each ghost point the inverse-distance-weighted
	// average of its two nearest real values.
	GhostIDW
)

// GhostConfig configures ghost-point generation.
type GhostConfig struct {
	Policy   GhostPolicy
	Constant float64 // value used by GhostConstant
}

// idwFloor prevents division by zero for ghost points coincident with a
// real sample.
const idwFloor = 1e-9

// generateGhosts converts a resampled boundary into synthetic samples that
// pad the interpolation beyond the convex hull of the real data. One ghost
// is emitted per resample point, in boundary order. The real point slice is
// not modified.
func generateGhosts(rb *ResampledBoundary, real []Point, cfg GhostConfig) []Point {
	if rb == nil || len(rb.Points) == 0 {
		return nil
	}
	ghosts := make([]Point, len(rb.Points))
	switch {
	case cfg.Policy == GhostIDW && len(real) > 0:
		idx := buildIndex(real)
		for i, p := range rb.Points {
			nn := idx.KNearest(p, 2)
			if len(nn) == 1 {
				ghosts[i] = Point{P: p, V: real[nn[0]].V, Ghost: true}
				continue
			}
			var wsum, vsum float64
			for _, j := range nn {
				dx, dy := real[j].P.X-p.X, real[j].P.Y-p.Y
				d := math.Max(math.Hypot(dx, dy), idwFloor)
				w := 1 / d
				wsum += w
				vsum += w * real[j].V
			}
			ghosts[i] = Point{P: p, V: vsum / wsum, Ghost: true}
		}
	case cfg.Policy == GhostMinimum && len(real) > 0:
		vals := make([]float64, len(real))
		for i, p := range real {
			vals[i] = p.V
		}
		min := floats.Min(vals)
		for i, p := range rb.Points {
			ghosts[i] = Point{P: p, V: min, Ghost: true}
		}
	default:
		// GhostConstant, or no real data to derive a value from.
		for i, p := range rb.Points {
			ghosts[i] = Point{P: p, V: cfg.Constant, Ghost: true}
		}
	}
	return ghosts
}
