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
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// RenderRaster is the colored output of one interpolation pass. It is
// immutable once produced and owned by the consumer after handoff.
type RenderRaster struct {
	Image      *image.NRGBA
	Resolution ResolutionTag
}

// renderRaster colors a filled grid with cm, normalizing values to the
// range [lo, hi]. Cells outside the grid mask become fully transparent
// regardless of their interpolated value. Raster rows run north to south,
// so grid row 0 lands at the bottom of the image.
func renderRaster(g *Grid, cm *Colormap, lo, hi float64, tag ResolutionTag) *RenderRaster {
	img := image.NewNRGBA(image.Rect(0, 0, g.Nx, g.Ny))
	span := hi - lo
	for iy := 0; iy < g.Ny; iy++ {
		for ix := 0; ix < g.Nx; ix++ {
			if g.Mask != nil && !g.Mask[iy*g.Nx+ix] {
				img.SetNRGBA(ix, g.Ny-1-iy, color.NRGBA{})
				continue
			}
			t := 0.5
			if span > 0 {
				t = (g.Data.Get(iy, ix) - lo) / span
			}
			img.SetNRGBA(ix, g.Ny-1-iy, cm.At(t))
		}
	}
	return &RenderRaster{Image: img, Resolution: tag}
}

// UpscaleRaster resizes a raster to w×h using Catmull-Rom interpolation.
// Consumers typically use this to display low-resolution passes at the
// full output size without blocky artifacts.
func UpscaleRaster(r *RenderRaster, w, h int) *RenderRaster {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), r.Image, r.Image.Bounds(), xdraw.Src, nil)
	return &RenderRaster{Image: dst, Resolution: r.Resolution}
}
