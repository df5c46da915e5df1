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
	"image/color"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// lutSize is the number of entries in a colormap's lookup table.
const lutSize = 256

// Stop is a color anchor within a colormap. Pos runs from 0 to 1.
type Stop struct {
	Pos   float64
	Color string // hex, e.g. "#440154"
}

// Colormap maps normalized scalar values in [0, 1] to colors by linear
// interpolation between stops. Lookups go through a precomputed table.
type Colormap struct {
	Name  string
	stops []stopColor
	lut   []color.NRGBA
}

type stopColor struct {
	pos float64
	col colorful.Color
}

// NewColormap builds a colormap from explicit stops. At least two stops
// are required and their positions should cover [0, 1].
func NewColormap(name string, stops []Stop) (*Colormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("fieldview: colormap %q needs at least 2 stops, got %d", name, len(stops))
	}
	cm := &Colormap{Name: name}
	for _, s := range stops {
		c, err := colorful.Hex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("fieldview: while parsing colormap %q stop %q: %v", name, s.Color, err)
		}
		cm.stops = append(cm.stops, stopColor{pos: s.Pos, col: c})
	}
	sort.Slice(cm.stops, func(i, j int) bool { return cm.stops[i].pos < cm.stops[j].pos })
	cm.buildLUT()
	return cm, nil
}

// FromPalette adapts a gonum plot palette into a colormap with evenly
// spaced stops.
func FromPalette(name string, p palette.Palette) (*Colormap, error) {
	colors := p.Colors()
	if len(colors) < 2 {
		return nil, fmt.Errorf("fieldview: palette %q has %d colors, need at least 2", name, len(colors))
	}
	cm := &Colormap{Name: name}
	for i, c := range colors {
		cc, ok := colorful.MakeColor(c)
		if !ok {
			return nil, fmt.Errorf("fieldview: palette %q color %d is fully transparent", name, i)
		}
		cm.stops = append(cm.stops, stopColor{
			pos: float64(i) / float64(len(colors)-1),
			col: cc,
		})
	}
	cm.buildLUT()
	return cm, nil
}

func (cm *Colormap) buildLUT() {
	cm.lut = make([]color.NRGBA, lutSize)
	for i := range cm.lut {
		c := cm.interpolate(float64(i) / float64(lutSize-1))
		r, g, b := c.Clamped().RGB255()
		cm.lut[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
}

func (cm *Colormap) interpolate(t float64) colorful.Color {
	s := cm.stops
	if t <= s[0].pos {
		return s[0].col
	}
	for i := 0; i < len(s)-1; i++ {
		if t <= s[i+1].pos {
			span := s[i+1].pos - s[i].pos
			f := 0.0
			if span > 0 {
				f = (t - s[i].pos) / span
			}
			return s[i].col.BlendRgb(s[i+1].col, f)
		}
	}
	return s[len(s)-1].col
}

// At maps a normalized value to a color. Values outside [0, 1] are clamped.
func (cm *Colormap) At(t float64) color.NRGBA {
	if t != t { // NaN
		return color.NRGBA{}
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return cm.lut[int(t*float64(lutSize-1)+0.5)]
}

// Stop positions approximate the reference matplotlib maps.
var builtinStops = map[string][]Stop{
	"viridis": {
		{0.0, "#440154"}, {0.25, "#3b528b"}, {0.5, "#21918c"}, {0.75, "#5ec962"}, {1.0, "#fde725"},
	},
	"plasma": {
		{0.0, "#0d0887"}, {0.25, "#7e03a8"}, {0.5, "#cc4778"}, {0.75, "#f89540"}, {1.0, "#f0f921"},
	},
	"inferno": {
		{0.0, "#000004"}, {0.25, "#57106e"}, {0.5, "#bb3754"}, {0.75, "#f98e09"}, {1.0, "#fcffa4"},
	},
	"magma": {
		{0.0, "#000004"}, {0.25, "#51127c"}, {0.5, "#b73779"}, {0.75, "#fc8961"}, {1.0, "#fcfdbf"},
	},
	"coolwarm": {
		{0.0, "#3b4cc0"}, {0.5, "#dddddd"}, {1.0, "#b40426"},
	},
	"jet": {
		{0.0, "#000080"}, {0.125, "#0000ff"}, {0.375, "#00ffff"}, {0.625, "#ffff00"}, {0.875, "#ff0000"}, {1.0, "#800000"},
	},
}

// ColormapByName resolves a named colormap. Recognized names are the
// built-in maps (viridis, plasma, inferno, magma, coolwarm, jet) and
// "smoothbluered" (the Moreland diverging map).
func ColormapByName(name string) (*Colormap, error) {
	key := strings.ToLower(name)
	if stops, ok := builtinStops[key]; ok {
		return NewColormap(key, stops)
	}
	if key == "smoothbluered" {
		m := moreland.SmoothBlueRed()
		m.SetMin(0)
		m.SetMax(1)
		return FromPalette(key, m.Palette(lutSize))
	}
	return nil, fmt.Errorf("fieldview: unknown colormap %q", name)
}
