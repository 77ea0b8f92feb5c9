/*
Copyright © 2026 the plume authors.
This file is part of plume.

plume is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plume is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plume.  If not, see <http://www.gnu.org/licenses/>.
*/

package figure

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot/palette/moreland"
)

// Band is a concentration range [Min, Max) drawn in a single color.
type Band struct {
	Min, Max float64 // [μg/L]
	Label    string
	Color    color.Color
}

// Contains returns whether c falls within the band.
func (b Band) Contains(c float64) bool {
	return c >= b.Min && c < b.Max
}

// DefaultCutoffs are the lower bounds [μg/L] of the default concentration bands.
var DefaultCutoffs = []float64{100, 300, 500, 900}

var (
	red    = color.RGBA{R: 255, A: 255}
	orange = color.RGBA{R: 255, G: 165, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	green  = color.RGBA{G: 128, A: 255}

	oliveDrab = color.RGBA{R: 107, G: 142, B: 35, A: 255}
	goldenrod = color.RGBA{R: 218, G: 165, B: 32, A: 255}
	chocolate = color.RGBA{R: 210, G: 105, B: 30, A: 255}
	crimson   = color.RGBA{R: 220, G: 20, B: 60, A: 255}
)

// DefaultBands returns the bands [100, 300), [300, 500), [500, 900), and
// [900, ∞) μg/L.
func DefaultBands() []Band {
	b, err := Bands(DefaultCutoffs)
	if err != nil {
		panic(err)
	}
	return b
}

// Bands creates concentration bands from a list of lower bounds. Each band
// extends to the next cutoff, and the last band is unbounded. Four bands
// are colored green, yellow, orange, and red; other numbers of bands use
// a black-body color scale.
func Bands(cutoffs []float64) ([]Band, error) {
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("figure: no concentration band cutoffs specified")
	}
	c := append([]float64{}, cutoffs...)
	sort.Float64s(c)
	for i, v := range c {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("figure: band cutoff %g should be >0", v)
		}
		if i > 0 && v == c[i-1] {
			return nil, fmt.Errorf("figure: duplicate band cutoff %g", v)
		}
	}
	colors := []color.Color{green, yellow, orange, red}
	if len(c) != len(colors) {
		cm := moreland.ExtendedBlackBody()
		cm.SetMin(0)
		cm.SetMax(1)
		colors = cm.Palette(len(c)).Colors()
	}
	o := make([]Band, len(c))
	for i, v := range c {
		o[i] = Band{Min: v, Max: math.Inf(1), Color: colors[i]}
		if i < len(c)-1 {
			o[i].Max = c[i+1]
			o[i].Label = fmt.Sprintf("%g-%g", v, c[i+1])
		} else {
			o[i].Label = fmt.Sprintf("%g+", v)
		}
	}
	return o, nil
}

// Classify returns the index of the band that c falls in, or -1 if c is
// below the lowest band.
func Classify(bands []Band, c float64) int {
	for i, b := range bands {
		if b.Contains(c) {
			return i
		}
	}
	return -1
}

// contourColors returns the line colors for contours at the lower bound of
// each band.
func contourColors(n int) []color.Color {
	c := []color.Color{oliveDrab, goldenrod, chocolate, crimson}
	if n == len(c) {
		return c
	}
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(0)
	cm.SetMax(1)
	return cm.Palette(n).Colors()
}
