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
	"image/color"

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
	"github.com/ctessum/sparse"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// contourXMax is the downstream extent [ft] of contour plots.
const contourXMax = 500

// Contour draws iso-concentration lines at the lower bound of each band.
type Contour struct {
	Bands []Band
}

// grid adapts a concentration field to plotter.GridXYZ.
type grid struct {
	x, y []float64
	z    *sparse.DenseArray // [y, x]
}

func newGrid(f *plume.Field) grid {
	return grid{x: f.XAxis(), y: f.YAxis(), z: f.Dense()}
}

func (g grid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g grid) Z(c, r int) float64 { return g.z.Get(r, c) }
func (g grid) X(c int) float64    { return g.x[c] }
func (g grid) Y(r int) float64    { return g.y[r] }

type palette []color.Color

func (p palette) Colors() []color.Color { return p }

// levelThumb is a legend entry for a single contour level.
type levelThumb struct {
	draw.LineStyle
}

func (t levelThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(t.LineStyle, c.Min.X, y, c.Max.X, y)
}

// Levels returns the concentrations [μg/L] contours are drawn at.
func (ct *Contour) Levels() []float64 {
	o := make([]float64, len(ct.Bands))
	for i, b := range ct.Bands {
		o[i] = b.Min
	}
	return o
}

// LineStyles returns the line style of each level.
func (ct *Contour) LineStyles() []draw.LineStyle {
	colors := contourColors(len(ct.Bands))
	o := make([]draw.LineStyle, len(colors))
	for i, c := range colors {
		o[i] = draw.LineStyle{Color: c, Width: vg.Points(1.5)}
	}
	return o
}

// contour returns the contour lines of f. The palette is empty so that
// each level is drawn with its own line style rather than a color
// interpolated across the range of levels.
func (ct *Contour) contour(f *plume.Field) *plotter.Contour {
	c := plotter.NewContour(newGrid(f), ct.Levels(), palette(nil))
	c.LineStyles = ct.LineStyles()
	return c
}

// Plot creates the contour plot of f.
func (ct *Contour) Plot(f *plume.Field, m *Marker) (*plot.Plot, error) {
	p, err := newPlot()
	if err != nil {
		return nil, err
	}
	p.Legend.Top = true
	p.Add(ct.contour(f))
	styles := ct.LineStyles()
	for i := len(styles) - 1; i >= 0; i-- {
		p.Legend.Add(ct.Bands[i].Label, levelThumb{styles[i]})
	}
	if err := addMarker(p, m); err != nil {
		return nil, err
	}
	p.X.Max = contourXMax
	return p, nil
}

// Render implements Renderer.
func (ct *Contour) Render(f *plume.Field, m *Marker, path string) error {
	p, err := ct.Plot(f, m)
	if err != nil {
		return err
	}
	return save(p, 8*vg.Inch, 6*vg.Inch, path)
}
