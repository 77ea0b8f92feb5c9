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

// Package figure draws concentration fields as scatter or contour plots.
package figure

import (
	"fmt"
	"image/color"

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	title  = "Contaminant Concentration (μg/L)"
	xLabel = "Horizontal Distance (ft)"
	yLabel = "Lateral Distance (ft)"
)

// Marker is a point [ft] to highlight on a figure.
type Marker struct {
	X, Y float64
}

// Renderer draws a concentration field to a file. The image format is
// determined by the file extension, for example ".png", ".svg", or ".pdf".
type Renderer interface {
	Render(f *plume.Field, m *Marker, path string) error
}

// New returns a renderer of the given type, which must be "scatter" or "contour".
func New(kind string, bands []Band) (Renderer, error) {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	switch kind {
	case "scatter":
		return &Scatter{Bands: bands}, nil
	case "contour":
		return &Contour{Bands: bands}, nil
	default:
		return nil, fmt.Errorf("figure: invalid figure type '%s'; should be 'scatter' or 'contour'", kind)
	}
}

func newPlot() (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, fmt.Errorf("figure: %v", err)
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p, nil
}

// addMarker adds a black cross at m, if m is not nil.
func addMarker(p *plot.Plot, m *Marker) error {
	if m == nil {
		return nil
	}
	s, err := plotter.NewScatter(plotter.XYs{{X: m.X, Y: m.Y}})
	if err != nil {
		return fmt.Errorf("figure: adding marker: %v", err)
	}
	s.Color = color.NRGBA{A: 178}
	s.Radius = vg.Points(4)
	s.Shape = draw.PlusGlyph{}
	p.Add(s)
	return nil
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("figure: saving %s: %v", path, err)
	}
	return nil
}
