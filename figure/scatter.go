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

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Scatter draws each sample as a point colored by its concentration band.
// Samples below the lowest band are not drawn.
type Scatter struct {
	Bands []Band
}

// Series groups the samples in f by band.
func (s *Scatter) Series(f *plume.Field) []plotter.XYs {
	o := make([]plotter.XYs, len(s.Bands))
	for _, smp := range f.Samples() {
		if i := Classify(s.Bands, smp.C); i >= 0 {
			o[i] = append(o[i], struct{ X, Y float64 }{X: float64(smp.X), Y: float64(smp.Y)})
		}
	}
	return o
}

// Plot creates the scatter plot of f.
func (s *Scatter) Plot(f *plume.Field, m *Marker) (*plot.Plot, error) {
	p, err := newPlot()
	if err != nil {
		return nil, err
	}
	p.Legend.Top = true
	series := s.Series(f)
	// Highest band first so it is at the top of the legend.
	for i := len(series) - 1; i >= 0; i-- {
		if len(series[i]) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(series[i])
		if err != nil {
			return nil, fmt.Errorf("figure: %v", err)
		}
		sc.Color = s.Bands[i].Color
		sc.Radius = vg.Points(1.5)
		sc.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(s.Bands[i].Label, sc)
	}
	if err := addMarker(p, m); err != nil {
		return nil, err
	}
	return p, nil
}

// Render implements Renderer.
func (s *Scatter) Render(f *plume.Field, m *Marker, path string) error {
	p, err := s.Plot(f, m)
	if err != nil {
		return err
	}
	return save(p, 9*vg.Inch, 7*vg.Inch, path)
}
