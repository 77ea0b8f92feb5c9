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

package plume

import (
	"fmt"
)

// GridConfig specifies the sampling grid in feet. Lateral offsets are
// sampled from YMin to YMax and then mirrored across the centerline, so
// YMin must be ≥ 0.
type GridConfig struct {
	XMin, XMax, XStep int
	YMin, YMax, YStep int
}

// DefaultGrid returns the default sampling grid: even downstream distances
// from 2 to 448 ft and lateral distances from 0 to 200 ft.
func DefaultGrid() GridConfig {
	return GridConfig{
		XMin: 2, XMax: 448, XStep: 2,
		YMin: 0, YMax: 200, YStep: 1,
	}
}

// Grid size limits. MaxGridExtent bounds the largest distance [ft] so that
// stepping along an axis cannot overflow, and MaxGridSamples bounds the
// number of points in the half plane.
const (
	MaxGridExtent  = 1000000
	MaxGridSamples = 1 << 24
)

// Validate checks that the grid can be sampled.
func (g GridConfig) Validate() error {
	vars := []int{g.XMin, g.XStep, g.YStep}
	varNames := []string{"Grid.XMin", "Grid.XStep", "Grid.YStep"}
	for i, v := range vars {
		if !(v > 0) {
			return fmt.Errorf("plume: parsing grid configuration: %s=%d but should be >0", varNames[i], v)
		}
	}
	if g.YMin < 0 {
		return fmt.Errorf("plume: parsing grid configuration: Grid.YMin=%d but should be ≥0", g.YMin)
	}
	if g.XMax < g.XMin {
		return fmt.Errorf("plume: parsing grid configuration: Grid.XMax (%d) < Grid.XMin (%d)", g.XMax, g.XMin)
	}
	if g.YMax < g.YMin {
		return fmt.Errorf("plume: parsing grid configuration: Grid.YMax (%d) < Grid.YMin (%d)", g.YMax, g.YMin)
	}
	vars = []int{g.XMax, g.XStep, g.YMax, g.YStep}
	varNames = []string{"Grid.XMax", "Grid.XStep", "Grid.YMax", "Grid.YStep"}
	for i, v := range vars {
		if v > MaxGridExtent {
			return fmt.Errorf("plume: parsing grid configuration: %s=%d but should be ≤%d", varNames[i], v, MaxGridExtent)
		}
	}
	nx := (g.XMax-g.XMin)/g.XStep + 1
	ny := (g.YMax-g.YMin)/g.YStep + 1
	if nx*ny > MaxGridSamples {
		return fmt.Errorf("plume: parsing grid configuration: %d×%d samples is more than the maximum of %d", nx, ny, MaxGridSamples)
	}
	return nil
}

// Xs returns the downstream sampling distances [ft].
func (g GridConfig) Xs() []int {
	return span(g.XMin, g.XMax, g.XStep)
}

// Ys returns the lateral sampling distances [ft] in the half plane.
func (g GridConfig) Ys() []int {
	return span(g.YMin, g.YMax, g.YStep)
}

func span(min, max, step int) []int {
	o := make([]int, 0, (max-min)/step+1)
	for v := min; v <= max; v += step {
		o = append(o, v)
	}
	return o
}

// Config holds the physical parameters of a simulation. Lengths are in feet
// and are converted to meters before any calculation.
type Config struct {
	SourceWidth         float64 // [ft]
	SourceConcentration float64 // [μg/L]
	DispersivityX       float64 // longitudinal dispersivity [ft]
	DispersivityY       float64 // transverse dispersivity [ft]

	// TravelDistance is the distance the contaminant front has traveled,
	// velocity × time [ft].
	TravelDistance float64

	// Threshold is the concentration [μg/L] at or below which values are set to zero.
	Threshold float64

	Grid GridConfig
}

// DefaultConfig returns the reference scenario: a 200 ft wide source at
// 1000 μg/L in a material with 10 ft and 6 ft dispersivities, after the
// contaminant front has traveled 350 ft.
func DefaultConfig() Config {
	return Config{
		SourceWidth:         200,
		SourceConcentration: 1000,
		DispersivityX:       10,
		DispersivityY:       6,
		TravelDistance:      350,
		Threshold:           DefaultThreshold,
		Grid:                DefaultGrid(),
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	vars := []float64{c.SourceWidth, c.SourceConcentration, c.DispersivityX,
		c.DispersivityY, c.TravelDistance}
	varNames := []string{"Source.Width", "Source.Concentration", "Material.DispersivityX",
		"Material.DispersivityY", "TravelDistance"}
	for i, v := range vars {
		if !(v > 0) {
			return fmt.Errorf("plume: parsing configuration: %s=%g but should be >0", varNames[i], v)
		}
	}
	if !(c.Threshold >= 0) {
		return fmt.Errorf("plume: parsing configuration: Threshold=%g but should be ≥0", c.Threshold)
	}
	return c.Grid.Validate()
}

// Model converts the configuration into model inputs in meters.
func (c Config) Model() (s Source, m Material, vt float64, err error) {
	if err = c.Validate(); err != nil {
		return
	}
	var w, ax, ay float64
	if w, err = meters("source width", Length(c.SourceWidth)); err != nil {
		return
	}
	if ax, err = meters("longitudinal dispersivity", Length(c.DispersivityX)); err != nil {
		return
	}
	if ay, err = meters("transverse dispersivity", Length(c.DispersivityY)); err != nil {
		return
	}
	if vt, err = meters("travel distance", Length(c.TravelDistance)); err != nil {
		return
	}
	if s, err = NewSource(w, c.SourceConcentration); err != nil {
		return
	}
	m, err = NewMaterial(ax, ay)
	return
}

// ConcentrationAt returns the concentration [μg/L] at the point x feet
// downstream and y feet to the side of the source.
func (c Config) ConcentrationAt(x, y float64) (float64, error) {
	s, m, vt, err := c.Model()
	if err != nil {
		return 0, err
	}
	p, err := NewObservationPoint(FeetToMeters(x), FeetToMeters(y))
	if err != nil {
		return 0, err
	}
	return Evaluator{Threshold: c.Threshold}.ConcentrationAt(s, m, p, vt)
}
