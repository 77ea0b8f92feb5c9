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

// Package plume calculates steady-state groundwater contaminant concentrations
// downstream of a finite-width source using the analytical solution to the
// two-dimensional advection-dispersion equation.
//
// Concentrations are calculated over a regular grid in the half plane
// downstream of the source (lateral offsets ≥ 0) and mirrored across the
// plume centerline, which assumes that lateral dispersion is symmetric.
package plume

import (
	"errors"
	"fmt"
	"math"
)

// Version gives the version number.
const Version = "1.0.0"

// ErrDomain is returned when a calculation is requested for inputs where the
// analytical solution is undefined, for example at or upstream of the source
// or with a non-positive dispersivity.
var ErrDomain = errors.New("plume: input outside of model domain")

// Source is a contaminant release zone centered on the longitudinal axis.
type Source struct {
	Width         float64 // [m]
	Concentration float64 // [μg/L]
}

// NewSource returns a source with the given width [m] and concentration [μg/L].
func NewSource(width, concentration float64) (Source, error) {
	if err := positive("source width", width); err != nil {
		return Source{}, err
	}
	if err := positive("source concentration", concentration); err != nil {
		return Source{}, err
	}
	return Source{Width: width, Concentration: concentration}, nil
}

// Material holds the dispersion properties of the aquifer.
type Material struct {
	Ax float64 // longitudinal dispersivity [m]
	Ay float64 // transverse dispersivity [m]
}

// NewMaterial returns a material with the given longitudinal and transverse
// dispersivities [m].
func NewMaterial(ax, ay float64) (Material, error) {
	if err := positive("longitudinal dispersivity", ax); err != nil {
		return Material{}, err
	}
	if err := positive("transverse dispersivity", ay); err != nil {
		return Material{}, err
	}
	return Material{Ax: ax, Ay: ay}, nil
}

// ObservationPoint is a location (for example a monitoring well) given as
// its offset from the center of the source.
type ObservationPoint struct {
	X float64 // downstream distance [m]
	Y float64 // lateral distance [m]
}

// NewObservationPoint returns a point x meters downstream and y meters
// to the side of the source. x must be > 0.
func NewObservationPoint(x, y float64) (ObservationPoint, error) {
	if err := positive("downstream distance", x); err != nil {
		return ObservationPoint{}, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return ObservationPoint{}, fmt.Errorf("%w: lateral distance=%g", ErrDomain, y)
	}
	return ObservationPoint{X: x, Y: y}, nil
}

// positive returns an error unless v is a finite number > 0.
func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: %s=%g but should be >0", ErrDomain, name, v)
	}
	return nil
}
