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
	"math"
)

// LongitudinalSpread returns the dimensionless spread factor in the direction
// of flow at point p, where vt [m] is the distance the contaminant front has
// traveled (velocity × time):
//
//	erfc((x - vt) / (2·√(αx·vt)))
//
// The result is in the range [0, 2].
func LongitudinalSpread(m Material, p ObservationPoint, vt float64) (float64, error) {
	if err := positive("travel distance", vt); err != nil {
		return math.NaN(), err
	}
	if err := positive("longitudinal dispersivity", m.Ax); err != nil {
		return math.NaN(), err
	}
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
		return math.NaN(), fmt.Errorf("%w: downstream distance=%g", ErrDomain, p.X)
	}
	return math.Erfc((p.X - vt) / (2 * math.Sqrt(m.Ax*vt))), nil
}

// LateralSpreadUpper returns the spread factor for the edge of the source at
// +width/2:
//
//	erf((y + w/2) / (2·√(αy·x)))
func LateralSpreadUpper(s Source, m Material, p ObservationPoint) (float64, error) {
	return lateralSpread(s.Width/2, m, p)
}

// LateralSpreadLower returns the spread factor for the edge of the source at
// -width/2:
//
//	erf((y - w/2) / (2·√(αy·x)))
func LateralSpreadLower(s Source, m Material, p ObservationPoint) (float64, error) {
	return lateralSpread(-s.Width/2, m, p)
}

func lateralSpread(halfWidth float64, m Material, p ObservationPoint) (float64, error) {
	if err := positive("transverse dispersivity", m.Ay); err != nil {
		return math.NaN(), err
	}
	if err := positive("downstream distance", p.X); err != nil {
		return math.NaN(), err
	}
	if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) || math.IsNaN(halfWidth) {
		return math.NaN(), fmt.Errorf("%w: lateral distance=%g, source half width=%g",
			ErrDomain, p.Y, halfWidth)
	}
	return math.Erf((p.Y + halfWidth) / (2 * math.Sqrt(m.Ay*p.X))), nil
}
