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

// DefaultThreshold is the concentration [μg/L] at or below which a
// calculated value is treated as zero.
const DefaultThreshold = 0.01

// Evaluator calculates point concentrations.
type Evaluator struct {
	// Threshold is the noise floor [μg/L]. Concentrations less than or equal
	// to Threshold are reported as exactly zero.
	Threshold float64
}

// ConcentrationAt returns the steady-state concentration [μg/L] at point p
// using DefaultThreshold.
func ConcentrationAt(s Source, m Material, p ObservationPoint, vt float64) (float64, error) {
	return Evaluator{Threshold: DefaultThreshold}.ConcentrationAt(s, m, p, vt)
}

// ConcentrationAt returns the steady-state concentration [μg/L] at point p,
// rounded to two decimal places:
//
//	C = C₀/4 · erfc(...) · [erf(upper) - erf(lower)]
//
// An error wrapping ErrDomain is returned if p is at or upstream of the source,
// if vt is not positive, or if either dispersivity is not positive.
func (e Evaluator) ConcentrationAt(s Source, m Material, p ObservationPoint, vt float64) (float64, error) {
	fx, err := LongitudinalSpread(m, p, vt)
	if err != nil {
		return 0, err
	}
	fyUpper, err := LateralSpreadUpper(s, m, p)
	if err != nil {
		return 0, err
	}
	fyLower, err := LateralSpreadLower(s, m, p)
	if err != nil {
		return 0, err
	}
	c := s.Concentration / 4 * fx * (fyUpper - fyLower)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, fmt.Errorf("%w: concentration at (%g, %g) is %g", ErrDomain, p.X, p.Y, c)
	}
	if c <= e.Threshold {
		return 0, nil
	}
	return Round2(c), nil
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
