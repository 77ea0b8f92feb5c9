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

	"github.com/ctessum/unit"
)

// metersPerFoot is the length of one international foot in meters.
const metersPerFoot = 0.3048

// FeetToMeters converts a length in feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft * metersPerFoot
}

// MetersToFeet converts a length in meters to feet.
func MetersToFeet(m float64) float64 {
	return m / metersPerFoot
}

// Length returns the given length in feet as a dimensioned value in meters.
func Length(ft float64) *unit.Unit {
	return unit.New(FeetToMeters(ft), unit.Meter)
}

// meters returns the value of l in meters, or an error if l is not a length.
func meters(name string, l *unit.Unit) (float64, error) {
	if err := l.Check(unit.Meter); err != nil {
		return 0, fmt.Errorf("plume: %s: %v", name, err)
	}
	return l.Value(), nil
}
