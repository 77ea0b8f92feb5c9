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
	"testing"

	"github.com/ctessum/unit"
)

func TestLength(t *testing.T) {
	m, err := meters("width", Length(200))
	if err != nil {
		t.Fatal(err)
	}
	if different(m, 60.96, 1e-12) {
		t.Errorf("have %g m, want 60.96 m", m)
	}
	if different(MetersToFeet(m), 200, 1e-12) {
		t.Errorf("have %g ft, want 200 ft", MetersToFeet(m))
	}
	if _, err := meters("width", unit.New(1, unit.Second)); err == nil {
		t.Error("expected a dimension error")
	}
}
