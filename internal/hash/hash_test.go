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

package hash

import "testing"

type config struct {
	Width, Distance float64
	Vars            map[string]string
}

func TestHash(t *testing.T) {
	a := config{Width: 200, Distance: 350, Vars: map[string]string{"C": "C", "Frac": "C / Cs", "C_mgL": "C / 1000"}}
	b := config{Width: 200, Distance: 350, Vars: map[string]string{"C_mgL": "C / 1000", "C": "C", "Frac": "C / Cs"}}
	c := a
	c.Distance = 300

	ha := Hash(a)
	if len(ha) != 16 {
		t.Errorf("key %s should have 16 characters", ha)
	}
	for i := 0; i < 10; i++ {
		if hb := Hash(b); hb != ha {
			t.Fatalf("equal values: %s != %s", ha, hb)
		}
	}
	if hc := Hash(c); hc == ha {
		t.Errorf("different values have the same key %s", hc)
	}
	if Hash(&a) != Hash(&b) {
		t.Error("pointers to equal values should have equal keys")
	}
}
