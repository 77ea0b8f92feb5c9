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
	"errors"
	"math"
	"testing"
)

const testTolerance = 0.011

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func absDifferent(a, b float64) bool {
	if math.Abs(a-b) > testTolerance {
		return true
	}
	return false
}

func TestConcentrationAt(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		x, y float64 // [ft]
		c    float64 // [μg/L]
	}{
		{x: 2, y: 0, c: 999.98},
		{x: 50, y: 0, c: 999.79},
		{x: 100, y: 0, c: 994.71},
		{x: 200, y: 0, c: 923.78},
		{x: 300, y: 0, c: 655.66},
		{x: 348, y: 0, c: 447.50},
		{x: 350, y: 0, c: 438.59},
		{x: 100, y: 100, c: 499.30},
		{x: 100, y: -100, c: 499.30},
		{x: 200, y: 150, c: 148.11},
		{x: 400, y: 50, c: 206.17},
		{x: 448, y: 200, c: 10.42},
	}
	for _, test := range tests {
		c, err := cfg.ConcentrationAt(test.x, test.y)
		if err != nil {
			t.Fatal(err)
		}
		if absDifferent(c, test.c) {
			t.Errorf("(%g, %g): have %g, want %g", test.x, test.y, c, test.c)
		}
		if c != Round2(c) {
			t.Errorf("(%g, %g): %g is not rounded to two decimal places", test.x, test.y, c)
		}
	}
}

func TestThreshold(t *testing.T) {
	cfg := DefaultConfig()
	s, m, vt, err := cfg.Model()
	if err != nil {
		t.Fatal(err)
	}
	p := ObservationPoint{X: FeetToMeters(50)}

	t.Run("below threshold", func(t *testing.T) {
		c, err := Evaluator{Threshold: 999.8}.ConcentrationAt(s, m, p, vt)
		if err != nil {
			t.Fatal(err)
		}
		if c != 0 {
			t.Errorf("have %g, want 0", c)
		}
	})
	t.Run("above threshold", func(t *testing.T) {
		c, err := Evaluator{Threshold: 999}.ConcentrationAt(s, m, p, vt)
		if err != nil {
			t.Fatal(err)
		}
		if absDifferent(c, 999.79) {
			t.Errorf("have %g, want 999.79", c)
		}
	})
	t.Run("rounds to threshold", func(t *testing.T) {
		// The raw concentration here is about 0.0142, above the threshold,
		// and is rounded afterwards.
		c, err := cfg.ConcentrationAt(4, 129)
		if err != nil {
			t.Fatal(err)
		}
		if c != 0.01 {
			t.Errorf("have %g, want 0.01", c)
		}
		cfg := cfg
		cfg.Threshold = 0.015
		if c, err = cfg.ConcentrationAt(4, 129); err != nil {
			t.Fatal(err)
		}
		if c != 0 {
			t.Errorf("threshold 0.015: have %g, want 0", c)
		}
	})
	t.Run("far field", func(t *testing.T) {
		far := ObservationPoint{X: FeetToMeters(2), Y: FeetToMeters(400)}
		c, err := ConcentrationAt(s, m, far, vt)
		if err != nil {
			t.Fatal(err)
		}
		if c != 0 {
			t.Errorf("have %g, want 0", c)
		}
	})
}

func TestConcentrationDomain(t *testing.T) {
	s, m, vt, err := DefaultConfig().Model()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		s    Source
		m    Material
		p    ObservationPoint
		vt   float64
	}{
		{name: "at source", s: s, m: m, p: ObservationPoint{X: 0}, vt: vt},
		{name: "upstream", s: s, m: m, p: ObservationPoint{X: -1}, vt: vt},
		{name: "zero travel", s: s, m: m, p: ObservationPoint{X: 1}, vt: 0},
		{name: "zero ax", s: s, m: Material{Ax: 0, Ay: m.Ay}, p: ObservationPoint{X: 1}, vt: vt},
		{name: "negative ay", s: s, m: Material{Ax: m.Ax, Ay: -1}, p: ObservationPoint{X: 1}, vt: vt},
		{name: "NaN y", s: s, m: m, p: ObservationPoint{X: 1, Y: math.NaN()}, vt: vt},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ConcentrationAt(test.s, test.m, test.p, test.vt)
			if !errors.Is(err, ErrDomain) {
				t.Errorf("have error %v, want %v", err, ErrDomain)
			}
		})
	}
}

func TestNewObservationPoint(t *testing.T) {
	if _, err := NewObservationPoint(0, 0); !errors.Is(err, ErrDomain) {
		t.Errorf("x=0: have error %v, want %v", err, ErrDomain)
	}
	if _, err := NewObservationPoint(1, math.Inf(1)); !errors.Is(err, ErrDomain) {
		t.Errorf("y=Inf: have error %v, want %v", err, ErrDomain)
	}
	p, err := NewObservationPoint(1, -2)
	if err != nil {
		t.Fatal(err)
	}
	if p.X != 1 || p.Y != -2 {
		t.Errorf("have %+v", p)
	}
}

func TestSpread(t *testing.T) {
	s, m, vt, err := DefaultConfig().Model()
	if err != nil {
		t.Fatal(err)
	}
	t.Run("front", func(t *testing.T) {
		fx, err := LongitudinalSpread(m, ObservationPoint{X: vt}, vt)
		if err != nil {
			t.Fatal(err)
		}
		if different(fx, 1, 1e-12) {
			t.Errorf("have %g, want 1", fx)
		}
	})
	t.Run("range", func(t *testing.T) {
		for _, x := range []float64{1e-6, 1, 10, 100, 1000, 1e6} {
			fx, err := LongitudinalSpread(m, ObservationPoint{X: x}, vt)
			if err != nil {
				t.Fatal(err)
			}
			if fx < 0 || fx > 2 {
				t.Errorf("x=%g: %g is outside of [0, 2]", x, fx)
			}
		}
	})
	t.Run("lateral symmetry", func(t *testing.T) {
		for _, x := range []float64{0.5, 10, 100} {
			p := ObservationPoint{X: x}
			up, err := LateralSpreadUpper(s, m, p)
			if err != nil {
				t.Fatal(err)
			}
			low, err := LateralSpreadLower(s, m, p)
			if err != nil {
				t.Fatal(err)
			}
			if different(up, -low, 1e-12) {
				t.Errorf("x=%g: upper=%g, lower=%g", x, up, low)
			}
		}
	})
	t.Run("lateral domain", func(t *testing.T) {
		if _, err := LateralSpreadUpper(s, m, ObservationPoint{X: 0}); !errors.Is(err, ErrDomain) {
			t.Errorf("have error %v, want %v", err, ErrDomain)
		}
	})
}

// All lengths enter the solution as ratios, so concentrations do not depend on
// the length unit.
func TestLengthUnitInvariance(t *testing.T) {
	cfg := DefaultConfig()
	for _, scale := range []float64{1, metersPerFoot, 1 / metersPerFoot} {
		s := Source{Width: cfg.SourceWidth * scale, Concentration: cfg.SourceConcentration}
		m := Material{Ax: cfg.DispersivityX * scale, Ay: cfg.DispersivityY * scale}
		vt := cfg.TravelDistance * scale
		for _, xy := range [][2]float64{{50, 0}, {300, 0}, {100, 100}, {448, 200}} {
			want, err := cfg.ConcentrationAt(xy[0], xy[1])
			if err != nil {
				t.Fatal(err)
			}
			have, err := ConcentrationAt(s, m, ObservationPoint{X: xy[0] * scale, Y: xy[1] * scale}, vt)
			if err != nil {
				t.Fatal(err)
			}
			if absDifferent(have, want) {
				t.Errorf("scale %g at (%g, %g): have %g, want %g", scale, xy[0], xy[1], have, want)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	for v, want := range map[float64]float64{
		1.234:   1.23,
		1.236:   1.24,
		999.794: 999.79,
		-0.004:  0,
		10:      10,
	} {
		if have := Round2(v); math.Abs(have-want) > 1e-9 {
			t.Errorf("Round2(%g): have %g, want %g", v, have, want)
		}
	}
}
