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

package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
)

func TestConsoleQuery(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		x, y    int
		ok      bool
		invalid int // number of "not a valid location" messages
	}{
		{name: "no", in: "n\n"},
		{name: "empty", in: "\n"},
		{name: "yes", in: "Y\n100\n-50\n", x: 100, y: -50, ok: true},
		{name: "lower case", in: "yes\n2\n200\n", x: 2, y: 200, ok: true},
		{name: "odd x", in: "y\n101\n100\n0\n", x: 100, y: 0, ok: true, invalid: 1},
		{name: "x out of range", in: "y\n0\n402\n400\n-200\n", x: 400, y: -200, ok: true, invalid: 2},
		{name: "y out of range", in: "y\n50\n201\n-201\n1\n", x: 50, y: 1, ok: true, invalid: 2},
		{name: "not a number", in: "y\nfifty\n50\n 7 \n", x: 50, y: 7, ok: true, invalid: 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := new(bytes.Buffer)
			c := NewConsole(strings.NewReader(test.in), out)
			x, y, ok, err := c.Query(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if x != test.x || y != test.y || ok != test.ok {
				t.Errorf("have (%d, %d, %v), want (%d, %d, %v)", x, y, ok, test.x, test.y, test.ok)
			}
			if n := strings.Count(out.String(), "That is not a valid location."); n != test.invalid {
				t.Errorf("have %d invalid location messages, want %d", n, test.invalid)
			}
		})
	}
}

func TestConsoleEOF(t *testing.T) {
	for _, in := range []string{"", "y\n", "y\n3\n"} {
		c := NewConsole(strings.NewReader(in), new(bytes.Buffer))
		if _, _, _, err := c.Query(context.Background()); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}

func TestConsoleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewConsole(strings.NewReader("y\n2\n0\n"), new(bytes.Buffer))
	if _, _, _, err := c.Query(ctx); err != context.Canceled {
		t.Errorf("have error %v, want %v", err, context.Canceled)
	}
}

func TestFixed(t *testing.T) {
	x, y, ok, err := Fixed{X: 50, Y: -10, Limits: DefaultLimits()}.Query(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if x != 50 || y != -10 || !ok {
		t.Errorf("have (%d, %d, %v)", x, y, ok)
	}
	if _, _, _, err := (Fixed{X: 51, Limits: DefaultLimits()}).Query(context.Background()); err == nil {
		t.Error("expected an error for odd x")
	}
}

func TestAsk(t *testing.T) {
	f, err := plume.SampleField(plume.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   string
		want string
	}{
		{in: "Y\n50\n0\n", want: "The concentration at point 50, 0 is 999.79 μg/L.\n"},
		{in: "Y\n100\n-100\n", want: "The concentration at point 100, -100 is 499.3 μg/L.\n"},
		{in: "Y\n400\n50\n", want: "The concentration at point 400, 50 is 206.17 μg/L.\n"},
	}
	for _, test := range tests {
		out := new(bytes.Buffer)
		c := NewConsole(strings.NewReader(test.in), out)
		if _, _, ok, err := Ask(context.Background(), f, c, c); err != nil || !ok {
			t.Fatalf("%q: ok=%v, err=%v", test.in, ok, err)
		}
		if !strings.HasSuffix(out.String(), test.want) {
			t.Errorf("have %q, want suffix %q", out.String(), test.want)
		}
	}

	out := new(bytes.Buffer)
	c := NewConsole(strings.NewReader("n\n"), out)
	if _, _, ok, err := Ask(context.Background(), f, c, c); err != nil || ok {
		t.Errorf("ok=%v, err=%v", ok, err)
	}
	if strings.Contains(out.String(), "The concentration at point") {
		t.Error("reported a concentration that was not requested")
	}
}

func TestGridLimits(t *testing.T) {
	if l := GridLimits(plume.DefaultGrid()); l != DefaultLimits() {
		t.Errorf("default grid: have %+v", l)
	}
	g := plume.GridConfig{XMin: 5, XMax: 605, XStep: 5, YMin: 0, YMax: 300, YStep: 10}
	l := GridLimits(g)
	for _, x := range []int{5, 10, 400, 500, 605} {
		if !l.ValidX(x) {
			t.Errorf("x=%d should be valid", x)
		}
	}
	for _, x := range []int{0, 4, 402, 610} {
		if l.ValidX(x) {
			t.Errorf("x=%d should not be valid", x)
		}
	}
	for _, y := range []int{-300, 0, 250} {
		if !l.ValidY(y) {
			t.Errorf("y=%d should be valid", y)
		}
	}
	if l.ValidY(301) {
		t.Error("y=301 should not be valid")
	}
}
