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
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/kr/pretty"
	"github.com/tealeg/xlsx"
)

func smallField(t *testing.T) *Field {
	cfg := DefaultConfig()
	cfg.Grid = GridConfig{XMin: 100, XMax: 110, XStep: 2, YMin: 0, YMax: 4, YStep: 2}
	f, err := SampleField(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCheckOutputNames(t *testing.T) {
	tests := map[string]string{
		"C":            "",
		"C_mgL":        "",
		"Concentrate":  "exceeds 10 characters",
		"C-mgL":        "unsupported characters",
		"1C":           "unsupported characters",
		"C-mgL-123456": "exceeds 10 characters and includes unsupported",
	}
	for name, want := range tests {
		err := checkOutputNames(map[string]string{name: "C"})
		if want == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%s: have error %v, want '%s'", name, err, want)
		}
	}
}

func TestNewOutputter(t *testing.T) {
	if _, err := NewOutputter("x.csv", map[string]string{"A": "C * Q"}, nil); err == nil {
		t.Error("expected an undefined variable error")
	}
	if _, err := NewOutputter("x.csv", map[string]string{"A": "C * ("}, nil); err == nil {
		t.Error("expected a parse error")
	}
	o, err := NewOutputter("x.csv", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(o.Names(), []string{"C"}); len(diff) > 0 {
		t.Errorf("default names: %v", diff)
	}
}

func TestOutputterResults(t *testing.T) {
	f := smallField(t)
	o, err := NewOutputter("x.csv", map[string]string{
		"C":     "C",
		"C_mgL": "C / 1000",
		"Frac":  "C / Cs",
		"Xm":    "Xm",
		"Hi":    "above(C, 500)",
		"LogC":  "log10(C)",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(o.Names(), []string{"C", "C_mgL", "Frac", "Hi", "LogC", "Xm"}); len(diff) > 0 {
		t.Errorf("names: %v", diff)
	}
	r, err := o.Results(f)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range f.Samples() {
		if r["C"][i] != s.C {
			t.Errorf("C[%d]: have %g, want %g", i, r["C"][i], s.C)
		}
		if different(r["C_mgL"][i], s.C/1000, 1e-12) {
			t.Errorf("C_mgL[%d]: have %g, want %g", i, r["C_mgL"][i], s.C/1000)
		}
		if different(r["Frac"][i], s.C/1000, 1e-12) {
			t.Errorf("Frac[%d]: have %g, want %g", i, r["Frac"][i], s.C/1000)
		}
		if different(r["Xm"][i], float64(s.X)*0.3048, 1e-12) {
			t.Errorf("Xm[%d]: have %g", i, r["Xm"][i])
		}
		var hi float64
		if s.C >= 500 {
			hi = 1
		}
		if r["Hi"][i] != hi {
			t.Errorf("Hi[%d]: have %g, want %g", i, r["Hi"][i], hi)
		}
	}
}

func TestOutputUnsupported(t *testing.T) {
	o, err := NewOutputter(filepath.Join(os.TempDir(), "plume_test.txt"), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Output(smallField(t)); err == nil {
		t.Error("expected an unsupported file type error")
	}
}

func TestOutputCSV(t *testing.T) {
	f := smallField(t)
	fname := filepath.Join(os.TempDir(), "plume_test.csv")
	defer os.Remove(fname)
	o, err := NewOutputter(fname, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Output(f); err != nil {
		t.Fatal(err)
	}
	r, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(lines[0], []string{"X_ft", "Y_ft", "C"}); len(diff) > 0 {
		t.Errorf("header: %v", diff)
	}
	if len(lines)-1 != f.Len() {
		t.Fatalf("have %d rows, want %d", len(lines)-1, f.Len())
	}
	for i, s := range f.Samples() {
		want := []string{strconv.Itoa(s.X), strconv.Itoa(s.Y), strconv.FormatFloat(s.C, 'g', -1, 64)}
		if diff := pretty.Diff(lines[i+1], want); len(diff) > 0 {
			t.Errorf("row %d: %v", i, diff)
		}
	}
}

func TestOutputShp(t *testing.T) {
	f := smallField(t)
	fname := filepath.Join(os.TempDir(), "plume_test.shp")
	defer func() {
		for _, ext := range []string{".shp", ".shx", ".dbf"} {
			os.Remove(strings.TrimSuffix(fname, ".shp") + ext)
		}
	}()
	o, err := NewOutputter(fname, map[string]string{"C": "C", "C_mgL": "C / 1000"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Output(f); err != nil {
		t.Fatal(err)
	}
	d, err := shp.NewDecoder(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	samples := f.Samples()
	var i int
	for {
		g, fields, more := d.DecodeRowFields("C", "C_mgL")
		if !more {
			break
		}
		p, ok := g.(geom.Point)
		if !ok {
			t.Fatalf("row %d: geometry is %T, not a point", i, g)
		}
		if p.X != float64(samples[i].X) || p.Y != float64(samples[i].Y) {
			t.Errorf("row %d: have point %v, want (%d, %d)", i, p, samples[i].X, samples[i].Y)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(fields["C"]), 64)
		if err != nil {
			t.Fatal(err)
		}
		if absDifferent(c, samples[i].C) {
			t.Errorf("row %d: have C=%g, want %g", i, c, samples[i].C)
		}
		i++
	}
	if err := d.Error(); err != nil {
		t.Fatal(err)
	}
	if i != f.Len() {
		t.Errorf("have %d records, want %d", i, f.Len())
	}
}

func TestOutputNCF(t *testing.T) {
	f := smallField(t)
	fname := filepath.Join(os.TempDir(), "plume_test.nc")
	defer os.Remove(fname)
	o, err := NewOutputter(fname, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Output(f); err != nil {
		t.Fatal(err)
	}
	ff, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	nc, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(nc.Header.Lengths("C"), []int{len(f.YAxis()), len(f.XAxis())}); len(diff) > 0 {
		t.Errorf("dimensions: %v", diff)
	}
	r := nc.Reader("C", nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	have := buf.([]float32)
	want := f.Dense()
	if len(have) != len(want.Elements) {
		t.Fatalf("have %d values, want %d", len(have), len(want.Elements))
	}
	for i, v := range want.Elements {
		if absDifferent(float64(have[i]), v) {
			t.Errorf("C[%d]: have %g, want %g", i, have[i], v)
		}
	}
}

func TestOutputXLSX(t *testing.T) {
	f := smallField(t)
	fname := filepath.Join(os.TempDir(), "plume_test.xlsx")
	defer os.Remove(fname)
	o, err := NewOutputter(fname, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Output(f); err != nil {
		t.Fatal(err)
	}
	x, err := xlsx.OpenFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	sheet, ok := x.Sheet[xlsxSheet]
	if !ok {
		t.Fatalf("missing sheet %s", xlsxSheet)
	}
	if len(sheet.Rows)-1 != f.Len() {
		t.Fatalf("have %d rows, want %d", len(sheet.Rows)-1, f.Len())
	}
	if v := sheet.Rows[0].Cells[2].Value; v != "C" {
		t.Errorf("header: have %s, want C", v)
	}
	for i, s := range f.Samples() {
		c, err := sheet.Rows[i+1].Cells[2].Float()
		if err != nil {
			t.Fatal(err)
		}
		if absDifferent(c, s.C) {
			t.Errorf("row %d: have %g, want %g", i, c, s.C)
		}
	}
}
