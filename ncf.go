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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// writeNCF writes the output variables to a NetCDF file on the full
// (mirrored) grid with dimensions [y, x].
func (o *Outputter) writeNCF(f *Field, results map[string][]float64) error {
	xs, ys := f.XAxis(), f.YAxis()
	col := make(map[int]int, len(xs))
	for i, x := range xs {
		col[int(x)] = i
	}
	row := make(map[int]int, len(ys))
	for j, y := range ys {
		row[int(y)] = j
	}

	h := cdf.NewHeader([]string{"x", "y"}, []int{len(xs), len(ys)})
	h.AddAttribute("", "comment", "Steady-state contaminant concentrations")
	h.AddVariable("x", []string{"x"}, []float32{0})
	h.AddAttribute("x", "description", "Downstream distance from the source")
	h.AddAttribute("x", "units", "ft")
	h.AddVariable("y", []string{"y"}, []float32{0})
	h.AddAttribute("y", "description", "Lateral distance from the plume centerline")
	h.AddAttribute("y", "units", "ft")
	for _, v := range o.names {
		h.AddVariable(v, []string{"y", "x"}, []float32{0})
		h.AddAttribute(v, "description", o.outputVariables[v])
	}
	h.Define()

	ff, err := os.Create(o.fileName)
	if err != nil {
		return fmt.Errorf("plume: creating output NetCDF file: %v", err)
	}
	defer ff.Close()
	w, err := cdf.Create(ff, h) // writes the header to ff
	if err != nil {
		return fmt.Errorf("plume: creating output NetCDF file: %v", err)
	}

	xArr, yArr := sparse.ZerosDense(len(xs)), sparse.ZerosDense(len(ys))
	copy(xArr.Elements, xs)
	copy(yArr.Elements, ys)
	if err := writeNCF(w, "x", xArr); err != nil {
		return err
	}
	if err := writeNCF(w, "y", yArr); err != nil {
		return err
	}
	for _, v := range o.names {
		data := sparse.ZerosDense(len(ys), len(xs))
		for i, s := range f.samples {
			data.Set(results[v][i], row[s.Y], col[s.X])
		}
		if err := writeNCF(w, v, data); err != nil {
			return err
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("plume: writing output NetCDF file: %v", err)
	}
	return nil
}

func writeNCF(f *cdf.File, Var string, data *sparse.DenseArray) error {
	data32 := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(Var)
	start := make([]int, len(end))
	w := f.Writer(Var, start, end)
	if _, err := w.Write(data32); err != nil {
		return fmt.Errorf("plume: writing variable %s to NetCDF file: %v", Var, err)
	}
	return nil
}
