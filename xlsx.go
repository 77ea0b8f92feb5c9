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

	"github.com/tealeg/xlsx"
)

// xlsxSheet is the name of the worksheet that samples are written to.
const xlsxSheet = "Concentrations"

func (o *Outputter) writeXLSX(f *Field, results map[string][]float64) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("plume: creating output spreadsheet: %v", err)
	}
	header := sheet.AddRow()
	for _, name := range append([]string{"X_ft", "Y_ft"}, o.names...) {
		header.AddCell().SetString(name)
	}
	for i, s := range f.samples {
		r := sheet.AddRow()
		r.AddCell().SetInt(s.X)
		r.AddCell().SetInt(s.Y)
		for _, v := range o.names {
			r.AddCell().SetFloat(results[v][i])
		}
	}
	if err := file.Save(o.fileName); err != nil {
		return fmt.Errorf("plume: writing output spreadsheet: %v", err)
	}
	return nil
}
