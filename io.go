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
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// ModelVariables are the per-sample variables that can be used in output
// variable expressions.
var ModelVariables = map[string]string{
	"C":  "Concentration [μg/L]",
	"X":  "Downstream distance [ft]",
	"Y":  "Lateral distance [ft]",
	"Xm": "Downstream distance [m]",
	"Ym": "Lateral distance [m]",
	"Cs": "Source concentration [μg/L]",
}

// DefaultOutputVariables is the output used when none is specified.
var DefaultOutputVariables = map[string]string{"C": "C"}

// Outputter writes the samples in a field to a file. The type of file is
// determined by the file extension: ".shp" for a point shapefile, ".nc" or
// ".ncf" for a gridded NetCDF file, ".xlsx" for a spreadsheet, and ".csv" for
// comma-separated text.
//
// The values written are set by outputVariables, a map of output names to
// expressions of the variables in ModelVariables, for example
// {"C_mgL": "C / 1000"}.
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	names           []string
	expressions     map[string]*govaluate.EvaluableExpression
}

// NewOutputter parses the output variable expressions. Default functions
// available to expressions are:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'log10(x)' which calculates the base 10 logarithm of x.
//
// 'above(x, t)' which is 1 if x ≥ t and 0 otherwise.
func NewOutputter(fileName string, outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("plume: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"log10": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("plume: got %d arguments for function 'log10', but needs 1", len(arg))
			}
			return math.Log10(arg[0].(float64)), nil
		},
		"above": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 2 {
				return nil, fmt.Errorf("plume: got %d arguments for function 'above', but needs 2", len(arg))
			}
			if arg[0].(float64) >= arg[1].(float64) {
				return 1., nil
			}
			return 0., nil
		},
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}
	if len(outputVariables) == 0 {
		outputVariables = DefaultOutputVariables
	}
	if err := checkOutputNames(outputVariables); err != nil {
		return nil, err
	}

	o := &Outputter{
		fileName:        fileName,
		outputVariables: make(map[string]string, len(outputVariables)),
		outputFunctions: defaultOutputFuncs,
		expressions:     make(map[string]*govaluate.EvaluableExpression, len(outputVariables)),
	}
	for name, expr := range outputVariables {
		expr = strings.Replace(expr, "\r\n", " ", -1)
		expr = strings.Replace(expr, "\n", " ", -1)
		o.outputVariables[name] = expr
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("plume: output variable %s: %v", name, err)
		}
		for _, v := range expression.Vars() {
			if _, ok := ModelVariables[v]; !ok {
				return nil, fmt.Errorf("plume: output variable %s: undefined variable name '%s'", name, v)
			}
		}
		o.expressions[name] = expression
		o.names = append(o.names, name)
	}
	sort.Strings(o.names)
	return o, nil
}

// checkOutputNames checks (1) if any output variable names exceed 10 characters
// and (2) if any output variable names include characters that are unsupported
// in shapefile field names.
func checkOutputNames(o map[string]string) error {
	for key := range o {
		long := len(key) > 10
		noCharError, err := regexp.MatchString("^[A-Za-z]\\w*$", key)
		if err != nil {
			panic(err)
		}
		if long && !noCharError {
			return fmt.Errorf("plume: output variable name '%s' exceeds 10 characters and includes unsupported character(s)", key)
		} else if long {
			return fmt.Errorf("plume: output variable name '%s' exceeds 10 characters", key)
		} else if !noCharError {
			return fmt.Errorf("plume: output variable name '%s' includes unsupported characters", key)
		}
	}
	return nil
}

// FileName returns the path the outputter writes to.
func (o *Outputter) FileName() string { return o.fileName }

// Names returns the output variable names in sorted order.
func (o *Outputter) Names() []string {
	return append([]string{}, o.names...)
}

// Results evaluates the output variables for each sample in f, in sample order.
func (o *Outputter) Results(f *Field) (map[string][]float64, error) {
	results := make(map[string][]float64, len(o.names))
	for _, name := range o.names {
		results[name] = make([]float64, f.Len())
	}
	cs := f.Source().Concentration
	params := make(map[string]interface{}, len(ModelVariables))
	for i, s := range f.samples {
		params["C"] = s.C
		params["X"] = float64(s.X)
		params["Y"] = float64(s.Y)
		params["Xm"] = FeetToMeters(float64(s.X))
		params["Ym"] = FeetToMeters(float64(s.Y))
		params["Cs"] = cs
		for _, name := range o.names {
			v, err := o.expressions[name].Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("plume: evaluating output variable %s: %v", name, err)
			}
			fv, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("plume: output variable %s evaluates to %T, not a number", name, v)
			}
			results[name][i] = fv
		}
	}
	return results, nil
}

// Output writes f to the output file.
func (o *Outputter) Output(f *Field) error {
	results, err := o.Results(f)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(o.fileName)); ext {
	case ".shp":
		return o.writeShp(f, results)
	case ".nc", ".ncf":
		return o.writeNCF(f, results)
	case ".xlsx":
		return o.writeXLSX(f, results)
	case ".csv":
		return o.writeCSV(f, results)
	default:
		return fmt.Errorf("plume: unsupported output file type '%s'; "+
			"use .shp, .nc, .ncf, .xlsx, or .csv", ext)
	}
}

func (o *Outputter) writeShp(f *Field, results map[string][]float64) error {
	fields := make([]goshp.Field, len(o.names))
	for i, v := range o.names {
		fields[i] = goshp.FloatField(v, 14, 8)
	}
	shape, err := shp.NewEncoderFromFields(o.fileName, goshp.POINT, fields...)
	if err != nil {
		return fmt.Errorf("plume: creating output shapefile: %v", err)
	}
	defer shape.Close()
	outFields := make([]interface{}, len(o.names))
	for i, s := range f.samples {
		for j, v := range o.names {
			outFields[j] = results[v][i]
		}
		p := geom.Point{X: float64(s.X), Y: float64(s.Y)}
		if err := shape.EncodeFields(p, outFields...); err != nil {
			return fmt.Errorf("plume: writing output shapefile: %v", err)
		}
	}
	return nil
}

func (o *Outputter) writeCSV(f *Field, results map[string][]float64) error {
	w, err := os.Create(o.fileName)
	if err != nil {
		return fmt.Errorf("plume: creating output file: %v", err)
	}
	defer w.Close()
	c := csv.NewWriter(w)
	if err := c.Write(append([]string{"X_ft", "Y_ft"}, o.names...)); err != nil {
		return fmt.Errorf("plume: writing output file: %v", err)
	}
	line := make([]string, len(o.names)+2)
	for i, s := range f.samples {
		line[0] = strconv.Itoa(s.X)
		line[1] = strconv.Itoa(s.Y)
		for j, v := range o.names {
			line[j+2] = strconv.FormatFloat(results[v][i], 'g', -1, 64)
		}
		if err := c.Write(line); err != nil {
			return fmt.Errorf("plume: writing output file: %v", err)
		}
	}
	c.Flush()
	if err := c.Error(); err != nil {
		return fmt.Errorf("plume: writing output file: %v", err)
	}
	return w.Close()
}
