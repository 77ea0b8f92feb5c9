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

package plumeutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/cloud"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/figure"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// PlumeConfig unmarshals and validates the model configuration in cfg.
func PlumeConfig(cfg *viper.Viper) (*plume.Config, error) {
	gx, err := toIntSliceE(cfg.Get("Grid.X"))
	if err != nil {
		return nil, fmt.Errorf("plumeutil: Grid.X: %v", err)
	}
	gy, err := toIntSliceE(cfg.Get("Grid.Y"))
	if err != nil {
		return nil, fmt.Errorf("plumeutil: Grid.Y: %v", err)
	}
	vars := [][]int{gx, gy}
	varNames := []string{"Grid.X", "Grid.Y"}
	for i, v := range vars {
		if len(v) != 3 {
			return nil, fmt.Errorf("plumeutil: parsing grid configuration: %s should be [min, max, step] but is %v", varNames[i], v)
		}
	}
	c := plume.Config{
		SourceWidth:         cfg.GetFloat64("Source.Width"),
		SourceConcentration: cfg.GetFloat64("Source.Concentration"),
		DispersivityX:       cfg.GetFloat64("Material.DispersivityX"),
		DispersivityY:       cfg.GetFloat64("Material.DispersivityY"),
		TravelDistance:      cfg.GetFloat64("TravelDistance"),
		Threshold:           cfg.GetFloat64("Threshold"),
		Grid: plume.GridConfig{
			XMin: gx[0], XMax: gx[1], XStep: gx[2],
			YMin: gy[0], YMax: gy[1], YStep: gy[2],
		},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// FigureConfig holds the figure options.
type FigureConfig struct {
	Type  string    // "scatter" or "contour"
	File  string    // image path, or "" for no figure
	Bands []float64 // lower bounds of the concentration bands [μg/L]
	Open  bool      // whether to open the figure after it is saved
}

// figureConfig unmarshals the figure options in cfg.
func figureConfig(cfg *viper.Viper) (*FigureConfig, error) {
	bands, err := toFloatSliceE(cfg.Get("Figure.Bands"))
	if err != nil {
		return nil, fmt.Errorf("plumeutil: Figure.Bands: %v", err)
	}
	f := &FigureConfig{
		Type:  os.ExpandEnv(cfg.GetString("Figure.Type")),
		File:  os.ExpandEnv(cfg.GetString("Figure.File")),
		Bands: bands,
		Open:  cfg.GetBool("Figure.Open"),
	}
	if f.Type != "scatter" && f.Type != "contour" {
		return nil, fmt.Errorf("plumeutil: the Figure.Type variable needs to be set to either "+
			"scatter or contour, but is currently set to `%s`", f.Type)
	}
	return f, nil
}

// Renderer returns the renderer specified by f.
func (f *FigureConfig) Renderer() (figure.Renderer, error) {
	bands, err := figure.Bands(f.Bands)
	if err != nil {
		return nil, err
	}
	return figure.New(f.Type, bands)
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("plumeutil: there are no variables specified for output. Please fill in " +
			"the OutputVariables configuration and try again")
	}
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o, nil
}

// checkOutputFile makes sure that the output directory or bucket exists
// and expands any environment variables. An empty path means that no
// output file is written.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	if cloud.IsBlob(f) {
		bucketName, _, err := cloud.SplitPath(f)
		if err != nil {
			return f, err
		}
		if _, err = cloud.OpenBucket(context.TODO(), bucketName); err != nil {
			return f, fmt.Errorf("plumeutil: checking output location '%s': %v", f, err)
		}
		return f, nil
	}
	if _, err := os.Stat(filepath.Dir(f)); err != nil {
		return f, fmt.Errorf("plumeutil: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified: the output file, or else the figure file, with the extension ".log".
func checkLogFile(logFile, outputFile, figureFile string) string {
	if logFile != "" {
		return os.ExpandEnv(logFile)
	}
	base := outputFile
	if base == "" {
		base = figureFile
	}
	if base == "" {
		base = "plume"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".log"
}

func toIntSliceE(s interface{}) ([]int, error) {
	if str, ok := s.(string); ok {
		var o []int
		if err := json.Unmarshal([]byte(str), &o); err != nil {
			return nil, err
		}
		return o, nil
	}
	return cast.ToIntSliceE(s)
}

func toFloatSliceE(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case []float64:
		return v, nil
	case string:
		var o []float64
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	case []interface{}:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, err
			}
			o[i] = f
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T", s)
	}
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if v == "" {
			return o, nil
		}
		if err := json.NewDecoder(bytes.NewBufferString(v)).Decode(&o); err != nil {
			return nil, fmt.Errorf("plumeutil: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("plumeutil: invalid type for %s: %#v", varName, i)
	}
}
