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

// Package plumeutil contains the command-line interface and configuration
// handling for the plume model.
package plumeutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/cloud"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/prompt"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Stdin is where interactive answers are read from.
var Stdin io.Reader = os.Stdin

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	modelFlags := func() []*pflag.FlagSet {
		return []*pflag.FlagSet{runCmd.Flags(), pointCmd.Flags(), configCmd.Flags()}
	}

	// Options are the configuration options available to plume.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location. It can be
              a local path, an http(s) URL, or a blob storage location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Source.Width",
			usage: `
              Source.Width is the width of the contaminant source
              perpendicular to the direction of flow, in feet.`,
			defaultVal: 200.0,
			flagsets:   modelFlags(),
		},
		{
			name: "Source.Concentration",
			usage: `
              Source.Concentration is the contaminant concentration at the
              source, in μg/L.`,
			defaultVal: 1000.0,
			flagsets:   modelFlags(),
		},
		{
			name: "Material.DispersivityX",
			usage: `
              Material.DispersivityX is the longitudinal dispersivity of
              the aquifer material, in feet.`,
			defaultVal: 10.0,
			flagsets:   modelFlags(),
		},
		{
			name: "Material.DispersivityY",
			usage: `
              Material.DispersivityY is the transverse dispersivity of
              the aquifer material, in feet.`,
			defaultVal: 6.0,
			flagsets:   modelFlags(),
		},
		{
			name: "TravelDistance",
			usage: `
              TravelDistance is the distance the contaminant front has
              traveled (groundwater velocity × time), in feet.`,
			defaultVal: 350.0,
			flagsets:   modelFlags(),
		},
		{
			name: "Threshold",
			usage: `
              Threshold is the concentration in μg/L at or below which
              calculated concentrations are set to zero.`,
			defaultVal: plume.DefaultThreshold,
			flagsets:   modelFlags(),
		},
		{
			name: "Grid.X",
			usage: `
              Grid.X specifies the downstream sampling distances in feet
              as [min, max, step].`,
			defaultVal: []int{2, 448, 2},
			flagsets:   modelFlags(),
		},
		{
			name: "Grid.Y",
			usage: `
              Grid.Y specifies the lateral sampling distances in feet
              as [min, max, step]. Sampled concentrations are mirrored
              across the plume centerline, so min must be ≥ 0.`,
			defaultVal: []int{0, 200, 1},
			flagsets:   modelFlags(),
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output data file. The file
              type is determined by the extension: .shp, .nc, .ncf, .xlsx, or .csv.
              It can include environment variables and can be a blob storage
              location. If it is empty, no data file is written.`,
			defaultVal: "plume_output.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies which variables should be written to
              OutputFile, as a map of output names to expressions. Available
              variables are C (concentration, μg/L), X and Y (ft), Xm and Ym (m),
              and Cs (source concentration, μg/L). Names can be at most 10
              characters long.`,
			defaultVal: map[string]string{"C": "C"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank, the logfile will be saved in
              the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Figure.Type",
			usage: `
              Figure.Type is the type of figure to draw: 'scatter' for points
              colored by concentration band or 'contour' for lines at the
              lower bound of each band.`,
			defaultVal: "scatter",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Figure.File",
			usage: `
              Figure.File is the path to the desired figure. The image type is
              determined by the extension, for example .png, .svg, or .pdf.
              If it is empty, no figure is drawn.`,
			defaultVal: "plume.png",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Figure.Bands",
			usage: `
              Figure.Bands are the lower bounds of the concentration bands in μg/L.`,
			defaultVal: figureBandsDefault(),
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Figure.Open",
			usage: `
              If Figure.Open is true, the figure is opened once it is saved.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Query",
			usage: `
              If Query is true, ask for a point to report the concentration at
              once the concentrations are calculated.`,
			shorthand:  "q",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "x",
			usage: `
              x is the downstream distance of the point to report, in feet.
              With the default grid it must be an even number from 2 to 400.
              Otherwise it must be a sampled distance on Grid.X.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{pointCmd.Flags()},
		},
		{
			name: "y",
			usage: `
              y is the lateral distance of the point to report, in feet.
              It must be within ±Grid.Y max, which is 200 by default.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{pointCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PLUME")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case []int:
				set.IntSliceP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			case map[string]string, []float64:
				b := bytes.NewBuffer(nil)
				json.NewEncoder(b).Encode(v)
				set.StringP(option.name, option.shorthand, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func figureBandsDefault() []float64 {
	return []float64{100, 300, 500, 900}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(pointCmd)
	Root.AddCommand(configCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		local, err := cloud.Fetch(context.TODO(), os.ExpandEnv(cfgpath), newLogger(os.Stderr))
		if err != nil {
			return fmt.Errorf("plume: problem fetching configuration file: %v", err)
		}
		Cfg.SetConfigFile(local)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("plume: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "plume",
	Short: "An analytical groundwater contaminant plume model.",
	Long: `plume calculates steady-state contaminant concentrations downstream of a
finite-width source in an aquifer, using the analytical solution to the
two-dimensional advection-dispersion equation.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PLUME_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of plume.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("plume v%s\n", plume.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd calculates the concentration field and writes the outputs.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run calculates concentrations over the sampling grid, writes them to
OutputFile, and draws them in Figure.File. If --Query is set, it then asks
for a point to report the concentration at and marks it on the figure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := PlumeConfig(Cfg)
		if err != nil {
			return err
		}
		fig, err := figureConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		vars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		outputVars, err := checkOutputVars(vars)
		if err != nil {
			return err
		}
		var q prompt.QuerySource
		var sink prompt.ResultSink
		if Cfg.GetBool("Query") {
			c := prompt.NewConsole(Stdin, cmd.OutOrStdout())
			c.Limits = prompt.GridLimits(cfg.Grid)
			q, sink = c, c
		}
		return Run(cmd,
			checkLogFile(Cfg.GetString("LogFile"), outputFile, fig.File),
			outputFile, outputVars, cfg, fig, q, sink)
	},
	DisableAutoGenTag: true,
}

// pointCmd reports the concentration at a single point.
var pointCmd = &cobra.Command{
	Use:   "point",
	Short: "Print the concentration at a point.",
	Long: `point prints the concentration at the point specified by --x and --y.
Points that are not on the sampling grid have a concentration of zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := PlumeConfig(Cfg)
		if err != nil {
			return err
		}
		f, err := plume.SampleField(*cfg)
		if err != nil {
			return err
		}
		q := prompt.Fixed{X: Cfg.GetInt("x"), Y: Cfg.GetInt("y"), Limits: prompt.GridLimits(cfg.Grid)}
		_, _, _, err = prompt.Ask(context.TODO(), f, q, prompt.NewConsole(Stdin, cmd.OutOrStdout()))
		return err
	},
	DisableAutoGenTag: true,
}

// tomlConfig is the configuration file layout.
type tomlConfig struct {
	Source struct {
		Width         float64
		Concentration float64
	}
	Material struct {
		DispersivityX float64
		DispersivityY float64
	}
	TravelDistance float64
	Threshold      float64
	Grid           struct {
		X, Y []int
	}
}

// configCmd prints the effective model configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the model configuration.",
	Long: `config prints the model configuration, after applying any configuration
file, command-line arguments, and environment variables, in the format of
a configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := PlumeConfig(Cfg)
		if err != nil {
			return err
		}
		var t tomlConfig
		t.Source.Width = cfg.SourceWidth
		t.Source.Concentration = cfg.SourceConcentration
		t.Material.DispersivityX = cfg.DispersivityX
		t.Material.DispersivityY = cfg.DispersivityY
		t.TravelDistance = cfg.TravelDistance
		t.Threshold = cfg.Threshold
		g := cfg.Grid
		t.Grid.X = []int{g.XMin, g.XMax, g.XStep}
		t.Grid.Y = []int{g.YMin, g.YMax, g.YStep}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(t)
	},
	DisableAutoGenTag: true,
}
