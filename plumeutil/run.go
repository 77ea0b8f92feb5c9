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
	"context"
	"fmt"
	"io"
	"os"
	"time"

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/cloud"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/figure"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/internal/hash"
	"github.com/TannerDale/Analytical-Contaminant-Transport-Equation/prompt"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// newLogger returns a logger that writes to w.
func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	return log
}

// Run calculates the concentration field specified by cfg and writes it to
// the requested outputs.
//
// CobraCommand is the cobra.Command instance where Run is called from.
// Log messages are written to its output as well as to LogFile.
//
// OutputFile is the path to the desired output data file location, or ""
// for no data file. OutputVariables specifies the variables written to it.
//
// fig specifies the figure to draw. No figure is drawn if fig.File is "".
//
// If q is not nil, the concentration at the point it supplies is reported
// to sink after the field is calculated, and the point is marked on the
// figure.
//
// Any of the output paths can be blob storage locations, in which case the
// files are uploaded once they are written.
func Run(CobraCommand *cobra.Command, LogFile, OutputFile string, OutputVariables map[string]string,
	cfg *plume.Config, fig *FigureConfig, q prompt.QuerySource, sink prompt.ResultSink) error {

	startTime := time.Now()
	ctx := context.TODO()

	var upload uploader

	logfile, err := os.Create(upload.maybeUpload(LogFile))
	if err != nil {
		return fmt.Errorf("plumeutil: problem creating log file: %v", err)
	}
	defer logfile.Close()
	log := newLogger(io.MultiWriter(CobraCommand.OutOrStdout(), logfile))

	var o *plume.Outputter
	if OutputFile != "" {
		log.Info("parsing output variable expressions")
		o, err = plume.NewOutputter(upload.maybeUpload(OutputFile), OutputVariables, nil)
		if err != nil {
			return err
		}
	}
	var r figure.Renderer
	var figFile string
	if fig.File != "" {
		if r, err = fig.Renderer(); err != nil {
			return err
		}
		figFile = upload.maybeUpload(fig.File)
	}
	if upload.err != nil {
		return upload.err
	}

	log.WithFields(logrus.Fields{
		"source_width_ft": cfg.SourceWidth,
		"source_conc_ugL": cfg.SourceConcentration,
		"alpha_x_ft":      cfg.DispersivityX,
		"alpha_y_ft":      cfg.DispersivityY,
		"travel_dist_ft":  cfg.TravelDistance,
		"threshold_ugL":   cfg.Threshold,
		"config_hash":     hash.Hash(cfg),
	}).Info("calculating concentrations")
	f, err := plume.SampleField(*cfg)
	if err != nil {
		return err
	}
	s := f.Summary()
	log.WithFields(logrus.Fields{
		"samples":         s.Samples,
		"above_threshold": s.NonZero,
		"max":             s.Max,
		"mean":            s.Mean,
	}).Info("calculated concentrations")

	var marker *figure.Marker
	if q != nil {
		x, y, ok, err := prompt.Ask(ctx, f, q, sink)
		if err != nil {
			return err
		}
		if ok {
			marker = &figure.Marker{X: float64(x), Y: float64(y)}
			c, onGrid := f.Lookup(x, y)
			log.WithFields(logrus.Fields{"x": x, "y": y, "c": c, "on_grid": onGrid}).Info("point query")
		}
	}

	if o != nil {
		if err = o.Output(f); err != nil {
			return err
		}
		log.WithField("file", OutputFile).Info("wrote output")
	}
	if r != nil {
		if err = r.Render(f, marker, figFile); err != nil {
			return err
		}
		log.WithField("file", fig.File).Info("wrote figure")
	}

	log.WithField("duration", time.Since(startTime)).Info("finished")
	if err = upload.uploadOutput(ctx, log); err != nil {
		return err
	}
	if fig.Open && fig.File != "" && !cloud.IsBlob(fig.File) {
		if err = open.Run(fig.File); err != nil {
			log.WithField("file", fig.File).Warnf("opening figure: %v", err)
		}
	}
	return nil
}
