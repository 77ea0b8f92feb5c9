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

// Package prompt asks for and reports the concentration at a single point
// in a concentration field.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	plume "github.com/TannerDale/Analytical-Contaminant-Transport-Equation"
)

// QuerySource supplies the point [ft] to report the concentration at.
// ok is false if no point was requested.
type QuerySource interface {
	Query(ctx context.Context) (x, y int, ok bool, err error)
}

// ResultSink receives the concentration [μg/L] at a point [ft].
type ResultSink interface {
	Report(x, y int, c float64) error
}

// Limits are the allowed query coordinates [ft]. X must additionally be a
// multiple of XStep.
type Limits struct {
	XMin, XMax, XStep int
	YMin, YMax        int
}

// DefaultLimits returns the default query limits: even x from 2 to 400 ft and
// y from -200 to 200 ft.
func DefaultLimits() Limits {
	return Limits{XMin: 2, XMax: 400, XStep: 2, YMin: -200, YMax: 200}
}

// GridLimits returns the query limits for a field sampled on g. The
// default grid keeps DefaultLimits, whose downstream range stops at 400 ft.
// Any other grid allows every sampled x and every y within ±YMax.
func GridLimits(g plume.GridConfig) Limits {
	if g == plume.DefaultGrid() {
		return DefaultLimits()
	}
	return Limits{XMin: g.XMin, XMax: g.XMax, XStep: g.XStep, YMin: -g.YMax, YMax: g.YMax}
}

// ValidX returns whether x is an allowed downstream distance.
func (l Limits) ValidX(x int) bool {
	return x >= l.XMin && x <= l.XMax && (l.XStep <= 1 || (x-l.XMin)%l.XStep == 0)
}

// ValidY returns whether y is an allowed lateral distance.
func (l Limits) ValidY(y int) bool {
	return y >= l.YMin && y <= l.YMax
}

// Ask requests a point from q, looks up its concentration in f, and
// reports it to s. Points that are not on the sampling grid have a
// concentration of zero.
func Ask(ctx context.Context, f *plume.Field, q QuerySource, s ResultSink) (x, y int, ok bool, err error) {
	x, y, ok, err = q.Query(ctx)
	if err != nil || !ok {
		return
	}
	c, _ := f.Lookup(x, y)
	err = s.Report(x, y, c)
	return
}

// Console is an interactive QuerySource and ResultSink.
type Console struct {
	Limits Limits

	in  *bufio.Scanner
	out io.Writer
}

// NewConsole returns a console that reads answers from in and writes
// questions and results to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		Limits: DefaultLimits(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Query asks whether a point is wanted and, if so, asks for its coordinates
// until valid values are given.
func (c *Console) Query(ctx context.Context) (x, y int, ok bool, err error) {
	answer, err := c.ask(ctx, "Would you like the concentration for a specific point? (Y/N) ")
	if err != nil {
		return 0, 0, false, err
	}
	if !strings.Contains(strings.ToUpper(answer), "Y") {
		return 0, 0, false, nil
	}
	x, err = c.askInt(ctx, fmt.Sprintf("What is the x-value for the point you would like between %d and %d? "+
		"Please select an even number. ", c.Limits.XMin, c.Limits.XMax), c.Limits.ValidX)
	if err != nil {
		return 0, 0, false, err
	}
	y, err = c.askInt(ctx, fmt.Sprintf("What is the y-value for the point you would like between %d and %d? ",
		c.Limits.YMin, c.Limits.YMax), c.Limits.ValidY)
	if err != nil {
		return 0, 0, false, err
	}
	return x, y, true, nil
}

// Report implements ResultSink.
func (c *Console) Report(x, y int, conc float64) error {
	_, err := fmt.Fprintf(c.out, "The concentration at point %d, %d is %g μg/L.\n", x, y, conc)
	return err
}

func (c *Console) askInt(ctx context.Context, question string, valid func(int) bool) (int, error) {
	for {
		answer, err := c.ask(ctx, question)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && valid(v) {
			return v, nil
		}
		if _, err := fmt.Fprintln(c.out, "That is not a valid location."); err != nil {
			return 0, err
		}
	}
}

func (c *Console) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(c.out, question); err != nil {
		return "", err
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("prompt: reading answer: %v", err)
		}
		return "", fmt.Errorf("prompt: reading answer: %v", io.ErrUnexpectedEOF)
	}
	return c.in.Text(), nil
}

// Fixed is a QuerySource for a point given in advance, for example on the
// command line.
type Fixed struct {
	X, Y   int
	Limits Limits
}

// Query returns the fixed point, or an error if it is outside of the limits.
func (f Fixed) Query(ctx context.Context) (x, y int, ok bool, err error) {
	if !f.Limits.ValidX(f.X) || !f.Limits.ValidY(f.Y) {
		return 0, 0, false, fmt.Errorf("prompt: (%d, %d) is not a valid location", f.X, f.Y)
	}
	return f.X, f.Y, true, nil
}
