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
	"runtime"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// ConcentrationSample is the concentration at one grid point. Coordinates
// are in feet from the center of the source.
type ConcentrationSample struct {
	X, Y int
	C    float64 // [μg/L]
}

// Field is the concentration over the full sampling grid. It is created
// by SampleField and is not modified afterwards.
type Field struct {
	// samples holds the half plane (y ≥ 0) followed by its mirror image.
	samples []ConcentrationSample
	half    int

	index map[[2]int]int // location of each half-plane sample

	cfg      Config
	source   Source
	material Material
	vt       float64
}

// SampleField calculates concentrations at each point in the half-plane
// sampling grid specified by cfg and mirrors the result across the plume
// centerline. Samples are ordered by downstream distance and then by lateral
// distance, with the mirrored samples following the half plane.
//
// The calculation for each grid point is independent, so they are split
// among runtime.GOMAXPROCS(0) goroutines.
func SampleField(cfg Config) (*Field, error) {
	s, m, vt, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	xs, ys := cfg.Grid.Xs(), cfg.Grid.Ys()
	n := len(xs) * len(ys)
	e := Evaluator{Threshold: cfg.Threshold}

	half := make([]ConcentrationSample, n)
	nprocs := runtime.GOMAXPROCS(0)
	errs := make([]error, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ii := pp; ii < n; ii += nprocs {
				x, y := xs[ii/len(ys)], ys[ii%len(ys)]
				p := ObservationPoint{X: FeetToMeters(float64(x)), Y: FeetToMeters(float64(y))}
				c, err := e.ConcentrationAt(s, m, p, vt)
				if err != nil {
					errs[pp] = fmt.Errorf("plume: sampling (%d ft, %d ft): %w", x, y, err)
					return
				}
				half[ii] = ConcentrationSample{X: x, Y: y, C: c}
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	f := &Field{
		samples:  mirror(half),
		half:     n,
		index:    make(map[[2]int]int, n),
		cfg:      cfg,
		source:   s,
		material: m,
		vt:       vt,
	}
	for i, smp := range half {
		f.index[[2]int{smp.X, smp.Y}] = i
	}
	return f, nil
}

// mirror returns the half-plane samples followed by a copy of each sample
// reflected across the centerline. Samples on the centerline appear twice.
func mirror(half []ConcentrationSample) []ConcentrationSample {
	o := make([]ConcentrationSample, 2*len(half))
	copy(o, half)
	for i, s := range half {
		o[len(half)+i] = ConcentrationSample{X: s.X, Y: -s.Y, C: s.C}
	}
	return o
}

// Samples returns a copy of all samples in the field.
func (f *Field) Samples() []ConcentrationSample {
	o := make([]ConcentrationSample, len(f.samples))
	copy(o, f.samples)
	return o
}

// HalfPlane returns a copy of the samples with lateral distance ≥ 0,
// before mirroring.
func (f *Field) HalfPlane() []ConcentrationSample {
	o := make([]ConcentrationSample, f.half)
	copy(o, f.samples[:f.half])
	return o
}

// Len returns the total number of samples, including mirrored samples.
func (f *Field) Len() int { return len(f.samples) }

// Config returns the configuration the field was calculated with.
func (f *Field) Config() Config { return f.cfg }

// Source returns the source the field was calculated for, in meters.
func (f *Field) Source() Source { return f.source }

// Material returns the material the field was calculated for, in meters.
func (f *Field) Material() Material { return f.material }

// TravelDistance returns the travel distance the field was calculated for [m].
func (f *Field) TravelDistance() float64 { return f.vt }

// Lookup returns the concentration at the grid point (x, y) [ft]. Because the
// field is symmetric, the point is matched against |y|. If the point is not
// on the grid, Lookup returns 0 and false.
func (f *Field) Lookup(x, y int) (float64, bool) {
	if y < 0 {
		y = -y
	}
	i, ok := f.index[[2]int{x, y}]
	if !ok {
		return 0, false
	}
	return f.samples[i].C, true
}

// Concentrations returns the concentration of every sample, in sample order.
func (f *Field) Concentrations() []float64 {
	o := make([]float64, len(f.samples))
	for i, s := range f.samples {
		o[i] = s.C
	}
	return o
}

// Max returns the maximum concentration in the field.
func (f *Field) Max() float64 {
	return floats.Max(f.Concentrations())
}

// Bounds returns the extent of the sampling grid [ft].
func (f *Field) Bounds() *geom.Bounds {
	g := f.cfg.Grid
	ys := g.Ys()
	ymax := float64(ys[len(ys)-1])
	xs := g.Xs()
	return &geom.Bounds{
		Min: geom.Point{X: float64(xs[0]), Y: -ymax},
		Max: geom.Point{X: float64(xs[len(xs)-1]), Y: ymax},
	}
}

// XAxis returns the downstream grid coordinates [ft].
func (f *Field) XAxis() []float64 {
	xs := f.cfg.Grid.Xs()
	o := make([]float64, len(xs))
	for i, x := range xs {
		o[i] = float64(x)
	}
	return o
}

// YAxis returns the lateral grid coordinates [ft] of the full field in
// increasing order, with the centerline included once.
func (f *Field) YAxis() []float64 {
	ys := f.cfg.Grid.Ys()
	o := make([]float64, 0, 2*len(ys))
	for i := len(ys) - 1; i >= 0; i-- {
		if ys[i] != 0 {
			o = append(o, -float64(ys[i]))
		}
	}
	for _, y := range ys {
		o = append(o, float64(y))
	}
	return o
}

// Dense returns the field as a two-dimensional array with dimensions
// [len(YAxis()), len(XAxis())].
func (f *Field) Dense() *sparse.DenseArray {
	xs, ys := f.XAxis(), f.YAxis()
	o := sparse.ZerosDense(len(ys), len(xs))
	for j, y := range ys {
		for i, x := range xs {
			c, _ := f.Lookup(int(x), int(y))
			o.Set(c, j, i)
		}
	}
	return o
}

// Summary holds descriptive statistics for a field.
type Summary struct {
	Samples int     // number of samples, including mirrored samples
	NonZero int     // number of samples above the threshold
	Max     float64 // [μg/L]
	Mean    float64 // [μg/L]
}

// Summary returns descriptive statistics for the field.
func (f *Field) Summary() Summary {
	c := f.Concentrations()
	s := Summary{
		Samples: len(c),
		Max:     floats.Max(c),
		Mean:    floats.Sum(c) / float64(len(c)),
	}
	for _, v := range c {
		if v > 0 {
			s.NonZero++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d samples (%d above threshold); max = %.2f μg/L; mean = %.2f μg/L",
		s.Samples, s.NonZero, s.Max, s.Mean)
}
