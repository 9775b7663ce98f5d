// Package sensitivity builds sweep, tornado and heatmap views by re-running the
// LCOE engine with one or two inputs overridden. Every trial is independent.
package sensitivity

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"

	"lcoe-calculator/internal/lcoe"
	"lcoe-calculator/internal/model"
)

// MaxTrials caps the number of evaluations a single sweep or grid may request.
const MaxTrials = 10000

var ErrTooManyTrials = fmt.Errorf("sensitivity: more than %d trials requested", MaxTrials)

var errNonFinite = errors.New("sensitivity: range bounds and spacing must be finite")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Point is one trial of a sweep.
type Point struct {
	Value  float64
	Result *lcoe.Result
	Err    error
}

// LCOEPerKWh returns the trial's headline value, or 0 for failed trials.
func (p Point) LCOEPerKWh() float64 {
	if p.Result == nil {
		return 0
	}
	return p.Result.LCOEPerKWh
}

// OK reports whether the trial produced a computed, non-degenerate result.
func (p Point) OK() bool {
	return p.Err == nil && p.Result != nil && !p.Result.Degenerate
}

// Sweep evaluates base once per value with param overridden.
// Invalid trials keep their error on the point; the sweep itself only fails
// for an unknown parameter or an oversized request.
func Sweep(base model.ProjectInputs, param model.Parameter, values []float64) ([]Point, error) {
	if _, err := base.Get(param); err != nil {
		return nil, err
	}
	if len(values) > MaxTrials {
		return nil, ErrTooManyTrials
	}
	return iter.Map(values, func(v *float64) Point {
		return trial(base, param, *v)
	}), nil
}

// DiscountRateSweep sweeps discount_rate from `from` to `to` inclusive in `step` increments.
func DiscountRateSweep(base model.ProjectInputs, from, to, step float64) ([]Point, error) {
	values, err := StepRange(from, to, step)
	if err != nil {
		return nil, err
	}
	return Sweep(base, model.ParamDiscountRate, values)
}

func trial(base model.ProjectInputs, param model.Parameter, v float64) Point {
	in, err := base.With(param, v)
	if err != nil {
		return Point{Value: v, Err: err}
	}
	res, err := lcoe.Evaluate(in)
	return Point{Value: v, Result: res, Err: err}
}

// Linspace returns n evenly spaced values from start to end inclusive.
func Linspace(start, end float64, n int) ([]float64, error) {
	switch {
	case n <= 0:
		return nil, errors.New("sensitivity: point count must be > 0")
	case n > MaxTrials:
		return nil, ErrTooManyTrials
	case !finite(start) || !finite(end):
		return nil, errNonFinite
	case n == 1:
		return []float64{start}, nil
	}
	step := (end - start) / float64(n-1)
	if !finite(step) {
		return nil, errNonFinite
	}
	return lo.Times(n, func(i int) float64 {
		if i == n-1 {
			return end
		}
		return start + step*float64(i)
	}), nil
}

// StepRange returns start, start+step, ... up to end inclusive. Values are
// computed by multiplication so they do not accumulate rounding drift.
func StepRange(start, end, step float64) ([]float64, error) {
	if step <= 0 || !finite(step) {
		return nil, errors.New("sensitivity: step must be > 0")
	}
	if !finite(start) || !finite(end) {
		return nil, errNonFinite
	}
	if end < start {
		return nil, errors.New("sensitivity: end must be >= start")
	}
	// Tolerance absorbs representations like 0.1 that do not divide evenly in binary.
	// The span stays in float64 until it is known to fit, since a huge span
	// converts to a negative int.
	span := math.Floor((end-start)/step + 1e-9)
	if !finite(span) || span+1 > MaxTrials {
		return nil, ErrTooManyTrials
	}
	count := int(span) + 1
	return lo.Times(count, func(i int) float64 {
		return start + step*float64(i)
	}), nil
}

// RangeAround returns n values spanning base·(1-pct/100) to base·(1+pct/100)
// for param. This is the default axis for range sweeps and heatmaps.
func RangeAround(base model.ProjectInputs, param model.Parameter, pct float64, n int) ([]float64, error) {
	v, err := base.Get(param)
	if err != nil {
		return nil, err
	}
	if pct <= 0 || pct >= 100 {
		return nil, errors.New("sensitivity: range percent must be within (0, 100)")
	}
	return Linspace(v*(1-pct/100), v*(1+pct/100), n)
}
