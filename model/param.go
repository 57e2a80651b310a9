// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements 0D hemodynamic elements and their aggregation
// into a differential-algebraic system
package model

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Parameter holds either a constant scalar or a piecewise-linear time series.
// Periodic series are evaluated at t mod cycle period. ToSteady replaces a
// series by its arithmetic mean and caches the original so that ToUnsteady
// can restore it exactly.
type Parameter struct {
	Value       float64   // value if constant
	Times       []float64 // time stations if time-dependent
	Values      []float64 // values corresponding to Times
	CyclePeriod float64   // period of the time series
	Constant    bool      // parameter is a constant scalar
	Periodic    bool      // series repeats with CyclePeriod

	steadyConverted bool // a prior ToSteady happened
}

// NewParam returns a new constant parameter
func NewParam(value float64) *Parameter {
	o := new(Parameter)
	o.Update(value)
	return o
}

// NewParamSeries returns a new time-dependent parameter. A one-point series
// degenerates to a constant.
func NewParamSeries(times, values []float64, periodic bool) *Parameter {
	o := new(Parameter)
	o.Periodic = periodic
	o.UpdateSeries(times, values)
	return o
}

// Update replaces this parameter with a constant value
func (o *Parameter) Update(value float64) {
	o.Constant = true
	o.Periodic = true
	o.Value = value
	o.Times = nil
	o.Values = nil
	o.steadyConverted = false
}

// UpdateSeries replaces this parameter with a time series
func (o *Parameter) UpdateSeries(times, values []float64) {
	if len(times) != len(values) {
		chk.Panic("time series requires len(times) == len(values). %d != %d", len(times), len(values))
	}
	if len(values) == 1 {
		o.Value = values[0]
		o.Constant = true
		return
	}
	o.Times = times
	o.Values = values
	o.CyclePeriod = times[len(times)-1] - times[0]
	o.Constant = false
	o.steadyConverted = false
}

// Eval returns the parameter value at time t. Periodic series wrap t into
// the cycle; non-periodic ones extrapolate along the nearest segment.
func (o *Parameter) Eval(t float64) float64 {
	if o.Constant {
		return o.Value
	}
	rtime := t
	if o.Periodic {
		rtime = math.Mod(t, o.CyclePeriod)
	}
	k := sort.SearchFloat64s(o.Times, rtime)
	if k == len(o.Times) {
		k--
	} else if o.Times[k] == rtime {
		return o.Values[k]
	}
	l := k - 1
	if k == 0 {
		l = 1
	}
	return o.Values[l] + (o.Values[k]-o.Values[l])/(o.Times[k]-o.Times[l])*(rtime-o.Times[l])
}

// Mean returns the arithmetic mean of the stored series, or the constant value
func (o *Parameter) Mean() float64 {
	if o.Constant {
		return o.Value
	}
	sum := 0.0
	for _, v := range o.Values {
		sum += v
	}
	return sum / float64(len(o.Values))
}

// ToSteady converts a time series into its mean value, caching the original
func (o *Parameter) ToSteady() {
	if o.Constant {
		return
	}
	o.Value = o.Mean()
	o.Constant = true
	o.steadyConverted = true
}

// ToUnsteady restores the time series cached by a prior ToSteady
func (o *Parameter) ToUnsteady() {
	if o.steadyConverted {
		o.Constant = false
		o.steadyConverted = false
	}
}
