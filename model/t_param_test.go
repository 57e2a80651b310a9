// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_param01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param01. constant and series evaluation")

	// constant
	c := NewParam(3.5)
	chk.Scalar(tst, "constant @ 0", 1e-17, c.Eval(0), 3.5)
	chk.Scalar(tst, "constant @ 10", 1e-17, c.Eval(10), 3.5)

	// one-point series degenerates to a constant
	one := NewParamSeries([]float64{0}, []float64{7}, true)
	if !one.Constant {
		tst.Errorf("one-point series must be constant")
		return
	}
	chk.Scalar(tst, "one-point @ 2", 1e-17, one.Eval(2), 7)

	// piecewise-linear series over one cycle
	times := []float64{0, 0.25, 0.5, 0.75, 1.0}
	values := []float64{0, 10, 0, -10, 0}
	p := NewParamSeries(times, values, true)
	chk.Scalar(tst, "cycle period", 1e-17, p.CyclePeriod, 1.0)
	chk.Scalar(tst, "exact station", 1e-17, p.Eval(0.25), 10)
	chk.Scalar(tst, "interpolated", 1e-15, p.Eval(0.125), 5)
	chk.Scalar(tst, "interpolated down", 1e-15, p.Eval(0.375), 5)

	// periodic wrap: t = 2.125 maps to 0.125
	chk.Scalar(tst, "periodic wrap", 1e-13, p.Eval(2.125), 5)

	// non-periodic evaluation extrapolates along the nearest segment
	q := NewParamSeries([]float64{0, 1}, []float64{0, 2}, false)
	chk.Scalar(tst, "inside", 1e-15, q.Eval(0.5), 1)
	chk.Scalar(tst, "extrapolated", 1e-14, q.Eval(2), 4)
}

func Test_param02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param02. steady conversion round-trip")

	times := []float64{0, 0.5, 1.0}
	values := []float64{2, 6, 4}
	p := NewParamSeries(times, values, true)

	// to steady: arithmetic mean
	p.ToSteady()
	if !p.Constant {
		tst.Errorf("parameter must be constant after ToSteady")
		return
	}
	chk.Scalar(tst, "mean", 1e-15, p.Eval(0.3), 4)

	// back to unsteady: exact restoration
	p.ToUnsteady()
	if p.Constant {
		tst.Errorf("parameter must be time-dependent after ToUnsteady")
		return
	}
	chk.Vector(tst, "times", 1e-17, p.Times, times)
	chk.Vector(tst, "values", 1e-17, p.Values, values)
	chk.Scalar(tst, "interp after round-trip", 1e-15, p.Eval(0.25), 4)

	// ToUnsteady without a prior ToSteady is a no-op
	c := NewParam(9)
	c.ToSteady()
	c.ToUnsteady()
	if !c.Constant {
		tst.Errorf("constant parameter must stay constant")
		return
	}
	chk.Scalar(tst, "constant untouched", 1e-17, c.Eval(0), 9)
}
