// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
)

// PlotVessel plots the flows and pressures at both ends of one vessel over
// time and saves the figure to dirout/fnkey.eps
func PlotVessel(times []float64, states []*algebra.State, mdl *model.Model, name, dirout, fnkey string) (err error) {
	b := mdl.GetBlock(name)
	if b == nil {
		return chk.Err("cannot find vessel named %q", name)
	}
	vessel, ok := b.(*model.BloodVessel)
	if !ok {
		return chk.Err("block %q is not a vessel", name)
	}
	qi, qo, pi, po := vesselDofs(vessel)
	n := len(states)
	Qi, Qo := make([]float64, n), make([]float64, n)
	Pi, Po := make([]float64, n), make([]float64, n)
	for i, s := range states {
		Qi[i], Qo[i] = s.Y[qi], s.Y[qo]
		Pi[i], Po[i] = s.Y[pi], s.Y[po]
	}

	plt.SetForEps(1.2, 400)
	plt.Subplot(2, 1, 1)
	plt.Plot(times, Qi, "'b-', label='flow in'")
	plt.Plot(times, Qo, "'r-', label='flow out'")
	plt.Gll("$t$", "$Q$", "")
	plt.Subplot(2, 1, 2)
	plt.Plot(times, Pi, "'b-', label='pressure in'")
	plt.Plot(times, Po, "'r-', label='pressure out'")
	plt.Gll("$t$", "$P$", "")
	plt.SaveD(dirout, fnkey+".eps")
	return
}
