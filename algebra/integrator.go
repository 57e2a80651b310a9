// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Integrator advances the DAE system in time with the generalised-α scheme.
// The scheme parameters derive from a user spectral radius ρ ∈ [0,1]:
//
//	αm = ½(3-ρ)/(1+ρ)   αf = 1/(1+ρ)   γ = ½ + αm - αf
//
// Each step converges Newton iterations against the Jacobian
// F + D + (αm/(αf γ h))⋅E assembled by the model.
type Integrator struct {

	// scheme coefficients
	αm, αf, γ       float64
	αmInv, αfInv    float64
	γInv            float64
	Δt, ΔtInv       float64
	ydotCoeff       float64 // αm/(αf γ Δt)
	yInitCoeff      float64 // predictor coefficient on y
	ydotInitCoeff   float64 // predictor coefficient on dy/dt

	// control
	atol    float64
	maxIter int
	size    int

	// workspace
	yaf    []float64 // evaluation iterate y at t + αf Δt
	ydotam []float64 // evaluation iterate dy/dt at t + αm Δt

	// collaborators
	sys System
	mdl Assembler
}

// NewIntegrator returns a new integrator and runs the symbolic phase of the
// given system
//  mdl     -- the model (assembler) producing element contributions
//  sys     -- sparse or dense system; Reserve is called here
//  Δt      -- constant time step size
//  ρ       -- spectral radius governing numerical dissipation
//  atol    -- absolute tolerance on the residual ∞-norm
//  maxIter -- maximum number of Newton iterations per step
func NewIntegrator(mdl Assembler, sys System, Δt, ρ, atol float64, maxIter int) (o *Integrator, err error) {
	if ρ < 0 || ρ > 1 {
		return nil, chk.Err("generalised-α requires 0 ≤ ρ ≤ 1 (ρ = %v is incorrect)", ρ)
	}
	o = new(Integrator)
	o.αm = 0.5 * (3.0 - ρ) / (1.0 + ρ)
	o.αf = 1.0 / (1.0 + ρ)
	o.γ = 0.5 + o.αm - o.αf
	o.αmInv = 1.0 / o.αm
	o.αfInv = 1.0 / o.αf
	o.γInv = 1.0 / o.γ
	o.atol = atol
	o.maxIter = maxIter
	o.size = sys.Size()
	o.sys = sys
	o.mdl = mdl
	o.yaf = make([]float64, o.size)
	o.ydotam = make([]float64, o.size)
	o.UpdateParams(Δt)
	err = sys.Reserve(mdl)
	if err != nil {
		return nil, err
	}
	return
}

// UpdateParams sets a new time step size and recomputes derived coefficients
func (o *Integrator) UpdateParams(Δt float64) {
	o.Δt = Δt
	o.ΔtInv = 1.0 / Δt
	o.ydotCoeff = o.αm * o.αfInv * o.γInv * o.ΔtInv
	o.yInitCoeff = o.αf * 0.5 * Δt
	o.ydotInitCoeff = 1.0 + o.αm*((o.γ-0.5)*o.γInv-1.0)
}

// Step advances the state from time t to t+Δt. A non-convergent Newton loop
// is a fatal error for the run.
func (o *Integrator) Step(old *State, t float64) (nu *State, err error) {

	// predictor
	for i := 0; i < o.size; i++ {
		o.yaf[i] = old.Y[i] + old.Dydt[i]*o.yInitCoeff
		o.ydotam[i] = old.Dydt[i] * o.ydotInitCoeff
	}

	// time-dependent contributions at the intermediate time
	o.mdl.UpdateTime(o.sys, t+o.αf*o.Δt)

	// Newton iterations
	for it := 0; it < o.maxIter; it++ {

		// solution-dependent contributions and residual
		o.mdl.UpdateSolution(o.sys, o.yaf, o.ydotam)
		o.sys.UpdateResidual(o.yaf, o.ydotam)
		if la.VecLargest(o.sys.Residual(), 1) < o.atol {
			break
		}
		if it == o.maxIter-1 {
			return nil, chk.Err("Newton iterations did not converge after %d iterations @ t=%g (residual=%g)",
				o.maxIter, t, la.VecLargest(o.sys.Residual(), 1))
		}

		// linear solve and update of the iterates
		o.sys.UpdateJacobian(o.ydotCoeff)
		err = o.sys.Solve()
		if err != nil {
			return nil, err
		}
		δy := o.sys.Dy()
		for i := 0; i < o.size; i++ {
			o.yaf[i] += δy[i]
			o.ydotam[i] += δy[i] * o.ydotCoeff
		}
	}

	// corrector
	nu = NewState(o.size)
	for i := 0; i < o.size; i++ {
		nu.Y[i] = old.Y[i] + (o.yaf[i]-old.Y[i])*o.αfInv
		nu.Dydt[i] = old.Dydt[i] + (o.ydotam[i]-old.Dydt[i])*o.αmInv
	}
	return
}

// Clean releases system resources
func (o *Integrator) Clean() {
	o.sys.Clean()
}
