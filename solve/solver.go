// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solve runs time integrations of 0D hemodynamic models and
// collects their results
package solve

import (
	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gohemo/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// number of large steps of the steady pre-solve
const nStepsSteady = 31

// SimParams holds the simulation control parameters
type SimParams struct {
	NumCycles           int     // number of cardiac cycles to simulate
	PtsPerCycle         int     // number of time points per cardiac cycle
	AbsTol              float64 // absolute tolerance on the residual
	MaxIter             int     // maximum Newton iterations per step
	SteadyInitial       bool    // compute a steady initial condition first
	Rho                 float64 // spectral radius of the generalised-α scheme
	UseDense            bool    // use the dense backend instead of the sparse one
	OutputVariableBased bool    // group output by variable instead of by vessel
	OutputInterval      int     // record every n-th time step
	OutputMeanOnly      bool    // emit only means over the recorded steps
	OutputDerivative    bool    // emit time derivatives as well
	OutputLastCycleOnly bool    // record only the last cardiac cycle
}

// Solver drives the time integration of one model and keeps the recorded
// states for result extraction
type Solver struct {
	Mdl *model.Model // the model being simulated
	Par SimParams    // simulation parameters

	Δt       float64  // time step size
	NumSteps int      // total number of time steps
	DtFunc   fun.Func // time step function (constant for the whole run)

	States  []*algebra.State // recorded states
	Times   []float64        // times corresponding to States
	Verbose bool             // print progress messages
}

// NewSolver returns a new solver for the given model
func NewSolver(mdl *model.Model, par SimParams) (o *Solver, err error) {
	if par.PtsPerCycle < 2 {
		return nil, chk.Err("simulation requires at least 2 time points per cycle (got %d)", par.PtsPerCycle)
	}
	if par.OutputInterval < 1 {
		par.OutputInterval = 1
	}
	if par.Rho == 0 {
		par.Rho = 0.1
	}
	err = mdl.CheckBalance()
	if err != nil {
		return
	}
	o = &Solver{Mdl: mdl, Par: par}
	o.Δt = mdl.CardiacCyclePeriod / float64(par.PtsPerCycle-1)
	o.NumSteps = (par.PtsPerCycle-1)*par.NumCycles + 1
	o.DtFunc = &fun.Cte{C: o.Δt}
	if par.SteadyInitial {
		for _, b := range mdl.Blocks {
			if _, ok := b.(*model.ClosedLoopHeartPulmonary); ok {
				return nil, chk.Err("steady initial condition is not compatible with the heart/pulmonary block")
			}
		}
	}
	return
}

// newSystem allocates a system of the configured backend
func (o *Solver) newSystem() algebra.System {
	n := o.Mdl.Dof.Size()
	if o.Par.UseDense {
		return algebra.NewDenseSystem(n)
	}
	return algebra.NewSparseSystem(n)
}

// Run performs the steady pre-solve (if requested) and the main time loop,
// recording states at the configured interval
func (o *Solver) Run() (err error) {

	n := o.Mdl.Dof.Size()
	state := algebra.NewState(n)
	o.Mdl.SeedInitialState(state)

	// steady pre-solve: capacitive behaviour removed, large steps
	if o.Par.SteadyInitial {
		if o.Verbose {
			io.Pf("> Computing steady initial condition\n")
		}
		ΔtSteady := o.Mdl.CardiacCyclePeriod / 10.0
		o.Mdl.ToSteady()
		sys := o.newSystem()
		var ig *algebra.Integrator
		ig, err = algebra.NewIntegrator(o.Mdl, sys, ΔtSteady, o.Par.Rho, o.Par.AbsTol, o.Par.MaxIter)
		if err != nil {
			return
		}
		for i := 0; i < nStepsSteady; i++ {
			state, err = ig.Step(state, ΔtSteady*float64(i))
			if err != nil {
				ig.Clean()
				return chk.Err("steady pre-solve failed:\n%v", err)
			}
		}
		ig.Clean()
		o.Mdl.ToUnsteady()
	}

	// main integrator
	sys := o.newSystem()
	ig, err := algebra.NewIntegrator(o.Mdl, sys, o.Δt, o.Par.Rho, o.Par.AbsTol, o.Par.MaxIter)
	if err != nil {
		return
	}
	defer ig.Clean()

	// recording setup
	o.States = o.States[:0]
	o.Times = o.Times[:0]
	startLastCycle := o.NumSteps - o.Par.PtsPerCycle
	recordAll := !o.Par.OutputLastCycleOnly

	time := 0.0
	if recordAll || startLastCycle <= 0 {
		o.Times = append(o.Times, time)
		o.States = append(o.States, state)
	}

	// time loop
	intervalCounter := 0
	for i := 1; i < o.NumSteps; i++ {
		state, err = ig.Step(state, time)
		if err != nil {
			return
		}
		intervalCounter++
		time = o.DtFunc.F(time, nil) * float64(i)
		if intervalCounter == o.Par.OutputInterval || (!recordAll && i == startLastCycle) {
			if recordAll || i >= startLastCycle {
				o.Times = append(o.Times, time)
				o.States = append(o.States, state)
			}
			intervalCounter = 0
		}
		if o.Verbose {
			io.Pf("%30.15f\r", time)
		}
	}

	// rebase times when only the last cycle is kept
	if !recordAll && len(o.Times) > 0 {
		start := o.Times[0]
		for i := range o.Times {
			o.Times[i] -= start
		}
	}
	if o.Verbose {
		io.PfGreen("\n> Success: %d states recorded\n", len(o.States))
	}
	return
}

// GetTimes returns the recorded times
func (o *Solver) GetTimes() []float64 {
	return o.Times
}

// GetSingleResult returns the trajectory of one named variable
func (o *Solver) GetSingleResult(dofName string) (res []float64, err error) {
	idx, err := o.Mdl.Dof.IndexOfVariable(dofName)
	if err != nil {
		return
	}
	res = make([]float64, len(o.States))
	for i, s := range o.States {
		res[i] = s.Y[idx]
	}
	return
}

// GetSingleResultAvg returns the mean of one named variable over the
// recorded states
func (o *Solver) GetSingleResultAvg(dofName string) (avg float64, err error) {
	res, err := o.GetSingleResult(dofName)
	if err != nil {
		return
	}
	for _, v := range res {
		avg += v
	}
	avg /= float64(len(res))
	return
}

// GetFullResult renders the recorded states in the configured output format
func (o *Solver) GetFullResult() string {
	if o.Par.OutputVariableBased {
		return out.VariableCSV(o.Times, o.States, o.Mdl, o.Par.OutputMeanOnly, o.Par.OutputDerivative)
	}
	return out.VesselCSV(o.Times, o.States, o.Mdl, o.Par.OutputMeanOnly, o.Par.OutputDerivative)
}

// WriteResultToCSV writes the full result to a file
func (o *Solver) WriteResultToCSV(filename string) {
	io.WriteFileSD(".", filename, o.GetFullResult())
}

// UpdateBlockParams overwrites the parameters of a named block with new
// constant values, in the block's documented parameter order
func (o *Solver) UpdateBlockParams(blockName string, vals []float64) (err error) {
	b := o.Mdl.GetBlock(blockName)
	if b == nil {
		return chk.Err("cannot find block named %q", blockName)
	}
	ids := model.ParamIdsOf(b)
	if len(vals) != len(ids) {
		return chk.Err("parameter update failed: block %q has %d parameters but %d values were given",
			blockName, len(ids), len(vals))
	}
	for i, id := range ids {
		o.Mdl.Params[id].Update(vals[i])
	}
	return
}

// LastCycleIndices returns the indices of the recorded states belonging to
// the final cardiac cycle
func (o *Solver) LastCycleIndices() (idx []int) {
	nlast := (o.Par.PtsPerCycle-1)/o.Par.OutputInterval + 1
	if nlast > len(o.States) {
		nlast = len(o.States)
	}
	for i := len(o.States) - nlast; i < len(o.States); i++ {
		idx = append(idx, i)
	}
	return
}
