// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// Block defines what all 0D elements must implement. Elements write their
// local contributions to the global system at the rows and columns assigned
// during SetupDofs; an entry written by one update phase is rewritten by a
// later phase only where that phase deliberately shadows it (the
// stenosis-dependent flow columns of BloodVessel). prms is the flat
// parameter table of the model, evaluated at the current time.
type Block interface {

	// information and initialisation
	Name() string             // name of the block
	SetupDofs(d *DofHandler)  // declare equations and internal variables

	// called when assembling the system
	UpdateConstant(sys algebra.System, prms []float64)                    // entries independent of time and solution
	UpdateTime(sys algebra.System, prms []float64)                        // entries depending on time only
	UpdateSolution(sys algebra.System, prms []float64, y, ydot []float64) // entries depending on the current iterate

	// steady conversion (for the steady pre-solve)
	ToSteady()   // remove capacitive behaviour (inductances are left unchanged)
	ToUnsteady() // restore original behaviour

	// sparse storage reservation
	NumTriplets() (nF, nE, nD int) // upper bounds on nonzeros written per matrix

	// access to assembly data
	base() *BlkBase
}

// WithGradient defines blocks that can contribute rows to the calibration
// least-squares system. X-columns sit at the block's parameter indices; Y
// receives the known linear part of the equation. rowOff shifts the block's
// equation rows so that each observation occupies an independent row range.
type WithGradient interface {
	UpdateGradient(X [][]float64, Y []float64, rowOff int, y, ydot []float64)
}

// WithInitialState defines blocks that install block-specific initial
// conditions into an otherwise zero state
type WithInitialState interface {
	SeedInitialState(s *algebra.State)
}

// WithModelDependence defines blocks whose parameters depend on other blocks
// of the model and must be resolved after the whole model is assembled
type WithModelDependence interface {
	SetupModelDependentParams(m *Model) (err error)
}

// accessors to the shared assembly data of any block variant

// VarIdsOf returns the global variable indices of a block
func VarIdsOf(b Block) []int { return b.base().VarIds }

// EqnIdsOf returns the global equation indices of a block
func EqnIdsOf(b Block) []int { return b.base().EqnIds }

// ParamIdsOf returns the parameter-table indices of a block
func ParamIdsOf(b Block) []int { return b.base().ParamIds }

// InletsOf returns the inlet nodes of a block
func InletsOf(b Block) []*Node { return b.base().Inlets }

// OutletsOf returns the outlet nodes of a block
func OutletsOf(b Block) []*Node { return b.base().Outlets }

// BlkBase holds the data shared by all block variants
type BlkBase struct {
	Nam     string  // name of the block
	Inlets  []*Node // inlet nodes, in order
	Outlets []*Node // outlet nodes, in order

	// global indices assigned during setup
	VarIds   []int // columns: inlet (P,Q) pairs, outlet (P,Q) pairs, then internal variables
	EqnIds   []int // rows: newly registered equations
	ParamIds []int // indices into the model's flat parameter table

	// sparse reservation
	NtripF, NtripE, NtripD int

	mdl *Model // model owning this block
}

// Name returns the name of the block
func (o *BlkBase) Name() string { return o.Nam }

// NumTriplets returns upper bounds on the nonzeros this block writes
func (o *BlkBase) NumTriplets() (nF, nE, nD int) {
	return o.NtripF, o.NtripE, o.NtripD
}

// base gives the model access to the shared block data
func (o *BlkBase) base() *BlkBase { return o }

// setupDofs populates VarIds (external DOFs first, internal variables last)
// and EqnIds. Internal variables are registered as "name:block".
func (o *BlkBase) setupDofs(d *DofHandler, nEquations int, internalVars []string) {
	for _, n := range o.Inlets {
		o.VarIds = append(o.VarIds, n.PresDof, n.FlowDof)
	}
	for _, n := range o.Outlets {
		o.VarIds = append(o.VarIds, n.PresDof, n.FlowDof)
	}
	for _, name := range internalVars {
		o.VarIds = append(o.VarIds, d.RegisterVariable(name+":"+o.Nam))
	}
	for i := 0; i < nEquations; i++ {
		o.EqnIds = append(o.EqnIds, d.RegisterEquation())
	}
}

// default implementations: a block only implements the phases it needs

// UpdateConstant does nothing by default
func (o *BlkBase) UpdateConstant(sys algebra.System, prms []float64) {}

// UpdateTime does nothing by default
func (o *BlkBase) UpdateTime(sys algebra.System, prms []float64) {}

// UpdateSolution does nothing by default
func (o *BlkBase) UpdateSolution(sys algebra.System, prms []float64, y, ydot []float64) {}

// ToSteady does nothing by default
func (o *BlkBase) ToSteady() {}

// ToUnsteady does nothing by default
func (o *BlkBase) ToUnsteady() {}
