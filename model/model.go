// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gosl/chk"
)

// Model aggregates blocks and nodes, owns the degree-of-freedom handler and
// the flat parameter table, fans system updates out to all blocks and tracks
// the current simulation time. Model implements algebra.Assembler.
type Model struct {
	Blocks []Block      // elements of the model, in creation order
	Nodes  []*Node      // nodes of the model
	Dof    *DofHandler  // degree-of-freedom handler
	Params []*Parameter // flat parameter table addressed by block ParamIds

	Time               float64 // current simulation time
	CardiacCyclePeriod float64 // period of the periodic forcing

	prmVals []float64 // parameter table evaluated at the current time
}

// NewModel returns a new empty model
func NewModel() *Model {
	return &Model{
		Dof:                new(DofHandler),
		CardiacCyclePeriod: 1.0,
	}
}

// AddParam appends a parameter to the flat table and returns its index
func (o *Model) AddParam(p *Parameter) (id int) {
	id = len(o.Params)
	o.Params = append(o.Params, p)
	return
}

// addBlock records a new block and gives it access to the model
func (o *Model) addBlock(b Block) {
	b.base().mdl = o
	o.Blocks = append(o.Blocks, b)
}

// GetBlock returns the block with the given name, or nil
func (o *Model) GetBlock(name string) Block {
	for _, b := range o.Blocks {
		if b.Name() == name {
			return b
		}
	}
	return nil
}

// Connect joins the outlet of block "from" to the inlet of block "to"
// through a new node. The node registers its two DOFs immediately.
func (o *Model) Connect(from, to Block) *Node {
	n := &Node{Name: from.Name() + ":" + to.Name()}
	n.SetupDofs(o.Dof)
	o.Nodes = append(o.Nodes, n)
	from.base().Outlets = append(from.base().Outlets, n)
	to.base().Inlets = append(to.base().Inlets, n)
	return n
}

// AddBoundaryNode attaches a synthetic node to a block missing an inlet or
// outlet connection, so that every block sees a full set of external DOFs
func (o *Model) AddBoundaryNode(b Block, inlet bool) *Node {
	var n *Node
	if inlet {
		n = &Node{Name: "inlet:" + b.Name()}
	} else {
		n = &Node{Name: b.Name() + ":outlet"}
	}
	n.SetupDofs(o.Dof)
	o.Nodes = append(o.Nodes, n)
	if inlet {
		b.base().Inlets = append(b.base().Inlets, n)
	} else {
		b.base().Outlets = append(b.base().Outlets, n)
	}
	return n
}

// SetupDofs runs the DOF setup of all blocks and resolves model-dependent
// parameters. The row/column balance is checked separately because the
// calibrator assembles overdetermined systems on purpose.
func (o *Model) SetupDofs() (err error) {
	for _, b := range o.Blocks {
		b.SetupDofs(o.Dof)
	}
	o.prmVals = make([]float64, len(o.Params))
	for _, b := range o.Blocks {
		if md, ok := b.(WithModelDependence); ok {
			err = md.SetupModelDependentParams(o)
			if err != nil {
				return
			}
		}
	}
	return
}

// CheckBalance verifies that the number of variables equals the number of
// equations, as required for time integration
func (o *Model) CheckBalance() (err error) {
	if o.Dof.Size() != o.Dof.NumEquations() {
		return chk.Err("model setup produced %d variables but %d equations", o.Dof.Size(), o.Dof.NumEquations())
	}
	return
}

// evalParams evaluates the flat parameter table at time t
func (o *Model) evalParams(t float64) {
	for i, p := range o.Params {
		o.prmVals[i] = p.Eval(t)
	}
}

// UpdateConstant forwards the constant-contribution update to all blocks
func (o *Model) UpdateConstant(sys algebra.System) {
	o.evalParams(o.Time)
	for _, b := range o.Blocks {
		b.UpdateConstant(sys, o.prmVals)
	}
}

// UpdateTime sets the current time, re-evaluates time-dependent parameters
// and forwards the time-contribution update to all blocks
func (o *Model) UpdateTime(sys algebra.System, t float64) {
	o.Time = t
	o.evalParams(t)
	for _, b := range o.Blocks {
		b.UpdateTime(sys, o.prmVals)
	}
}

// UpdateSolution forwards the solution-contribution update to all blocks
func (o *Model) UpdateSolution(sys algebra.System, y, ydot []float64) {
	for _, b := range o.Blocks {
		b.UpdateSolution(sys, o.prmVals, y, ydot)
	}
}

// ToSteady switches parameters and blocks to steady behaviour
func (o *Model) ToSteady() {
	for _, p := range o.Params {
		p.ToSteady()
	}
	for _, b := range o.Blocks {
		b.ToSteady()
	}
}

// ToUnsteady restores parameters and blocks to unsteady behaviour
func (o *Model) ToUnsteady() {
	for _, p := range o.Params {
		p.ToUnsteady()
	}
	for _, b := range o.Blocks {
		b.ToUnsteady()
	}
}

// NumTriplets aggregates the element nonzero counts into global upper bounds
func (o *Model) NumTriplets() (nF, nE, nD int) {
	for _, b := range o.Blocks {
		f, e, d := b.NumTriplets()
		nF += f
		nE += e
		nD += d
	}
	return
}

// SeedInitialState lets blocks install block-specific initial conditions
func (o *Model) SeedInitialState(s *algebra.State) {
	for _, b := range o.Blocks {
		if wi, ok := b.(WithInitialState); ok {
			wi.SeedInitialState(s)
		}
	}
}

// UpdateGradient fans the calibration gradient contribution out to all
// blocks that provide one
func (o *Model) UpdateGradient(X [][]float64, Y []float64, rowOff int, y, ydot []float64) {
	for _, b := range o.Blocks {
		if wg, ok := b.(WithGradient); ok {
			wg.UpdateGradient(X, Y, rowOff, y, ydot)
		}
	}
}
