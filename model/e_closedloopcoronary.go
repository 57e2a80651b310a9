// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gosl/chk"
)

// CoronarySide distinguishes left and right closed-loop coronary outlets
type CoronarySide int

const (
	CoronaryLeft CoronarySide = iota
	CoronaryRight
)

// ClosedLoopCoronaryBC is a coronary outlet whose intramyocardial pressure
// is driven by the ventricle pressure of a ClosedLoopHeartPulmonary block
// in the same model, scaled by that block's iml/imr parameter.
//
// Parameter layout: [Ra, Ram, Rv, Ca, Cim].
type ClosedLoopCoronaryBC struct {
	BlkBase
	Side CoronarySide

	ventricleVarId int // global index of the ventricle pressure variable
	imParamId      int // index of the intramyocardial scaling parameter
}

// NewClosedLoopCoronaryBC adds a closed-loop coronary boundary condition to the model
func NewClosedLoopCoronaryBC(m *Model, name string, paramIds []int, side CoronarySide) *ClosedLoopCoronaryBC {
	o := &ClosedLoopCoronaryBC{BlkBase: BlkBase{Nam: name, ParamIds: paramIds,
		NtripF: 9, NtripE: 5}, Side: side}
	m.addBlock(o)
	return o
}

// SetupDofs declares the three coronary equations and the volume variable
func (o *ClosedLoopCoronaryBC) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 3, []string{"volume_im"})
}

// SetupModelDependentParams binds this block to the heart block of the model
func (o *ClosedLoopCoronaryBC) SetupModelDependentParams(m *Model) (err error) {
	var heart *ClosedLoopHeartPulmonary
	for _, b := range m.Blocks {
		if h, ok := b.(*ClosedLoopHeartPulmonary); ok {
			heart = h
			break
		}
	}
	if heart == nil {
		return chk.Err("closed-loop coronary %q requires a heart/pulmonary block in the model", o.Nam)
	}
	if o.Side == CoronaryLeft {
		o.imParamId = heart.ParamIds[HeartIML]
		o.ventricleVarId = heart.VarIds[13] // left ventricle pressure
	} else {
		o.imParamId = heart.ParamIds[HeartIMR]
		o.ventricleVarId = heart.VarIds[6] // right ventricle pressure
	}
	return
}

// UpdateConstant writes the full stencil; all parameters are constants
func (o *ClosedLoopCoronaryBC) UpdateConstant(sys algebra.System, prms []float64) {
	Ra := prms[o.ParamIds[0]]
	Ram := prms[o.ParamIds[1]]
	Rv := prms[o.ParamIds[2]]
	Ca := prms[o.ParamIds[3]]
	Cim := prms[o.ParamIds[4]]

	sys.PutE(o.EqnIds[0], o.VarIds[0], -Ram*Ca)
	sys.PutE(o.EqnIds[0], o.VarIds[1], Ram*Ra*Ca)
	sys.PutE(o.EqnIds[1], o.VarIds[0], -Ca)
	sys.PutE(o.EqnIds[1], o.VarIds[1], Ca*Ra)
	sys.PutE(o.EqnIds[1], o.VarIds[4], -1)

	sys.PutF(o.EqnIds[0], o.VarIds[0], -1)
	sys.PutF(o.EqnIds[0], o.VarIds[1], Ra+Ram)
	sys.PutF(o.EqnIds[0], o.VarIds[2], 1)
	sys.PutF(o.EqnIds[0], o.VarIds[3], Rv)
	sys.PutF(o.EqnIds[1], o.VarIds[1], 1)
	sys.PutF(o.EqnIds[1], o.VarIds[3], -1)
	sys.PutF(o.EqnIds[2], o.VarIds[2], Cim)
	sys.PutF(o.EqnIds[2], o.VarIds[3], Cim*Rv)
	sys.PutF(o.EqnIds[2], o.VarIds[4], -1)
}

// UpdateSolution writes the forcing from the ventricle pressure
func (o *ClosedLoopCoronaryBC) UpdateSolution(sys algebra.System, prms []float64, y, ydot []float64) {
	Cim := prms[o.ParamIds[4]]
	im := prms[o.imParamId]
	pim := im * y[o.ventricleVarId]
	sys.SetC(o.EqnIds[2], -Cim*pim)
}
