// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// OpenLoopCoronaryBC models a coronary outlet driven by the intramyocardial
// pressure Pim(t) and the venous pressure Pv(t), with the intramyocardial
// volume V_im as internal variable. In steady mode the stencil is
// restructured to solve for V_im algebraically, which avoids a singular
// system during the steady pre-solve.
//
// Parameter layout: [Ra, Ram, Rv, Ca, Cim, Pim(t), Pv(t)].
type OpenLoopCoronaryBC struct {
	BlkBase
	steady bool
}

// NewOpenLoopCoronaryBC adds an open-loop coronary boundary condition to the model
func NewOpenLoopCoronaryBC(m *Model, name string, paramIds []int) *OpenLoopCoronaryBC {
	o := &OpenLoopCoronaryBC{BlkBase: BlkBase{Nam: name, ParamIds: paramIds,
		NtripF: 5, NtripE: 4}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the two coronary equations and the volume variable
func (o *OpenLoopCoronaryBC) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 2, []string{"volume_im"})
}

// UpdateConstant writes the stencil; steady and unsteady modes use
// different entries, so the system must be reserved after a mode switch
func (o *OpenLoopCoronaryBC) UpdateConstant(sys algebra.System, prms []float64) {
	Ra := prms[o.ParamIds[0]]
	Ram := prms[o.ParamIds[1]]
	Rv := prms[o.ParamIds[2]]
	Ca := prms[o.ParamIds[3]]
	Cim := prms[o.ParamIds[4]]

	if o.steady {
		sys.PutF(o.EqnIds[0], o.VarIds[0], -Cim)
		sys.PutF(o.EqnIds[0], o.VarIds[1], Cim*(Ra+Ram))
		sys.PutF(o.EqnIds[0], o.VarIds[2], 1)
		sys.PutF(o.EqnIds[1], o.VarIds[0], -1)
		sys.PutF(o.EqnIds[1], o.VarIds[1], Ra+Ram+Rv)
		return
	}

	sys.PutF(o.EqnIds[0], o.VarIds[1], Cim*Rv)
	sys.PutF(o.EqnIds[0], o.VarIds[2], -1)
	sys.PutF(o.EqnIds[1], o.VarIds[0], Cim*Rv)
	sys.PutF(o.EqnIds[1], o.VarIds[1], -Cim*Rv*Ra)
	sys.PutF(o.EqnIds[1], o.VarIds[2], -(Rv + Ram))

	sys.PutE(o.EqnIds[0], o.VarIds[0], -Ca*Cim*Rv)
	sys.PutE(o.EqnIds[0], o.VarIds[1], Ra*Ca*Cim*Rv)
	sys.PutE(o.EqnIds[0], o.VarIds[2], -Cim*Rv)
	sys.PutE(o.EqnIds[1], o.VarIds[2], -Cim*Rv*Ram)
}

// UpdateTime writes the forcing from the intramyocardial and venous pressures
func (o *OpenLoopCoronaryBC) UpdateTime(sys algebra.System, prms []float64) {
	Ram := prms[o.ParamIds[1]]
	Rv := prms[o.ParamIds[2]]
	Cim := prms[o.ParamIds[4]]
	Pim := prms[o.ParamIds[5]]
	Pv := prms[o.ParamIds[6]]

	if o.steady {
		sys.SetC(o.EqnIds[0], -Cim*Pim)
		sys.SetC(o.EqnIds[1], Pv)
		return
	}
	sys.SetC(o.EqnIds[0], Cim*(-Pim+Pv))
	sys.SetC(o.EqnIds[1], -Cim*(Rv+Ram)*Pim+Ram*Cim*Pv)
}

// ToSteady switches to the algebraic stencil
func (o *OpenLoopCoronaryBC) ToSteady() { o.steady = true }

// ToUnsteady switches back to the differential stencil
func (o *OpenLoopCoronaryBC) ToUnsteady() { o.steady = false }
