// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// ClosedLoopRCR is an RCR block with two open ports, for use inside a
// closed-loop circuit where the distal side connects back into the model
// instead of ending at a fixed distal pressure:
//
//	C⋅dP_c/dt - Q_in + Q_out  = 0
//	P_in - Rp⋅Q_in - P_c      = 0
//	P_c - Rd⋅Q_out - P_out    = 0
//
// Parameter layout: [Rp, C, Rd].
type ClosedLoopRCR struct {
	BlkBase
	ClosedLoopOutlet bool // outlet connects to a closed-loop circuit
	cCache           float64
}

// NewClosedLoopRCR adds a closed-loop RCR block to the model
func NewClosedLoopRCR(m *Model, name string, paramIds []int, closedLoopOutlet bool) *ClosedLoopRCR {
	o := &ClosedLoopRCR{BlkBase: BlkBase{Nam: name, ParamIds: paramIds,
		NtripF: 8, NtripE: 1}, ClosedLoopOutlet: closedLoopOutlet}
	m.addBlock(o)
	return o
}

// SetupDofs declares the three equations and the capacitor pressure
func (o *ClosedLoopRCR) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 3, []string{"P_c"})
}

// UpdateConstant writes all entries; the parameters of this block are
// constants
func (o *ClosedLoopRCR) UpdateConstant(sys algebra.System, prms []float64) {
	Rp := prms[o.ParamIds[0]]
	C := prms[o.ParamIds[1]]
	Rd := prms[o.ParamIds[2]]
	pc := o.VarIds[4]

	sys.PutF(o.EqnIds[0], o.VarIds[1], -1)
	sys.PutF(o.EqnIds[0], o.VarIds[3], 1)
	sys.PutF(o.EqnIds[1], o.VarIds[0], 1)
	sys.PutF(o.EqnIds[1], pc, -1)
	sys.PutF(o.EqnIds[2], o.VarIds[2], -1)
	sys.PutF(o.EqnIds[2], pc, 1)

	sys.PutE(o.EqnIds[0], pc, C)
	sys.PutF(o.EqnIds[1], o.VarIds[1], -Rp)
	sys.PutF(o.EqnIds[2], o.VarIds[3], -Rd)
}

// ToSteady zeroes the capacitance
func (o *ClosedLoopRCR) ToSteady() {
	o.cCache = o.mdl.Params[o.ParamIds[1]].Value
	o.mdl.Params[o.ParamIds[1]].Update(0)
}

// ToUnsteady restores the capacitance
func (o *ClosedLoopRCR) ToUnsteady() {
	o.mdl.Params[o.ParamIds[1]].Update(o.cCache)
}
