// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// WindkesselBC is the three-element windkessel (RCR) terminating a port
// against a distal pressure, with the internal capacitor pressure P_c:
//
//	P - Rp⋅Q - P_c                       = 0
//	Rd⋅Q - P_c + Pd - Rd⋅C⋅dP_c/dt       = 0
//
// Parameter layout: [Rp, C, Rd, Pd(t)].
type WindkesselBC struct {
	BlkBase
	cCache float64 // capacitance saved while in steady mode
}

// NewWindkesselBC adds a windkessel boundary condition to the model
func NewWindkesselBC(m *Model, name string, paramIds []int) *WindkesselBC {
	o := &WindkesselBC{BlkBase: BlkBase{Nam: name, ParamIds: paramIds,
		NtripF: 5, NtripE: 1}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the two windkessel equations and the capacitor pressure
func (o *WindkesselBC) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 2, []string{"pressure_c"})
}

// UpdateConstant writes the pressure and capacitor selection entries
func (o *WindkesselBC) UpdateConstant(sys algebra.System, prms []float64) {
	pc := o.VarIds[2]
	sys.PutF(o.EqnIds[0], o.VarIds[0], 1)
	sys.PutF(o.EqnIds[0], pc, -1)
	sys.PutF(o.EqnIds[1], pc, -1)
}

// UpdateTime rewrites the entries carrying parameters; the distal pressure
// may be a time series and the capacitance changes on steady conversion
func (o *WindkesselBC) UpdateTime(sys algebra.System, prms []float64) {
	Rp := prms[o.ParamIds[0]]
	C := prms[o.ParamIds[1]]
	Rd := prms[o.ParamIds[2]]
	Pd := prms[o.ParamIds[3]]
	pc := o.VarIds[2]
	sys.PutE(o.EqnIds[1], pc, -Rd*C)
	sys.PutF(o.EqnIds[0], o.VarIds[1], -Rp)
	sys.PutF(o.EqnIds[1], o.VarIds[1], Rd)
	sys.SetC(o.EqnIds[1], Pd)
}

// ToSteady zeroes the capacitance
func (o *WindkesselBC) ToSteady() {
	o.cCache = o.mdl.Params[o.ParamIds[1]].Value
	o.mdl.Params[o.ParamIds[1]].Update(0)
}

// ToUnsteady restores the capacitance
func (o *WindkesselBC) ToUnsteady() {
	o.mdl.Params[o.ParamIds[1]].Update(o.cCache)
}
