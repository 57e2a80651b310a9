// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gosl/chk"
)

// BloodVesselJunction splits one inlet into several outlets, each branch
// carrying its own resistance, inductance and optional stenosis. One mass
// conservation equation plus one pressure-drop equation per outlet.
//
// Parameter layout per junction with n outlets:
// [R_1..R_n, L_1..L_n, s_1..s_n]; the stenosis group may be absent.
type BloodVesselJunction struct {
	BlkBase
	nout int
}

// NewBloodVesselJunction adds a blood vessel junction block to the model
func NewBloodVesselJunction(m *Model, name string, paramIds []int) *BloodVesselJunction {
	o := &BloodVesselJunction{BlkBase: BlkBase{Nam: name, ParamIds: paramIds}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the mass-conservation equation and one pressure-drop
// equation per outlet. Multiple inlets are not supported.
func (o *BloodVesselJunction) SetupDofs(d *DofHandler) {
	if len(o.Inlets) != 1 {
		chk.Panic("blood vessel junction %q does not support multiple inlets", o.Nam)
	}
	o.nout = len(o.Outlets)
	o.setupDofs(d, o.nout+1, nil)
	o.NtripF = 1 + 4*o.nout
	o.NtripE = 3 * o.nout
	o.NtripD = 2 * o.nout
}

// hasStenosis tells whether the stenosis parameter group is present
func (o *BloodVesselJunction) hasStenosis() bool {
	return len(o.ParamIds)/o.nout > 2
}

// UpdateConstant writes mass conservation and the per-outlet inductances
func (o *BloodVesselJunction) UpdateConstant(sys algebra.System, prms []float64) {
	sys.PutF(o.EqnIds[0], o.VarIds[1], 1)
	for i := 0; i < o.nout; i++ {
		L := prms[o.ParamIds[o.nout+i]]
		sys.PutF(o.EqnIds[0], o.VarIds[3+2*i], -1)

		sys.PutF(o.EqnIds[i+1], o.VarIds[0], 1)
		sys.PutF(o.EqnIds[i+1], o.VarIds[2+2*i], -1)

		sys.PutE(o.EqnIds[i+1], o.VarIds[3+2*i], -L)
	}
}

// UpdateSolution rewrites the outlet flow columns with the stenosis
// resistance of each branch
func (o *BloodVesselJunction) UpdateSolution(sys algebra.System, prms []float64, y, ydot []float64) {
	for i := 0; i < o.nout; i++ {
		R := prms[o.ParamIds[i]]
		var sten float64
		if o.hasStenosis() {
			sten = prms[o.ParamIds[2*o.nout+i]]
		}
		qout := y[o.VarIds[3+2*i]]
		Rs := sten * math.Abs(qout)
		sys.PutF(o.EqnIds[i+1], o.VarIds[3+2*i], -R-Rs)
		sys.PutD(o.EqnIds[i+1], o.VarIds[3+2*i], -Rs)
	}
}

// UpdateGradient contributes the per-outlet pressure-drop rows to the
// calibration system
func (o *BloodVesselJunction) UpdateGradient(X [][]float64, Y []float64, rowOff int, y, ydot []float64) {
	qin := y[o.VarIds[1]]
	pin := y[o.VarIds[0]]

	Y[rowOff+o.EqnIds[0]] = qin
	for i := 0; i < o.nout; i++ {
		qout := y[o.VarIds[3+2*i]]
		pout := y[o.VarIds[2+2*i]]
		dqout := ydot[o.VarIds[3+2*i]]

		X[rowOff+o.EqnIds[i+1]][o.ParamIds[i]] = qout
		X[rowOff+o.EqnIds[i+1]][o.ParamIds[o.nout+i]] = dqout
		if o.hasStenosis() {
			X[rowOff+o.EqnIds[i+1]][o.ParamIds[2*o.nout+i]] = math.Abs(qout) * qout
		}

		Y[rowOff+o.EqnIds[0]] -= qout
		Y[rowOff+o.EqnIds[i+1]] = pin - pout
	}
}
