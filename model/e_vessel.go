// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gohemo/algebra"
)

// BloodVessel is a resistor-capacitor-inductor vessel segment with an
// optional stenosis. With the internal chamber pressure P_c the governing
// equations are
//
//	P_in - (R+R_s)⋅Q_in - P_c                      = 0
//	Q_in - Q_out - C⋅dP_c/dt                       = 0
//	P_in - (R+R_s)⋅Q_in - P_out - L⋅dQ_out/dt      = 0
//
// with the stenosis resistance R_s = s⋅|Q_in| entering via the
// solution-dependent phase.
//
// Parameter layout: [R, C, L, stenosis coefficient].
type BloodVessel struct {
	BlkBase
	cCache float64 // capacitance saved while in steady mode
}

// NewBloodVessel adds a blood vessel block to the model
func NewBloodVessel(m *Model, name string, paramIds []int) *BloodVessel {
	o := &BloodVessel{BlkBase: BlkBase{Nam: name, ParamIds: paramIds,
		NtripF: 10, NtripE: 2, NtripD: 2}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the three vessel equations and the chamber pressure
func (o *BloodVessel) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 3, []string{"pressure_c"})
}

// UpdateConstant writes the entries that stay fixed during the run
func (o *BloodVessel) UpdateConstant(sys algebra.System, prms []float64) {
	R := prms[o.ParamIds[0]]
	C := prms[o.ParamIds[1]]
	L := prms[o.ParamIds[2]]

	sys.PutE(o.EqnIds[1], o.VarIds[4], -C)
	sys.PutE(o.EqnIds[2], o.VarIds[3], -L)

	sys.PutF(o.EqnIds[0], o.VarIds[0], 1)
	sys.PutF(o.EqnIds[0], o.VarIds[1], -R)
	sys.PutF(o.EqnIds[0], o.VarIds[4], -1)

	sys.PutF(o.EqnIds[1], o.VarIds[1], 1)
	sys.PutF(o.EqnIds[1], o.VarIds[3], -1)

	sys.PutF(o.EqnIds[2], o.VarIds[0], 1)
	sys.PutF(o.EqnIds[2], o.VarIds[1], -R)
	sys.PutF(o.EqnIds[2], o.VarIds[2], -1)
}

// UpdateSolution rewrites the flow columns with the stenosis resistance
func (o *BloodVessel) UpdateSolution(sys algebra.System, prms []float64, y, ydot []float64) {
	var sten float64
	if len(o.ParamIds) > 3 {
		sten = prms[o.ParamIds[3]]
	}
	qin := math.Abs(y[o.VarIds[1]])
	fac1 := -sten * qin
	fac2 := fac1 - prms[o.ParamIds[0]]
	sys.PutF(o.EqnIds[0], o.VarIds[1], fac2)
	sys.PutF(o.EqnIds[2], o.VarIds[1], fac2)
	sys.PutD(o.EqnIds[0], o.VarIds[1], fac1)
	sys.PutD(o.EqnIds[2], o.VarIds[1], fac1)
}

// ToSteady zeroes the capacitance so that a steady pre-solve does not see
// the E-matrix term
func (o *BloodVessel) ToSteady() {
	o.cCache = o.mdl.Params[o.ParamIds[1]].Value
	o.mdl.Params[o.ParamIds[1]].Update(0)
}

// ToUnsteady restores the capacitance
func (o *BloodVessel) ToUnsteady() {
	o.mdl.Params[o.ParamIds[1]].Update(o.cCache)
}

// UpdateGradient contributes the vessel rows to the calibration system:
// the R column receives Q_in, the C column dP_c/dt, the L column dQ_out/dt
// and the stenosis column |Q_in|⋅Q_in, against the known pressure and flow
// differences.
func (o *BloodVessel) UpdateGradient(X [][]float64, Y []float64, rowOff int, y, ydot []float64) {
	y0 := y[o.VarIds[0]]
	y1 := y[o.VarIds[1]]
	y2 := y[o.VarIds[2]]
	y3 := y[o.VarIds[3]]
	y4 := y[o.VarIds[4]]
	dy3 := ydot[o.VarIds[3]]
	dy4 := ydot[o.VarIds[4]]

	X[rowOff+o.EqnIds[0]][o.ParamIds[0]] = y1
	X[rowOff+o.EqnIds[2]][o.ParamIds[0]] = y1
	X[rowOff+o.EqnIds[0]][o.ParamIds[2]] = dy3
	X[rowOff+o.EqnIds[1]][o.ParamIds[1]] = dy4

	Y[rowOff+o.EqnIds[0]] = y0 - y2
	Y[rowOff+o.EqnIds[1]] = y1 - y3
	Y[rowOff+o.EqnIds[2]] = y0 - y4

	if len(o.ParamIds) > 3 {
		fac := math.Abs(y1) * y1
		X[rowOff+o.EqnIds[0]][o.ParamIds[3]] = fac
		X[rowOff+o.EqnIds[2]][o.ParamIds[3]] = fac
	}
}
