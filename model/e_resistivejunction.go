// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// ResistiveJunction joins inlets and outlets through one resistance per
// port, all meeting at a common internal pressure.
//
// Parameter layout: one resistance per port, inlets first, then outlets.
type ResistiveJunction struct {
	BlkBase
	nin, nout int
}

// NewResistiveJunction adds a resistive junction block to the model
func NewResistiveJunction(m *Model, name string, paramIds []int) *ResistiveJunction {
	o := &ResistiveJunction{BlkBase: BlkBase{Nam: name, ParamIds: paramIds}}
	m.addBlock(o)
	return o
}

// SetupDofs declares one pressure-drop equation per port, the internal
// pressure variable and the mass-conservation equation
func (o *ResistiveJunction) SetupDofs(d *DofHandler) {
	o.nin = len(o.Inlets)
	o.nout = len(o.Outlets)
	o.setupDofs(d, o.nin+o.nout+1, []string{"pressure_c"})
	o.NtripF = (o.nin + o.nout) * 4
}

// UpdateConstant writes the per-port pressure-drop rows and the
// mass-conservation row
func (o *ResistiveJunction) UpdateConstant(sys algebra.System, prms []float64) {
	pc := o.VarIds[len(o.VarIds)-1]
	for i := 0; i < o.nin; i++ {
		sys.PutF(o.EqnIds[i], o.VarIds[i*2], 1)
		sys.PutF(o.EqnIds[i], o.VarIds[i*2+1], -prms[o.ParamIds[i]])
		sys.PutF(o.EqnIds[i], pc, -1)
	}
	for i := o.nin; i < o.nin+o.nout; i++ {
		sys.PutF(o.EqnIds[i], o.VarIds[i*2], -1)
		sys.PutF(o.EqnIds[i], o.VarIds[i*2+1], -prms[o.ParamIds[i]])
		sys.PutF(o.EqnIds[i], pc, 1)
	}
	last := o.EqnIds[o.nin+o.nout]
	for i := 1; i < o.nin*2; i += 2 {
		sys.PutF(last, o.VarIds[i], 1)
	}
	for i := o.nin*2 + 1; i < (o.nin+o.nout)*2; i += 2 {
		sys.PutF(last, o.VarIds[i], -1)
	}
}
