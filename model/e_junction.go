// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// Junction joins an arbitrary number of inlets to an arbitrary number of
// outlets without pressure loss: all port pressures are equal and mass is
// conserved.
type Junction struct {
	BlkBase
	nin, nout int
}

// NewJunction adds a junction block to the model
func NewJunction(m *Model, name string) *Junction {
	o := &Junction{BlkBase: BlkBase{Nam: name}}
	m.addBlock(o)
	return o
}

// SetupDofs declares one pressure-continuity equation per extra port plus
// one mass-conservation equation
func (o *Junction) SetupDofs(d *DofHandler) {
	o.nin = len(o.Inlets)
	o.nout = len(o.Outlets)
	o.setupDofs(d, o.nin+o.nout, nil)
	o.NtripF = (o.nin+o.nout-1)*2 + o.nin + o.nout
}

// UpdateConstant writes the continuity and conservation rows
func (o *Junction) UpdateConstant(sys algebra.System, prms []float64) {
	for i := 0; i < o.nin+o.nout-1; i++ {
		sys.PutF(o.EqnIds[i], o.VarIds[0], 1)
		sys.PutF(o.EqnIds[i], o.VarIds[2*i+2], -1)
	}
	last := o.EqnIds[o.nin+o.nout-1]
	for i := 1; i < o.nin*2; i += 2 {
		sys.PutF(last, o.VarIds[i], 1)
	}
	for i := o.nin*2 + 1; i < (o.nin+o.nout)*2; i += 2 {
		sys.PutF(last, o.VarIds[i], -1)
	}
}
