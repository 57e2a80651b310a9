// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// ResistanceBC terminates its port with a resistance against a distal
// pressure: P - R(t)⋅Q = Pd(t).
//
// Parameter layout: [R(t), Pd(t)].
type ResistanceBC struct {
	BlkBase
}

// NewResistanceBC adds a resistance boundary condition to the model
func NewResistanceBC(m *Model, name string, paramIds []int) *ResistanceBC {
	o := &ResistanceBC{BlkBase{Nam: name, ParamIds: paramIds, NtripF: 2}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the single resistance equation
func (o *ResistanceBC) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 1, nil)
}

// UpdateConstant selects the pressure variable
func (o *ResistanceBC) UpdateConstant(sys algebra.System, prms []float64) {
	sys.PutF(o.EqnIds[0], o.VarIds[0], 1)
}

// UpdateTime rewrites the resistance column and the distal pressure, both of
// which may be time series
func (o *ResistanceBC) UpdateTime(sys algebra.System, prms []float64) {
	sys.PutF(o.EqnIds[0], o.VarIds[1], -prms[o.ParamIds[0]])
	sys.SetC(o.EqnIds[0], -prms[o.ParamIds[1]])
}
