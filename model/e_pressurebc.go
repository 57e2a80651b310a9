// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// PressureReferenceBC prescribes the pressure at its single port: P = P̂(t).
//
// Parameter layout: [P(t)].
type PressureReferenceBC struct {
	BlkBase
}

// NewPressureReferenceBC adds a prescribed-pressure boundary condition to the model
func NewPressureReferenceBC(m *Model, name string, paramIds []int) *PressureReferenceBC {
	o := &PressureReferenceBC{BlkBase{Nam: name, ParamIds: paramIds, NtripF: 1}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the single pressure equation
func (o *PressureReferenceBC) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 1, nil)
}

// UpdateConstant selects the pressure variable
func (o *PressureReferenceBC) UpdateConstant(sys algebra.System, prms []float64) {
	sys.PutF(o.EqnIds[0], o.VarIds[0], 1)
}

// UpdateTime sets the prescribed pressure
func (o *PressureReferenceBC) UpdateTime(sys algebra.System, prms []float64) {
	sys.SetC(o.EqnIds[0], -prms[o.ParamIds[0]])
}
