// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gohemo/algebra"
)

// FlowReferenceBC prescribes the flow at its single port: Q = Q̂(t).
//
// Parameter layout: [Q(t)].
type FlowReferenceBC struct {
	BlkBase
}

// NewFlowReferenceBC adds a prescribed-flow boundary condition to the model
func NewFlowReferenceBC(m *Model, name string, paramIds []int) *FlowReferenceBC {
	o := &FlowReferenceBC{BlkBase{Nam: name, ParamIds: paramIds, NtripF: 1}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the single flow equation
func (o *FlowReferenceBC) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 1, nil)
}

// UpdateConstant selects the flow variable
func (o *FlowReferenceBC) UpdateConstant(sys algebra.System, prms []float64) {
	sys.PutF(o.EqnIds[0], o.VarIds[1], 1)
}

// UpdateTime sets the prescribed flow
func (o *FlowReferenceBC) UpdateTime(sys algebra.System, prms []float64) {
	sys.SetC(o.EqnIds[0], -prms[o.ParamIds[0]])
}
