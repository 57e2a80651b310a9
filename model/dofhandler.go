// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/gosl/chk"
)

// DofHandler assigns global indices to solution variables (columns) and
// equations (rows). After setup both counters must be equal; their common
// value is the size of the system.
type DofHandler struct {
	varCounter int      // number of registered variables
	eqnCounter int      // number of registered equations
	Variables  []string // variable names corresponding to the variable indices
}

// RegisterVariable records a variable name and returns its global index
func (o *DofHandler) RegisterVariable(name string) (index int) {
	o.Variables = append(o.Variables, name)
	index = o.varCounter
	o.varCounter++
	return
}

// RegisterEquation returns the global index of a new equation
func (o *DofHandler) RegisterEquation() (index int) {
	index = o.eqnCounter
	o.eqnCounter++
	return
}

// Size returns the number of variables == size of the system
func (o *DofHandler) Size() int { return o.varCounter }

// NumEquations returns the number of registered equations
func (o *DofHandler) NumEquations() int { return o.eqnCounter }

// IndexOfVariable returns the global index of a named variable
func (o *DofHandler) IndexOfVariable(name string) (index int, err error) {
	for i, v := range o.Variables {
		if v == name {
			return i, nil
		}
	}
	return -1, chk.Err("cannot find variable named %q", name)
}
