// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package algebra implements the linearised DAE system and its time integrator
package algebra

// State holds the solution variables and their time derivatives at one instant
//
//	y    -- solution variables (pressures, flows and internal variables)
//	dydt -- dy/dt
type State struct {
	Y    []float64 // solution variables
	Dydt []float64 // time derivatives of Y
}

// NewState returns a new State with both vectors zeroed
func NewState(n int) *State {
	return &State{
		Y:    make([]float64, n),
		Dydt: make([]float64, n),
	}
}

// Clone returns a deep copy of this state
func (o *State) Clone() *State {
	s := NewState(len(o.Y))
	copy(s.Y, o.Y)
	copy(s.Dydt, o.Dydt)
	return s
}
