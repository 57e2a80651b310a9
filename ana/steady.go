// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form solutions of simple hemodynamic
// networks for verifying simulations
package ana

// SeriesResistors is a chain of resistances driven by a known flow and
// terminated at a distal pressure
type SeriesResistors struct {
	R  []float64 // resistances along the chain, proximal first
	Pd float64   // distal pressure at the end of the chain
}

// PressureAt returns the steady pressure upstream of resistor i for flow Q.
// PressureAt(0) is the inlet pressure of the chain.
func (o SeriesResistors) PressureAt(i int, Q float64) float64 {
	p := o.Pd
	for k := len(o.R) - 1; k >= i; k-- {
		p += o.R[k] * Q
	}
	return p
}

// FlowFor returns the steady flow produced by driving the chain with the
// inlet pressure Pin
func (o SeriesResistors) FlowFor(Pin float64) float64 {
	rtot := 0.0
	for _, r := range o.R {
		rtot += r
	}
	return (Pin - o.Pd) / rtot
}

// RCRSteady returns the steady inlet and capacitor pressures of a windkessel
// with constant inflow Q: at steady state the capacitor carries no current,
// so both follow from Kirchhoff's laws alone.
func RCRSteady(Q, Rp, Rd, Pd float64) (pin, pc float64) {
	pc = Pd + Rd*Q
	pin = pc + Rp*Q
	return
}
