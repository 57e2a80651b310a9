// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

// System defines the linearised DAE system
//
//	E⋅dy/dt + F⋅y + c = 0
//
// that elements write their local contributions to. D holds the
// solution-dependent part of the linearisation of nonlinear terms and enters
// the Jacobian only. Implementations: SparseSystem and DenseSystem.
type System interface {

	// size and element write access
	Size() int                    // number of rows == number of columns
	PutE(i, j int, v float64)     // set entry of E
	PutF(i, j int, v float64)     // set entry of F
	PutD(i, j int, v float64)     // set entry of D
	SetC(i int, v float64)        // set component of c

	// assembly and solution
	Reserve(a Assembler) (err error)  // symbolic phase: discover and lock the nonzero pattern
	UpdateResidual(y, ydot []float64) // residual := -E⋅ydot - F⋅y - c
	UpdateJacobian(eCoeff float64)    // Jacobian := F + D + eCoeff⋅E
	Solve() (err error)               // solve Jacobian⋅dy = residual
	Residual() []float64              // current residual
	Dy() []float64                    // last solution increment
	Clean()                           // release linear solver resources
}

// Assembler fans system updates out to all elements of a model
type Assembler interface {
	UpdateConstant(sys System)                      // constant contributions
	UpdateTime(sys System, t float64)               // time-dependent contributions
	UpdateSolution(sys System, y, ydot []float64)   // solution-dependent contributions
	NumTriplets() (nF, nE, nD int)                  // aggregate upper bounds on nonzeros
}
