// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// DenseSystem implements System on dense matrices. It mirrors the semantics
// of SparseSystem and is intended for small systems and for verifying the
// sparse backend against a straightforward implementation.
type DenseSystem struct {
	n     int
	E     [][]float64 // matrix multiplying dy/dt
	F     [][]float64 // matrix multiplying y
	D     [][]float64 // solution-dependent part of the linearisation
	C     []float64   // forcing vector
	Jac   [][]float64 // Jacobian = F + D + eCoeff⋅E
	jaci  [][]float64 // inverse of Jacobian (workspace)
	resid []float64   // residual
	dy    []float64   // solution increment
}

// NewDenseSystem returns a new system with size n
func NewDenseSystem(n int) *DenseSystem {
	return &DenseSystem{
		n:     n,
		E:     la.MatAlloc(n, n),
		F:     la.MatAlloc(n, n),
		D:     la.MatAlloc(n, n),
		C:     make([]float64, n),
		Jac:   la.MatAlloc(n, n),
		jaci:  la.MatAlloc(n, n),
		resid: make([]float64, n),
		dy:    make([]float64, n),
	}
}

// Size returns the number of rows == number of columns
func (o *DenseSystem) Size() int { return o.n }

// PutE sets an entry of the E matrix
func (o *DenseSystem) PutE(i, j int, v float64) { o.E[i][j] = v }

// PutF sets an entry of the F matrix
func (o *DenseSystem) PutF(i, j int, v float64) { o.F[i][j] = v }

// PutD sets an entry of the D matrix
func (o *DenseSystem) PutD(i, j int, v float64) { o.D[i][j] = v }

// SetC sets a component of the forcing vector
func (o *DenseSystem) SetC(i int, v float64) { o.C[i] = v }

// Residual returns the current residual
func (o *DenseSystem) Residual() []float64 { return o.resid }

// Dy returns the last solution increment
func (o *DenseSystem) Dy() []float64 { return o.dy }

// Reserve performs the exploratory assembly. Dense storage has no pattern to
// lock; the call exists so that both backends are driven identically.
func (o *DenseSystem) Reserve(a Assembler) (err error) {
	a.UpdateConstant(o)
	a.UpdateTime(o, 0)
	ones := make([]float64, o.n)
	la.VecFill(ones, 1)
	a.UpdateSolution(o, ones, ones)
	return
}

// UpdateResidual computes residual := -E⋅ydot - F⋅y - c
func (o *DenseSystem) UpdateResidual(y, ydot []float64) {
	for i := 0; i < o.n; i++ {
		o.resid[i] = -o.C[i]
		for j := 0; j < o.n; j++ {
			o.resid[i] -= o.E[i][j]*ydot[j] + o.F[i][j]*y[j]
		}
	}
}

// UpdateJacobian computes Jacobian := F + D + eCoeff⋅E
func (o *DenseSystem) UpdateJacobian(eCoeff float64) {
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			o.Jac[i][j] = o.F[i][j] + o.D[i][j] + o.E[i][j]*eCoeff
		}
	}
}

// Solve solves Jacobian⋅dy = residual
func (o *DenseSystem) Solve() (err error) {
	err = la.MatInvG(o.jaci, o.Jac, 1e-13)
	if err != nil {
		return chk.Err("singular Jacobian: dense inversion failed:\n%v", err)
	}
	la.MatVecMul(o.dy, 1, o.jaci, o.resid)
	return
}

// Clean is a no-op for the dense backend
func (o *DenseSystem) Clean() {}
