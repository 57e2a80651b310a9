// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// testAsm assembles the 2x2 system
//
//	E = ⎡1 0⎤   F = ⎡ 2 -1⎤   D = ⎡0 0⎤   c = ⎡0⎤
//	    ⎣0 0⎦       ⎣-1  2⎦       ⎣0 3⎦       ⎣1⎦
type testAsm struct{}

func (o testAsm) UpdateConstant(sys System) {
	sys.PutE(0, 0, 1)
	sys.PutF(0, 0, 2)
	sys.PutF(0, 1, -1)
	sys.PutF(1, 0, -1)
	sys.PutF(1, 1, 2)
}

func (o testAsm) UpdateTime(sys System, t float64) {
	sys.SetC(1, 1)
}

func (o testAsm) UpdateSolution(sys System, y, ydot []float64) {
	sys.PutD(1, 1, 3)
}

func (o testAsm) NumTriplets() (nF, nE, nD int) { return 4, 1, 1 }

func Test_sparsemat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sparsemat01. pattern lock")

	m := NewSparseMat(3, 3, 4)
	m.Put(0, 0, 1)
	m.Put(1, 2, 2)
	m.Put(0, 0, 5) // overwrite, same slot
	chk.IntAssert(m.Nnz(), 2)
	m.Compress()

	// rewriting a known position is fine
	m.Put(1, 2, 7)
	i, j, v := m.Entry(m.Slot(1, 2))
	chk.IntAssert(i, 1)
	chk.IntAssert(j, 2)
	chk.Scalar(tst, "overwritten value", 1e-17, v, 7)

	// writing outside the locked pattern panics
	defer func() {
		if recover() == nil {
			tst.Errorf("Put outside the locked pattern must panic")
		}
	}()
	m.Put(2, 2, 1)
}

func Test_system01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01. sparse vs dense residual and Jacobian")

	asm := testAsm{}
	sp := NewSparseSystem(2)
	de := NewDenseSystem(2)
	err := sp.Reserve(asm)
	if err != nil {
		tst.Errorf("sparse reserve failed:\n%v", err)
		return
	}
	err = de.Reserve(asm)
	if err != nil {
		tst.Errorf("dense reserve failed:\n%v", err)
		return
	}

	y := []float64{1.5, -2}
	ydot := []float64{0.5, 3}
	sp.UpdateResidual(y, ydot)
	de.UpdateResidual(y, ydot)

	// r = -E⋅ydot - F⋅y - c
	correct := []float64{
		-(1*0.5) - (2*1.5 - 1*(-2)),
		-(-1*1.5 + 2*(-2)) - 1,
	}
	chk.Vector(tst, "sparse residual", 1e-15, sp.Residual(), correct)
	chk.Vector(tst, "dense residual", 1e-15, de.Residual(), correct)

	// J = F + D + 2⋅E
	sp.UpdateJacobian(2)
	de.UpdateJacobian(2)
	jd := [][]float64{{4, -1}, {-1, 5}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			k := sp.Jac.Slot(i, j)
			var v float64
			if k >= 0 {
				_, _, v = sp.Jac.Entry(k)
			}
			chk.Scalar(tst, "sparse J", 1e-15, v, jd[i][j])
			chk.Scalar(tst, "dense J", 1e-15, de.Jac[i][j], jd[i][j])
		}
	}

	// dense solve against the hand-computed solution of J⋅dy = r
	err = de.Solve()
	if err != nil {
		tst.Errorf("dense solve failed:\n%v", err)
		return
	}
	r := de.Residual()
	det := 4.0*5.0 - 1.0
	correctDy := []float64{
		(5*r[0] + 1*r[1]) / det,
		(1*r[0] + 4*r[1]) / det,
	}
	chk.Vector(tst, "dense dy", 1e-13, de.Dy(), correctDy)
}

func Test_integrator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("integrator01. generalised-α coefficients")

	ig, err := NewIntegrator(testAsm{}, NewDenseSystem(2), 0.1, 0.5, 1e-8, 30)
	if err != nil {
		tst.Errorf("NewIntegrator failed:\n%v", err)
		return
	}

	// ρ = 0.5: αm = ½(3-ρ)/(1+ρ) = 5/6, αf = 2/3, γ = ½+αm-αf = 2/3
	chk.Scalar(tst, "αm", 1e-15, ig.αm, 5.0/6.0)
	chk.Scalar(tst, "αf", 1e-15, ig.αf, 2.0/3.0)
	chk.Scalar(tst, "γ", 1e-15, ig.γ, 2.0/3.0)
	chk.Scalar(tst, "ydotCoeff", 1e-13, ig.ydotCoeff, (5.0/6.0)/((2.0/3.0)*(2.0/3.0)*0.1))

	// spectral radius outside [0,1] is rejected
	_, err = NewIntegrator(testAsm{}, NewDenseSystem(2), 0.1, 1.5, 1e-8, 30)
	if err == nil {
		tst.Errorf("ρ > 1 must be rejected")
		return
	}
}
