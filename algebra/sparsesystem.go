// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// SparseSystem implements System using pattern-locked sparse matrices and a
// sparse LU solver whose symbolic factorisation is performed once, during
// Reserve, and reused by all subsequent numerical factorisations.
type SparseSystem struct {

	// system matrices and vectors
	n     int
	E     *SparseMat // matrix multiplying dy/dt
	F     *SparseMat // matrix multiplying y
	D     *SparseMat // solution-dependent part of the linearisation
	C     []float64  // forcing vector
	Jac   *SparseMat // Jacobian = F + D + eCoeff⋅E
	resid []float64  // residual
	dy    []float64  // solution increment

	// Jacobian scatter maps: slot in E/F/D => slot in Jac
	emap, fmap, dmap []int

	// linear solver
	trip     la.Triplet // Jacobian in triplet form for the linear solver
	lis      la.LinSol  // sparse LU; symbolic phase done once
	lisReady bool
}

// NewSparseSystem returns a new system with size n
func NewSparseSystem(n int) *SparseSystem {
	return &SparseSystem{
		n:     n,
		C:     make([]float64, n),
		resid: make([]float64, n),
		dy:    make([]float64, n),
	}
}

// Size returns the number of rows == number of columns
func (o *SparseSystem) Size() int { return o.n }

// PutE sets an entry of the E matrix
func (o *SparseSystem) PutE(i, j int, v float64) { o.E.Put(i, j, v) }

// PutF sets an entry of the F matrix
func (o *SparseSystem) PutF(i, j int, v float64) { o.F.Put(i, j, v) }

// PutD sets an entry of the D matrix
func (o *SparseSystem) PutD(i, j int, v float64) { o.D.Put(i, j, v) }

// SetC sets a component of the forcing vector
func (o *SparseSystem) SetC(i int, v float64) { o.C[i] = v }

// Residual returns the current residual
func (o *SparseSystem) Residual() []float64 { return o.resid }

// Dy returns the last solution increment
func (o *SparseSystem) Dy() []float64 { return o.dy }

// Reserve runs the symbolic phase: every element writes a value into every
// position it will ever touch, the patterns of E, F and D are locked, the
// Jacobian pattern is built as their union and the sparse LU analyses it.
func (o *SparseSystem) Reserve(a Assembler) (err error) {

	// allocate matrices with the aggregate triplet counts
	nF, nE, nD := a.NumTriplets()
	o.E = NewSparseMat(o.n, o.n, nE)
	o.F = NewSparseMat(o.n, o.n, nF)
	o.D = NewSparseMat(o.n, o.n, nD)

	// exploratory assembly: constant, time and solution contributions. a
	// vector of ones forces every solution-dependent entry to be written
	a.UpdateConstant(o)
	a.UpdateTime(o, 0)
	ones := make([]float64, o.n)
	la.VecFill(ones, 1)
	a.UpdateSolution(o, ones, ones)
	o.E.Compress()
	o.F.Compress()
	o.D.Compress()

	// Jacobian pattern = union of F, D and E patterns
	o.Jac = NewSparseMat(o.n, o.n, o.F.Nnz()+o.E.Nnz()+o.D.Nnz())
	for _, m := range []*SparseMat{o.F, o.D, o.E} {
		for k := 0; k < m.Nnz(); k++ {
			i, j, _ := m.Entry(k)
			o.Jac.Put(i, j, 0)
		}
	}
	o.Jac.Compress()

	// scatter maps
	o.fmap = o.scatterMap(o.F)
	o.dmap = o.scatterMap(o.D)
	o.emap = o.scatterMap(o.E)

	// lock numerical values and let the sparse LU analyse the pattern
	o.UpdateJacobian(1)
	o.trip.Init(o.n, o.n, o.Jac.Nnz())
	o.loadTriplet()
	o.lis = la.GetSolver("umfpack")
	err = o.lis.InitR(&o.trip, false, false, false)
	if err != nil {
		return chk.Err("sparse LU cannot analyse Jacobian pattern:\n%v", err)
	}
	o.lisReady = true
	return
}

// scatterMap maps each slot of m to the corresponding slot in the Jacobian
func (o *SparseSystem) scatterMap(m *SparseMat) (mp []int) {
	mp = make([]int, m.Nnz())
	for k := 0; k < m.Nnz(); k++ {
		i, j, _ := m.Entry(k)
		mp[k] = o.Jac.Slot(i, j)
	}
	return
}

// UpdateResidual computes residual := -E⋅ydot - F⋅y - c
func (o *SparseSystem) UpdateResidual(y, ydot []float64) {
	for i := 0; i < o.n; i++ {
		o.resid[i] = -o.C[i]
	}
	o.E.MulVecSub(o.resid, ydot)
	o.F.MulVecSub(o.resid, y)
}

// UpdateJacobian computes Jacobian := F + D + eCoeff⋅E
func (o *SparseSystem) UpdateJacobian(eCoeff float64) {
	for k := range o.Jac.vals {
		o.Jac.vals[k] = 0
	}
	for k, v := range o.F.vals {
		o.Jac.vals[o.fmap[k]] += v
	}
	for k, v := range o.D.vals {
		o.Jac.vals[o.dmap[k]] += v
	}
	for k, v := range o.E.vals {
		o.Jac.vals[o.emap[k]] += v * eCoeff
	}
}

// loadTriplet copies the Jacobian values into the linear solver triplet
func (o *SparseSystem) loadTriplet() {
	o.trip.Start()
	for k := 0; k < o.Jac.Nnz(); k++ {
		i, j, v := o.Jac.Entry(k)
		o.trip.Put(i, j, v)
	}
}

// Solve refactorises the Jacobian numerically and solves Jacobian⋅dy = residual
func (o *SparseSystem) Solve() (err error) {
	o.loadTriplet()
	err = o.lis.Fact()
	if err != nil {
		return chk.Err("singular Jacobian: sparse LU factorisation failed:\n%v", err)
	}
	return o.lis.SolveR(o.dy, o.resid, false)
}

// Clean releases linear solver resources
func (o *SparseSystem) Clean() {
	if o.lisReady {
		o.lis.Clean()
		o.lisReady = false
	}
}
