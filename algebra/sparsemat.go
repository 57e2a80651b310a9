// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package algebra

import (
	"github.com/cpmech/gosl/chk"
)

// ij is the position of one nonzero entry
type ij struct {
	i, j int
}

// SparseMat is a sparse matrix whose nonzero pattern is discovered during a
// symbolic phase and locked afterwards. Before Compress, Put allocates a slot
// for each new (i,j) position; after Compress, Put overwrites the existing
// slot and panics for positions outside the pattern.
type SparseMat struct {
	nrow, ncol int
	pos        map[ij]int // (i,j) => slot
	rows, cols []int      // slot => row, column
	vals       []float64  // slot => value
	compressed bool
}

// NewSparseMat returns a new m x n sparse matrix ready for the symbolic phase
//  nnzMax -- upper bound on the number of nonzeros (capacity hint only)
func NewSparseMat(m, n, nnzMax int) *SparseMat {
	return &SparseMat{
		nrow: m,
		ncol: n,
		pos:  make(map[ij]int, nnzMax),
		rows: make([]int, 0, nnzMax),
		cols: make([]int, 0, nnzMax),
		vals: make([]float64, 0, nnzMax),
	}
}

// Put sets the value of entry (i,j). During the symbolic phase unseen
// positions extend the pattern; afterwards they are a programming error.
func (o *SparseMat) Put(i, j int, v float64) {
	if i < 0 || i >= o.nrow || j < 0 || j >= o.ncol {
		chk.Panic("sparse matrix index (%d,%d) out of range [%d,%d]", i, j, o.nrow, o.ncol)
	}
	k, ok := o.pos[ij{i, j}]
	if ok {
		o.vals[k] = v
		return
	}
	if o.compressed {
		chk.Panic("entry (%d,%d) is outside the nonzero pattern locked by the symbolic phase", i, j)
	}
	o.pos[ij{i, j}] = len(o.vals)
	o.rows = append(o.rows, i)
	o.cols = append(o.cols, j)
	o.vals = append(o.vals, v)
}

// Compress locks the nonzero pattern. The structure never grows afterwards.
func (o *SparseMat) Compress() {
	o.compressed = true
}

// Nnz returns the number of nonzero positions
func (o *SparseMat) Nnz() int {
	return len(o.vals)
}

// Slot returns the storage slot of entry (i,j), or -1 if the position is not
// part of the pattern
func (o *SparseMat) Slot(i, j int) int {
	if k, ok := o.pos[ij{i, j}]; ok {
		return k
	}
	return -1
}

// Entry returns the (row, column, value) triple stored at a slot
func (o *SparseMat) Entry(k int) (i, j int, v float64) {
	return o.rows[k], o.cols[k], o.vals[k]
}

// MulVecSub computes r -= A*x over the nonzero pattern
func (o *SparseMat) MulVecSub(r, x []float64) {
	for k, v := range o.vals {
		r[o.rows[k]] -= v * x[o.cols[k]]
	}
}
