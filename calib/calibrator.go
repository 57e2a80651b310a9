// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package calib recovers block parameters from observed trajectories by
// linear least squares
package calib

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Observations holds observed trajectories in DOF order: Y[k][i] is the
// value of variable k at observation i, Dy its time derivative
type Observations struct {
	Y  [][]float64
	Dy [][]float64
}

// Calibrate assembles the tall least-squares system X⋅α ≈ Y from the
// gradient contributions of all blocks, one row block of size N per
// observation, and solves it for the parameter vector α.
func Calibrate(mdl *model.Model, obs *Observations) (α []float64, err error) {

	// validate observation shape
	n := mdl.Dof.Size()
	np := len(mdl.Params)
	if len(obs.Y) != n || len(obs.Dy) != n {
		return nil, chk.Err("observations must cover all %d variables (got %d y and %d dy series)",
			n, len(obs.Y), len(obs.Dy))
	}
	nobs := len(obs.Y[0])
	for k := 0; k < n; k++ {
		if len(obs.Y[k]) != nobs || len(obs.Dy[k]) != nobs {
			return nil, chk.Err("all observation series must have the same length (variable %d differs)", k)
		}
	}
	if nobs*n < np {
		return nil, chk.Err("%d observations of %d variables cannot determine %d parameters", nobs, n, np)
	}

	// assemble X and Y, one independent row block per observation
	rows := nobs * n
	X := make([][]float64, rows)
	for i := range X {
		X[i] = make([]float64, np)
	}
	Y := make([]float64, rows)
	y := make([]float64, n)
	dy := make([]float64, n)
	for i := 0; i < nobs; i++ {
		for k := 0; k < n; k++ {
			y[k] = obs.Y[k][i]
			dy[k] = obs.Dy[k][i]
		}
		mdl.UpdateGradient(X, Y, i*n, y, dy)
	}

	// solve the least-squares problem via QR
	flat := make([]float64, rows*np)
	for i, row := range X {
		copy(flat[i*np:(i+1)*np], row)
	}
	A := mat.NewDense(rows, np, flat)
	b := mat.NewDense(rows, 1, Y)
	var qr mat.QR
	qr.Factorize(A)
	var sol mat.Dense
	err = qr.SolveTo(&sol, false, b)
	if err != nil {
		return nil, chk.Err("least-squares solve failed:\n%v", err)
	}
	α = make([]float64, np)
	for j := 0; j < np; j++ {
		α[j] = sol.At(j, 0)
	}
	return
}

// Report renders the calibrated parameters grouped by block
func Report(mdl *model.Model, α []float64) string {
	var buf string
	for _, b := range mdl.Blocks {
		ids := model.ParamIdsOf(b)
		if len(ids) == 0 {
			continue
		}
		buf += io.Sf("%s\n", b.Name())
		for _, id := range ids {
			buf += io.Sf("%23.16e\n", α[id])
		}
		buf += "\n"
	}
	return buf
}
