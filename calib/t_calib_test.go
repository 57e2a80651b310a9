// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calib

import (
	"math"
	"testing"

	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/chk"
)

func Test_calib01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("calib01. recover vessel parameters from exact observations")

	// true parameters
	R, C, L, S := 123.0, 0.005, 0.02, 3.0

	// a single vessel with synthetic boundary nodes; the starting parameter
	// values are irrelevant for the calibration
	m := model.NewModel()
	v := model.NewBloodVessel(m, "V0", []int{
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
	})
	m.AddBoundaryNode(v, true)
	m.AddBoundaryNode(v, false)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}
	n := m.Dof.Size()
	chk.IntAssert(n, 5)
	ids := model.VarIdsOf(v)

	// exact trajectories satisfying the vessel equations:
	//   Q_in = 2 + sin t        P_c = 100 + 10 cos t
	//   P_in = (R + S|Q_in|) Q_in + P_c
	//   Q_out = Q_in - C dP_c/dt
	//   P_out = P_c - L dQ_out/dt
	nobs := 12
	obs := &Observations{
		Y:  make([][]float64, n),
		Dy: make([][]float64, n),
	}
	for k := 0; k < n; k++ {
		obs.Y[k] = make([]float64, nobs)
		obs.Dy[k] = make([]float64, nobs)
	}
	for i := 0; i < nobs; i++ {
		t := 0.5 * float64(i)
		qin := 2 + math.Sin(t)
		dqin := math.Cos(t)
		pc := 100 + 10*math.Cos(t)
		dpc := -10 * math.Sin(t)
		pin := (R+S*math.Abs(qin))*qin + pc
		dpin := (R+2*S*qin)*dqin + dpc // qin > 0 throughout
		qout := qin - C*dpc
		dqout := dqin + 10*C*math.Cos(t)
		ddqout := -math.Sin(t) - 10*C*math.Sin(t)
		pout := pc - L*dqout
		dpout := dpc - L*ddqout

		obs.Y[ids[0]][i], obs.Dy[ids[0]][i] = pin, dpin
		obs.Y[ids[1]][i], obs.Dy[ids[1]][i] = qin, dqin
		obs.Y[ids[2]][i], obs.Dy[ids[2]][i] = pout, dpout
		obs.Y[ids[3]][i], obs.Dy[ids[3]][i] = qout, dqout
		obs.Y[ids[4]][i], obs.Dy[ids[4]][i] = pc, dpc
	}

	α, err := Calibrate(m, obs)
	if err != nil {
		tst.Errorf("Calibrate failed:\n%v", err)
		return
	}
	pids := model.ParamIdsOf(v)
	chk.Scalar(tst, "R", 1e-6, α[pids[0]], R)
	chk.Scalar(tst, "C", 1e-6, α[pids[1]], C)
	chk.Scalar(tst, "L", 1e-6, α[pids[2]], L)
	chk.Scalar(tst, "stenosis", 1e-6, α[pids[3]], S)
}

func Test_calib02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("calib02. mismatched observations are rejected")

	m := model.NewModel()
	v := model.NewBloodVessel(m, "V0", []int{
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
	})
	m.AddBoundaryNode(v, true)
	m.AddBoundaryNode(v, false)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}
	n := m.Dof.Size()

	// wrong number of variables
	_, err = Calibrate(m, &Observations{Y: make([][]float64, n-1), Dy: make([][]float64, n)})
	if err == nil {
		tst.Errorf("missing variable series must be rejected")
		return
	}

	// inconsistent series lengths
	obs := &Observations{Y: make([][]float64, n), Dy: make([][]float64, n)}
	for k := 0; k < n; k++ {
		obs.Y[k] = make([]float64, 4)
		obs.Dy[k] = make([]float64, 4)
	}
	obs.Y[2] = make([]float64, 3)
	_, err = Calibrate(m, obs)
	if err == nil {
		tst.Errorf("inconsistent series lengths must be rejected")
		return
	}
}
