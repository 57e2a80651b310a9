// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gosl/chk"
)

// buildHeart creates a heart/pulmonary block with plausible parameters and
// synthetic boundary nodes for unit testing
func buildHeart() (*Model, *ClosedLoopHeartPulmonary) {
	m := NewModel()
	vals := []float64{
		0.3, 8.0, // tsa, tpwave
		0.5, 1.0, // Erv_s, Elv_s
		1.0, 1.0, // iml, imr
		1e-4, 0.05, // Lra_v, Rra_v
		1e-4, 0.05, // Lrv_a, Rrv_a
		1e-4, 0.05, // Lla_v, Rla_v
		1e-4, 0.05, // Llv_a, Rlv_ao
		50, 50, // Vrv_u, Vlv_u
		0.5, 1.0, 1.0, // Rpd, Cp, Cpa
		1.0, 0.005, // Kxp_ra, Kxv_ra
		1.0, 0.005, // Kxp_la, Kxv_la
		0.3, 0.3, // Emax_ra, Emax_la
		20, 20, // Vaso_ra, Vaso_la
	}
	ids := make([]int, len(vals))
	for i, v := range vals {
		ids[i] = m.AddParam(NewParam(v))
	}
	h := NewClosedLoopHeartPulmonary(m, "CLH", ids)
	m.AddBoundaryNode(h, true)
	m.AddBoundaryNode(h, false)
	return m, h
}

func Test_heart01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heart01. dofs and initial state seeding")

	m, h := buildHeart()
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}

	chk.IntAssert(len(EqnIdsOf(h)), 14)
	chk.IntAssert(len(VarIdsOf(h)), 16) // 4 external + 12 internal
	chk.IntAssert(len(ParamIdsOf(h)), int(HeartNumParams))

	// the seed installs nonzero chamber volumes and pulmonary pressure
	s := algebra.NewState(m.Dof.Size())
	m.SeedInitialState(s)
	ids := VarIdsOf(h)
	if s.Y[ids[4]] == 0 || s.Y[ids[7]] == 0 || s.Y[ids[11]] == 0 || s.Y[ids[14]] == 0 {
		tst.Errorf("chamber volumes must be seeded nonzero")
		return
	}
	if s.Y[ids[9]] == 0 {
		tst.Errorf("pulmonary pressure must be seeded nonzero")
		return
	}
	chk.Scalar(tst, "ra volume seed", 1e-17, s.Y[ids[4]], heartIniVolumeRA)
}

func Test_heart02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heart02. valve state machine")

	m, h := buildHeart()
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}
	n := m.Dof.Size()
	sys := algebra.NewDenseSystem(n)
	m.UpdateTime(sys, 0.2)

	ids := VarIdsOf(h)
	eqs := EqnIdsOf(h)
	y := make([]float64, n)
	ydot := make([]float64, n)

	// upstream pressure below downstream and reversed flow: tricuspid closes
	// and the flow is clamped in the iterate
	y[ids[0]] = 5   // right atrium pressure
	y[ids[6]] = 10  // right ventricle pressure
	y[ids[5]] = -1  // right atrium outflow
	m.UpdateSolution(sys, y, ydot)
	chk.Scalar(tst, "closed tricuspid gain", 1e-17, sys.F[eqs[2]][ids[5]], 0)
	chk.Scalar(tst, "clamped flow", 1e-17, y[ids[5]], 0)

	// forward pressure gradient: the valve opens again (no hysteresis)
	y[ids[0]] = 15
	y[ids[5]] = -1
	m.UpdateSolution(sys, y, ydot)
	chk.Scalar(tst, "open tricuspid gain", 1e-17, sys.F[eqs[2]][ids[5]], 1)
	chk.Scalar(tst, "flow not clamped", 1e-17, y[ids[5]], -1)

	// aortic valve closes when the left ventricle cannot eject
	y[ids[13]] = 50  // left ventricle pressure
	y[ids[2]] = 80   // aortic pressure
	y[ids[15]] = -2  // left ventricle outflow
	m.UpdateSolution(sys, y, ydot)
	chk.Scalar(tst, "closed aortic gain", 1e-17, sys.F[eqs[1]][ids[15]], 0)
	chk.Scalar(tst, "clamped lv outflow", 1e-17, y[ids[15]], 0)
}

func Test_heart03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("heart03. periodic activation and elastance")

	m, h := buildHeart()
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}
	n := m.Dof.Size()
	ids := VarIdsOf(h)
	eqs := EqnIdsOf(h)
	y := make([]float64, n)
	ydot := make([]float64, n)
	Tc := m.CardiacCyclePeriod

	// the elastance entry must repeat with the cardiac cycle
	sysA := algebra.NewDenseSystem(n)
	m.UpdateTime(sysA, 0.37)
	m.UpdateSolution(sysA, y, ydot)
	ervA := sysA.F[eqs[4]][ids[7]]

	sysB := algebra.NewDenseSystem(n)
	m.UpdateTime(sysB, 0.37+3*Tc)
	m.UpdateSolution(sysB, y, ydot)
	ervB := sysB.F[eqs[4]][ids[7]]

	chk.Scalar(tst, "periodic elastance", 1e-12, ervA, ervB)
	if ervA == 0 {
		tst.Errorf("elastance entry must be nonzero")
		return
	}
}
