// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solve

import (
	"math"
	"testing"

	"github.com/cpmech/gohemo/ana"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/chk"
)

// lastVal returns the final recorded value of one variable
func lastVal(tst *testing.T, o *Solver, name string) float64 {
	res, err := o.GetSingleResult(name)
	if err != nil {
		tst.Fatalf("GetSingleResult(%q) failed:\n%v", name, err)
	}
	return res[len(res)-1]
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. pressure source => vessel => resistance outlet")

	// R=100 vessel between a constant pressure head of 1000 and a
	// resistance of 10 against zero distal pressure
	m := model.NewModel()
	p := model.NewPressureReferenceBC(m, "INLET", []int{m.AddParam(model.NewParam(1000))})
	v := model.NewBloodVessel(m, "vessel", []int{
		m.AddParam(model.NewParam(100)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(0)),
	})
	r := model.NewResistanceBC(m, "OUT", []int{
		m.AddParam(model.NewParam(10)),
		m.AddParam(model.NewParam(0)),
	})
	m.Connect(p, v)
	m.Connect(v, r)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}

	solver, err := NewSolver(m, SimParams{
		NumCycles: 2, PtsPerCycle: 6, AbsTol: 1e-10, MaxIter: 30, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// closed-form Kirchhoff solution
	chain := ana.SeriesResistors{R: []float64{100, 10}, Pd: 0}
	q := chain.FlowFor(1000)
	chk.Scalar(tst, "flow", 1e-6, lastVal(tst, solver, "flow:vessel:OUT"), q)
	chk.Scalar(tst, "outlet pressure", 1e-6, lastVal(tst, solver, "pressure:vessel:OUT"), chain.PressureAt(1, q))
	chk.Scalar(tst, "inlet pressure", 1e-6, lastVal(tst, solver, "pressure:INLET:vessel"), 1000)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. constant inflow => windkessel, with steady pre-solve")

	m := model.NewModel()
	q := model.NewFlowReferenceBC(m, "IN", []int{m.AddParam(model.NewParam(5))})
	w := model.NewWindkesselBC(m, "RCR", []int{
		m.AddParam(model.NewParam(20)),
		m.AddParam(model.NewParam(0.001)),
		m.AddParam(model.NewParam(80)),
		m.AddParam(model.NewParam(10)),
	})
	m.Connect(q, w)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}

	solver, err := NewSolver(m, SimParams{
		NumCycles: 1, PtsPerCycle: 11, AbsTol: 1e-10, MaxIter: 30,
		SteadyInitial: true, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	pin, pc := ana.RCRSteady(5, 20, 80, 10)
	chk.Scalar(tst, "inlet pressure", 1e-6, lastVal(tst, solver, "pressure:IN:RCR"), pin)
	chk.Scalar(tst, "capacitor pressure", 1e-6, lastVal(tst, solver, "pressure_c:RCR"), pc)
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. two vessels in series")

	m := model.NewModel()
	q := model.NewFlowReferenceBC(m, "IN", []int{m.AddParam(model.NewParam(10))})
	newVessel := func(name string, R float64) *model.BloodVessel {
		return model.NewBloodVessel(m, name, []int{
			m.AddParam(model.NewParam(R)),
			m.AddParam(model.NewParam(0)),
			m.AddParam(model.NewParam(0)),
			m.AddParam(model.NewParam(0)),
		})
	}
	v1 := newVessel("V1", 50)
	v2 := newVessel("V2", 50)
	r := model.NewResistanceBC(m, "OUT", []int{
		m.AddParam(model.NewParam(100)),
		m.AddParam(model.NewParam(0)),
	})
	m.Connect(q, v1)
	m.Connect(v1, v2)
	m.Connect(v2, r)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}

	solver, err := NewSolver(m, SimParams{
		NumCycles: 2, PtsPerCycle: 6, AbsTol: 1e-10, MaxIter: 30, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	chain := ana.SeriesResistors{R: []float64{50, 50, 100}, Pd: 0}
	chk.Scalar(tst, "inflow pressure", 1e-6, lastVal(tst, solver, "pressure:IN:V1"), chain.PressureAt(0, 10))
	chk.Scalar(tst, "mid pressure", 1e-6, lastVal(tst, solver, "pressure:V1:V2"), chain.PressureAt(1, 10))
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. junction with two inlets")

	m := model.NewModel()
	q1 := model.NewFlowReferenceBC(m, "IN1", []int{m.AddParam(model.NewParam(3))})
	q2 := model.NewFlowReferenceBC(m, "IN2", []int{m.AddParam(model.NewParam(7))})
	j := model.NewJunction(m, "J0")
	r := model.NewResistanceBC(m, "OUT", []int{
		m.AddParam(model.NewParam(5)),
		m.AddParam(model.NewParam(0)),
	})
	m.Connect(q1, j)
	m.Connect(q2, j)
	m.Connect(j, r)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}

	solver, err := NewSolver(m, SimParams{
		NumCycles: 2, PtsPerCycle: 6, AbsTol: 1e-10, MaxIter: 30, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// conservation forces the outlet flow; all port pressures are equal
	chk.Scalar(tst, "outlet flow", 1e-6, lastVal(tst, solver, "flow:J0:OUT"), 10)
	chk.Scalar(tst, "outlet pressure", 1e-6, lastVal(tst, solver, "pressure:J0:OUT"), 50)
	chk.Scalar(tst, "inlet 1 pressure", 1e-6, lastVal(tst, solver, "pressure:IN1:J0"), 50)
	chk.Scalar(tst, "inlet 2 pressure", 1e-6, lastVal(tst, solver, "pressure:IN2:J0"), 50)
}

// sineInflowRCR builds the sinusoidal-inflow windkessel model of the
// periodic scenarios
func sineInflowRCR(C float64) (*model.Model, error) {
	m := model.NewModel()
	npts := 101
	times := make([]float64, npts)
	vals := make([]float64, npts)
	for i := 0; i < npts; i++ {
		t := float64(i) / float64(npts-1)
		times[i] = t
		vals[i] = 5 + 5*math.Sin(2*math.Pi*t)
	}
	qp := model.NewParamSeries(times, vals, true)
	m.CardiacCyclePeriod = qp.CyclePeriod
	q := model.NewFlowReferenceBC(m, "IN", []int{m.AddParam(qp)})
	w := model.NewWindkesselBC(m, "RCR", []int{
		m.AddParam(model.NewParam(20)),
		m.AddParam(model.NewParam(C)),
		m.AddParam(model.NewParam(80)),
		m.AddParam(model.NewParam(0)),
	})
	m.Connect(q, w)
	err := m.SetupDofs()
	return m, err
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05. sinusoidal inflow through RCR: mean pressure")

	m, err := sineInflowRCR(0.01)
	if err != nil {
		tst.Errorf("model setup failed:\n%v", err)
		return
	}

	solver, err := NewSolver(m, SimParams{
		NumCycles: 5, PtsPerCycle: 201, AbsTol: 1e-9, MaxIter: 30,
		SteadyInitial: true, UseDense: true, OutputLastCycleOnly: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// mean over the last cycle: Pd + mean(Q)(Rp+Rd) = 0 + 5*100
	avg, err := solver.GetSingleResultAvg("pressure:IN:RCR")
	if err != nil {
		tst.Errorf("GetSingleResultAvg failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "mean pressure over last cycle", 1.0, avg, 500)
}

func Test_solver06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver06. periodic state: consecutive cycles agree")

	m, err := sineInflowRCR(0.01)
	if err != nil {
		tst.Errorf("model setup failed:\n%v", err)
		return
	}

	ptsPerCycle := 101
	solver, err := NewSolver(m, SimParams{
		NumCycles: 30, PtsPerCycle: ptsPerCycle, AbsTol: 1e-9, MaxIter: 30,
		SteadyInitial: true, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// compare the last two cycles point by point
	pres, err := solver.GetSingleResult("pressure:IN:RCR")
	if err != nil {
		tst.Errorf("GetSingleResult failed:\n%v", err)
		return
	}
	n := len(pres)
	stride := ptsPerCycle - 1
	for i := 0; i < stride; i++ {
		a := pres[n-1-i]
		b := pres[n-1-i-stride]
		if math.Abs(a-b) > 1e-9*10 {
			tst.Errorf("cycles disagree at i=%d: |%g - %g| > atol*10", i, a, b)
			return
		}
	}
}

func Test_solver07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver07. sparse and dense backends agree")

	run := func(dense bool) (*Solver, error) {
		m, err := sineInflowRCR(0.01)
		if err != nil {
			return nil, err
		}
		solver, err := NewSolver(m, SimParams{
			NumCycles: 2, PtsPerCycle: 51, AbsTol: 1e-11, MaxIter: 30,
			UseDense: dense,
		})
		if err != nil {
			return nil, err
		}
		return solver, solver.Run()
	}

	sp, err := run(false)
	if err != nil {
		tst.Errorf("sparse run failed:\n%v", err)
		return
	}
	de, err := run(true)
	if err != nil {
		tst.Errorf("dense run failed:\n%v", err)
		return
	}

	chk.IntAssert(len(sp.States), len(de.States))
	for i := range sp.States {
		for k := range sp.States[i].Y {
			if math.Abs(sp.States[i].Y[k]-de.States[i].Y[k]) > 1e-10 {
				tst.Errorf("backends disagree at state %d dof %d: %g != %g",
					i, k, sp.States[i].Y[k], de.States[i].Y[k])
				return
			}
		}
	}
}

func Test_solver09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver09. resistive junction")

	// flow of 4 through port resistances 2 and 3, then a 5-resistance outlet
	m := model.NewModel()
	q := model.NewFlowReferenceBC(m, "IN", []int{m.AddParam(model.NewParam(4))})
	j := model.NewResistiveJunction(m, "RJ", []int{
		m.AddParam(model.NewParam(2)),
		m.AddParam(model.NewParam(3)),
	})
	r := model.NewResistanceBC(m, "OUT", []int{
		m.AddParam(model.NewParam(5)),
		m.AddParam(model.NewParam(0)),
	})
	m.Connect(q, j)
	m.Connect(j, r)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}

	solver, err := NewSolver(m, SimParams{
		NumCycles: 2, PtsPerCycle: 6, AbsTol: 1e-10, MaxIter: 30, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// outlet: 5*4 = 20; common pressure 20+3*4 = 32; inlet 32+2*4 = 40
	chk.Scalar(tst, "outlet pressure", 1e-6, lastVal(tst, solver, "pressure:RJ:OUT"), 20)
	chk.Scalar(tst, "common pressure", 1e-6, lastVal(tst, solver, "pressure_c:RJ"), 32)
	chk.Scalar(tst, "inlet pressure", 1e-6, lastVal(tst, solver, "pressure:IN:RJ"), 40)
}

func Test_solver08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver08. block parameter updates")

	m := model.NewModel()
	q := model.NewFlowReferenceBC(m, "IN", []int{m.AddParam(model.NewParam(5))})
	w := model.NewWindkesselBC(m, "RCR", []int{
		m.AddParam(model.NewParam(20)),
		m.AddParam(model.NewParam(0)),
		m.AddParam(model.NewParam(80)),
		m.AddParam(model.NewParam(10)),
	})
	m.Connect(q, w)
	err := m.SetupDofs()
	if err != nil {
		tst.Errorf("SetupDofs failed:\n%v", err)
		return
	}
	solver, err := NewSolver(m, SimParams{
		NumCycles: 1, PtsPerCycle: 6, AbsTol: 1e-10, MaxIter: 30, UseDense: true,
	})
	if err != nil {
		tst.Errorf("NewSolver failed:\n%v", err)
		return
	}

	// wrong count is rejected
	err = solver.UpdateBlockParams("RCR", []float64{1, 2})
	if err == nil {
		tst.Errorf("size mismatch must be rejected")
		return
	}
	err = solver.UpdateBlockParams("nope", []float64{1})
	if err == nil {
		tst.Errorf("unknown block must be rejected")
		return
	}

	// a successful update changes the steady answer
	err = solver.UpdateBlockParams("RCR", []float64{30, 0, 90, 10})
	if err != nil {
		tst.Errorf("UpdateBlockParams failed:\n%v", err)
		return
	}
	err = solver.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	pin, _ := ana.RCRSteady(5, 30, 90, 10)
	chk.Scalar(tst, "updated inlet pressure", 1e-6, lastVal(tst, solver, "pressure:IN:RCR"), pin)
}
