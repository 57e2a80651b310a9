// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gohemo/algebra"
)

// Parameter indices of ClosedLoopHeartPulmonary, in parameter-table order
const (
	HeartTSA    = iota // fraction of cycle for atrial systole
	HeartTPWAVE        // cycle divisor for the P-wave (tpw = Tc / tpwave)
	HeartERVS          // scaling for right ventricle elastance
	HeartELVS          // scaling for left ventricle elastance
	HeartIML           // scaling for intramyocardial pressure (left coronaries)
	HeartIMR           // scaling for intramyocardial pressure (right coronaries)
	HeartLRAV          // right atrium inductance
	HeartRRAV          // right atrium outflow resistance
	HeartLRVA          // right ventricle inductance
	HeartRRVA          // right ventricle outflow resistance
	HeartLLAV          // left atrium inductance
	HeartRLAV          // left atrium outflow resistance
	HeartLLVA          // left ventricle inductance
	HeartRLVAO         // left ventricle outflow resistance
	HeartVRVU          // right ventricle unstressed volume
	HeartVLVU          // left ventricle unstressed volume
	HeartRPD           // pulmonary resistance
	HeartCP            // pulmonary capacitance
	HeartCPA           // aortic capacitance
	HeartKXPRA         // right atrium pressure-volume coefficient
	HeartKXVRA         // right atrium pressure-volume exponent
	HeartKXPLA         // left atrium pressure-volume coefficient
	HeartKXVLA         // left atrium pressure-volume exponent
	HeartEMAXRA        // right atrium maximum elastance
	HeartEMAXLA        // left atrium maximum elastance
	HeartVASORA        // right atrium rest volume
	HeartVASOLA        // left atrium rest volume
	HeartNumParams     // number of heart parameters
)

// ventricular elastance Fourier modes (cosine, sine)
var heartElastanceModes = [25][2]float64{
	{0.283748803, 0.000000000}, {0.031830626, -0.374299825},
	{-0.209472400, -0.018127770}, {0.020520047, 0.073971113},
	{0.008316883, -0.047249597}, {-0.041677660, 0.003212163},
	{0.000867323, 0.019441411}, {-0.001675379, -0.005565534},
	{-0.011252277, 0.003401432}, {-0.000414677, 0.008376795},
	{0.000253749, -0.000071880}, {-0.002584966, 0.001566861},
	{0.000584752, 0.003143555}, {0.000028502, -0.000024787},
	{0.000022961, -0.000007476}, {0.000018735, -0.000001281},
	{0.000015573, 0.000001781}, {0.000013133, 0.000003494},
	{0.000011199, 0.000004507}, {0.000009634, 0.000005117},
	{0.000008343, 0.000005481}, {0.000007265, 0.000005687},
	{0.000006354, 0.000005789}, {0.000005575, 0.000005821},
	{0.000004903, 0.000005805},
}

// initial conditions installed by SeedInitialState
const (
	heartIniVolumeRA = 100.0  // right atrium volume
	heartIniVolumeRV = 150.0  // right ventricle volume
	heartIniVolumeLA = 100.0  // left atrium volume
	heartIniVolumeLV = 150.0  // left ventricle volume
	heartIniPresPul  = 1.0e4  // pulmonary pressure
)

// ClosedLoopHeartPulmonary models the four heart chambers and the pulmonary
// circulation with 14 equations and 12 internal variables. The inlet port is
// the systemic venous return into the right atrium and the outlet port the
// aortic root. Four valves (tricuspid, pulmonary, mitral, aortic) gate the
// chamber outflows: a valve closes when its upstream pressure falls to or
// below its downstream pressure while the forward flow is non-positive, and
// the corresponding flow is clamped to zero in the current iterate. The
// state is recomputed from scratch at each iteration.
//
// Internal variables, in order:
// V_RA, Q_RA, P_RV, V_RV, Q_RV, P_pul, P_LA, V_LA, Q_LA, P_LV, V_LV, Q_LV.
type ClosedLoopHeartPulmonary struct {
	BlkBase

	// activation and elastance at the current time
	aa       float64 // atrial activation function
	elv, erv float64 // ventricular elastances

	// atrial pressure-volume expressions at the current iterate
	psiRA, psiLA           float64
	psiRAderiv, psiLAderiv float64

	// valve gains indexed by the variable they gate
	valves [16]float64
}

// NewClosedLoopHeartPulmonary adds a heart/pulmonary block to the model
func NewClosedLoopHeartPulmonary(m *Model, name string, paramIds []int) *ClosedLoopHeartPulmonary {
	o := &ClosedLoopHeartPulmonary{BlkBase: BlkBase{Nam: name, ParamIds: paramIds,
		NtripF: 33, NtripE: 10, NtripD: 2}}
	m.addBlock(o)
	return o
}

// SetupDofs declares the 14 equations and 12 internal variables
func (o *ClosedLoopHeartPulmonary) SetupDofs(d *DofHandler) {
	o.setupDofs(d, 14, []string{"V_RA", "Q_RA", "P_RV", "V_RV", "Q_RV", "P_pul",
		"P_LA", "V_LA", "Q_LA", "P_LV", "V_LV", "Q_LV"})
}

// SeedInitialState installs nonzero chamber volumes and pulmonary pressure
// so that the closed loop starts from a physiological configuration
func (o *ClosedLoopHeartPulmonary) SeedInitialState(s *algebra.State) {
	s.Y[o.VarIds[4]] = heartIniVolumeRA
	s.Y[o.VarIds[7]] = heartIniVolumeRV
	s.Y[o.VarIds[11]] = heartIniVolumeLA
	s.Y[o.VarIds[14]] = heartIniVolumeLV
	s.Y[o.VarIds[9]] = heartIniPresPul
}

// UpdateConstant writes the capacitive and inductive terms
func (o *ClosedLoopHeartPulmonary) UpdateConstant(sys algebra.System, prms []float64) {
	sys.PutE(o.EqnIds[1], o.VarIds[2], prms[o.ParamIds[HeartCPA]])
	sys.PutE(o.EqnIds[2], o.VarIds[4], 1)
	sys.PutE(o.EqnIds[3], o.VarIds[5], prms[o.ParamIds[HeartLRAV]])
	sys.PutE(o.EqnIds[5], o.VarIds[7], 1)
	sys.PutE(o.EqnIds[6], o.VarIds[8], prms[o.ParamIds[HeartLRVA]])
	sys.PutE(o.EqnIds[7], o.VarIds[9], prms[o.ParamIds[HeartCP]])
	sys.PutE(o.EqnIds[9], o.VarIds[11], 1)
	sys.PutE(o.EqnIds[10], o.VarIds[12], prms[o.ParamIds[HeartLLAV]])
	sys.PutE(o.EqnIds[12], o.VarIds[14], 1)
	sys.PutE(o.EqnIds[13], o.VarIds[15], prms[o.ParamIds[HeartLLVA]])
}

// UpdateTime evaluates the atrial activation and the ventricular elastances
func (o *ClosedLoopHeartPulmonary) UpdateTime(sys algebra.System, prms []float64) {
	o.activationAndElastance(prms)
}

// UpdateSolution writes the chamber equations with the current valve states
func (o *ClosedLoopHeartPulmonary) UpdateSolution(sys algebra.System, prms []float64, y, ydot []float64) {
	o.psiRaLa(prms, y)
	o.valvePositions(y)

	// right atrium pressure-volume relationship
	sys.PutF(o.EqnIds[0], o.VarIds[0], 1)
	sys.PutF(o.EqnIds[0], o.VarIds[4], -o.aa*prms[o.ParamIds[HeartEMAXRA]])
	sys.SetC(o.EqnIds[0],
		o.aa*prms[o.ParamIds[HeartEMAXRA]]*prms[o.ParamIds[HeartVASORA]]+o.psiRA*(o.aa-1))
	sys.PutD(o.EqnIds[0], o.VarIds[4], o.psiRAderiv*(o.aa-1))

	// aortic root mass balance
	sys.PutF(o.EqnIds[1], o.VarIds[15], -o.valves[15])
	sys.PutF(o.EqnIds[1], o.VarIds[3], 1)

	// right atrium volume balance
	sys.PutF(o.EqnIds[2], o.VarIds[5], o.valves[5])
	sys.PutF(o.EqnIds[2], o.VarIds[1], -1)

	// right atrium outflow through the tricuspid valve
	sys.PutF(o.EqnIds[3], o.VarIds[5], prms[o.ParamIds[HeartRRAV]]*o.valves[5])
	sys.PutF(o.EqnIds[3], o.VarIds[0], -1)
	sys.PutF(o.EqnIds[3], o.VarIds[6], 1)

	// right ventricle elastance
	sys.PutF(o.EqnIds[4], o.VarIds[6], 1)
	sys.PutF(o.EqnIds[4], o.VarIds[7], -o.erv)
	sys.SetC(o.EqnIds[4], o.erv*prms[o.ParamIds[HeartVRVU]])

	// right ventricle volume balance
	sys.PutF(o.EqnIds[5], o.VarIds[5], -o.valves[5])
	sys.PutF(o.EqnIds[5], o.VarIds[8], o.valves[8])

	// right ventricle outflow through the pulmonary valve
	sys.PutF(o.EqnIds[6], o.VarIds[6], -1)
	sys.PutF(o.EqnIds[6], o.VarIds[9], 1)
	sys.PutF(o.EqnIds[6], o.VarIds[8], prms[o.ParamIds[HeartRRVA]]*o.valves[8])

	// pulmonary circulation
	sys.PutF(o.EqnIds[7], o.VarIds[8], -o.valves[8])
	sys.PutF(o.EqnIds[7], o.VarIds[9], 1/prms[o.ParamIds[HeartRPD]])
	sys.PutF(o.EqnIds[7], o.VarIds[10], -1/prms[o.ParamIds[HeartRPD]])

	// left atrium pressure-volume relationship
	sys.PutF(o.EqnIds[8], o.VarIds[10], 1)
	sys.PutF(o.EqnIds[8], o.VarIds[11], -o.aa*prms[o.ParamIds[HeartEMAXLA]])
	sys.SetC(o.EqnIds[8],
		o.aa*prms[o.ParamIds[HeartEMAXLA]]*prms[o.ParamIds[HeartVASOLA]]+o.psiLA*(o.aa-1))
	sys.PutD(o.EqnIds[8], o.VarIds[11], o.psiLAderiv*(o.aa-1))

	// left atrium volume balance
	sys.PutF(o.EqnIds[9], o.VarIds[8], -o.valves[8])
	sys.PutF(o.EqnIds[9], o.VarIds[12], o.valves[12])

	// left atrium outflow through the mitral valve
	sys.PutF(o.EqnIds[10], o.VarIds[10], -1)
	sys.PutF(o.EqnIds[10], o.VarIds[13], 1)
	sys.PutF(o.EqnIds[10], o.VarIds[12], prms[o.ParamIds[HeartRLAV]]*o.valves[12])

	// left ventricle elastance
	sys.PutF(o.EqnIds[11], o.VarIds[13], 1)
	sys.PutF(o.EqnIds[11], o.VarIds[14], -o.elv)
	sys.SetC(o.EqnIds[11], o.elv*prms[o.ParamIds[HeartVLVU]])

	// left ventricle volume balance
	sys.PutF(o.EqnIds[12], o.VarIds[12], -o.valves[12])
	sys.PutF(o.EqnIds[12], o.VarIds[15], o.valves[15])

	// left ventricle outflow through the aortic valve
	sys.PutF(o.EqnIds[13], o.VarIds[13], -1)
	sys.PutF(o.EqnIds[13], o.VarIds[2], 1)
	sys.PutF(o.EqnIds[13], o.VarIds[15], prms[o.ParamIds[HeartRLVAO]]*o.valves[15])
}

// activationAndElastance computes the atrial activation function and the
// ventricular elastances at the current time within the cardiac cycle
func (o *ClosedLoopHeartPulmonary) activationAndElastance(prms []float64) {
	Tc := o.mdl.CardiacCyclePeriod
	tsa := Tc * prms[o.ParamIds[HeartTSA]]
	tpw := Tc / prms[o.ParamIds[HeartTPWAVE]]
	t := math.Mod(o.mdl.Time, Tc)

	o.aa = 0
	if t <= tpw {
		o.aa = 0.5 * (1 - math.Cos(2*math.Pi*(t-tpw+tsa)/tsa))
	} else if t >= (Tc-tsa)+tpw && t < Tc {
		o.aa = 0.5 * (1 - math.Cos(2*math.Pi*(t-tpw-(Tc-tsa))/tsa))
	}

	e := 0.0
	for i, m := range heartElastanceModes {
		e += m[0]*math.Cos(2*math.Pi*float64(i)*t/Tc) - m[1]*math.Sin(2*math.Pi*float64(i)*t/Tc)
	}
	o.elv = e * prms[o.ParamIds[HeartELVS]]
	o.erv = e * prms[o.ParamIds[HeartERVS]]
}

// psiRaLa computes the exponential atrial pressure-volume expressions and
// their derivatives with respect to the chamber volumes
func (o *ClosedLoopHeartPulmonary) psiRaLa(prms []float64, y []float64) {
	vRA := y[o.VarIds[4]]
	vLA := y[o.VarIds[11]]
	kxpRA := prms[o.ParamIds[HeartKXPRA]]
	kxvRA := prms[o.ParamIds[HeartKXVRA]]
	kxpLA := prms[o.ParamIds[HeartKXPLA]]
	kxvLA := prms[o.ParamIds[HeartKXVLA]]
	vasoRA := prms[o.ParamIds[HeartVASORA]]
	vasoLA := prms[o.ParamIds[HeartVASOLA]]

	o.psiRA = kxpRA * (math.Exp((vRA-vasoRA)*kxvRA) - 1)
	o.psiLA = kxpLA * (math.Exp((vLA-vasoLA)*kxvLA) - 1)
	o.psiRAderiv = kxpRA * math.Exp((vRA-vasoRA)*kxvRA) * kxvRA
	o.psiLAderiv = kxpLA * math.Exp((vLA-vasoLA)*kxvLA) * kxvLA
}

// valvePositions recomputes the four valve states from the current iterate
// and clamps the flow through closed valves to zero
func (o *ClosedLoopHeartPulmonary) valvePositions(y []float64) {
	for i := range o.valves {
		o.valves[i] = 1
	}

	// tricuspid valve: right atrium => right ventricle
	presRA := y[o.VarIds[0]]
	presRV := y[o.VarIds[6]]
	outflowRA := y[o.VarIds[5]]
	if presRA <= presRV && outflowRA <= 0 {
		o.valves[5] = 0
		y[o.VarIds[5]] = 0
	}

	// pulmonary valve: right ventricle => pulmonary circulation
	presPul := y[o.VarIds[9]]
	outflowRV := y[o.VarIds[8]]
	if presRV <= presPul && outflowRV <= 0 {
		o.valves[8] = 0
		y[o.VarIds[8]] = 0
	}

	// mitral valve: left atrium => left ventricle
	presLA := y[o.VarIds[10]]
	presLV := y[o.VarIds[13]]
	outflowLA := y[o.VarIds[12]]
	if presLA <= presLV && outflowLA <= 0 {
		o.valves[12] = 0
		y[o.VarIds[12]] = 0
	}

	// aortic valve: left ventricle => aorta
	presAo := y[o.VarIds[2]]
	outflowLV := y[o.VarIds[15]]
	if presLV <= presAo && outflowLV <= 0 {
		o.valves[15] = 0
		y[o.VarIds[15]] = 0
	}
}
