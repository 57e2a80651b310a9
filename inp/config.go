// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp loads JSON simulation configurations and materializes models
package inp

import (
	"encoding/json"

	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gohemo/solve"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Series is a scalar or an array of scalars in the configuration
type Series []float64

// UnmarshalJSON accepts both a single number and an array of numbers
func (o *Series) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*o = Series{v}
		return nil
	}
	var a []float64
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*o = a
	return nil
}

// SimParamsConfig mirrors the "simulation_parameters" object
type SimParamsConfig struct {
	NumberOfCardiacCycles          int      `json:"number_of_cardiac_cycles"`
	NumberOfTimePtsPerCardiacCycle int      `json:"number_of_time_pts_per_cardiac_cycle"`
	CardiacCyclePeriod             *float64 `json:"cardiac_cycle_period"`
	AbsoluteTolerance              *float64 `json:"absolute_tolerance"`
	MaximumNonlinearIterations     *int     `json:"maximum_nonlinear_iterations"`
	SteadyInitial                  *bool    `json:"steady_initial"`
	OutputVariableBased            bool     `json:"output_variable_based"`
	OutputInterval                 *int     `json:"output_interval"`
	OutputMeanOnly                 bool     `json:"output_mean_only"`
	OutputDerivative               bool     `json:"output_derivative"`
	OutputLastCycleOnly            bool     `json:"output_last_cycle_only"`
}

// VesselValues mirrors "zero_d_element_values" of a vessel
type VesselValues struct {
	RPoiseuille         float64 `json:"R_poiseuille"`
	C                   float64 `json:"C"`
	L                   float64 `json:"L"`
	StenosisCoefficient float64 `json:"stenosis_coefficient"`
}

// VesselBCs names the boundary conditions attached to a vessel
type VesselBCs struct {
	Inlet  string `json:"inlet"`
	Outlet string `json:"outlet"`
}

// VesselConfig mirrors one entry of "vessels"
type VesselConfig struct {
	VesselId           int           `json:"vessel_id"`
	VesselName         string        `json:"vessel_name"`
	ZeroDElementType   string        `json:"zero_d_element_type"`
	ZeroDElementValues VesselValues  `json:"zero_d_element_values"`
	BoundaryConditions *VesselBCs    `json:"boundary_conditions"`
}

// JunctionValues mirrors "junction_values" of a junction
type JunctionValues struct {
	RPoiseuille         []float64 `json:"R_poiseuille"`
	L                   []float64 `json:"L"`
	StenosisCoefficient []float64 `json:"stenosis_coefficient"`
}

// JunctionConfig mirrors one entry of "junctions"
type JunctionConfig struct {
	JunctionName   string          `json:"junction_name"`
	JunctionType   string          `json:"junction_type"`
	InletVessels   []int           `json:"inlet_vessels"`
	OutletVessels  []int           `json:"outlet_vessels"`
	JunctionValues *JunctionValues `json:"junction_values"`
}

// BCConfig mirrors one entry of "boundary_conditions"
type BCConfig struct {
	BCName   string                     `json:"bc_name"`
	BCType   string                     `json:"bc_type"`
	BCValues map[string]json.RawMessage `json:"bc_values"`
}

// Config mirrors the whole configuration document
type Config struct {
	SimulationParameters SimParamsConfig  `json:"simulation_parameters"`
	Vessels              []VesselConfig   `json:"vessels"`
	Junctions            []JunctionConfig `json:"junctions"`
	BoundaryConditions   []BCConfig       `json:"boundary_conditions"`
}

// connection is one directed block-to-block link
type connection struct {
	from, to string
}

// getSeries extracts a numeric value or array from bc_values, trying the
// given keys in order
func (o *BCConfig) getSeries(keys ...string) (Series, bool) {
	for _, key := range keys {
		raw, ok := o.BCValues[key]
		if !ok {
			continue
		}
		var s Series
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return nil, false
}

// getScalar extracts a single numeric value from bc_values
func (o *BCConfig) getScalar(keys ...string) (float64, bool) {
	s, ok := o.getSeries(keys...)
	if !ok || len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// getBool extracts a boolean value from bc_values
func (o *BCConfig) getBool(key string) bool {
	raw, ok := o.BCValues[key]
	if !ok {
		return false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

// mustScalar extracts a required scalar value from bc_values
func (o *BCConfig) mustScalar(key string, alt ...string) (float64, error) {
	keys := append([]string{key}, alt...)
	v, ok := o.getScalar(keys...)
	if !ok {
		return 0, chk.Err("boundary condition %q is missing required value %q", o.BCName, key)
	}
	return v, nil
}

// heartParamKeys lists the bc_values keys of the heart/pulmonary block in
// parameter-table order
var heartParamKeys = []string{
	"tsa", "tpwave", "Erv_s", "Elv_s", "iml", "imr",
	"Lra_v", "Rra_v", "Lrv_a", "Rrv_a", "Lla_v", "Rla_v", "Llv_a", "Rlv_ao",
	"Vrv_u", "Vlv_u", "Rpd", "Cp", "Cpa",
	"Kxp_ra", "Kxv_ra", "Kxp_la", "Kxv_la",
	"Emax_ra", "Emax_la", "Vaso_ra", "Vaso_la",
}

// Load parses a configuration document and materializes the model and the
// simulation parameters
func Load(data []byte) (mdl *model.Model, par solve.SimParams, err error) {

	var cfg Config
	if err = json.Unmarshal(data, &cfg); err != nil {
		err = chk.Err("cannot parse configuration:\n%v", err)
		return
	}

	// simulation parameters with defaults
	par = solve.SimParams{
		NumCycles:           cfg.SimulationParameters.NumberOfCardiacCycles,
		PtsPerCycle:         cfg.SimulationParameters.NumberOfTimePtsPerCardiacCycle,
		AbsTol:              1e-8,
		MaxIter:             30,
		SteadyInitial:       true,
		OutputVariableBased: cfg.SimulationParameters.OutputVariableBased,
		OutputInterval:      1,
		OutputMeanOnly:      cfg.SimulationParameters.OutputMeanOnly,
		OutputDerivative:    cfg.SimulationParameters.OutputDerivative,
		OutputLastCycleOnly: cfg.SimulationParameters.OutputLastCycleOnly,
	}
	if v := cfg.SimulationParameters.AbsoluteTolerance; v != nil {
		par.AbsTol = *v
	}
	if v := cfg.SimulationParameters.MaximumNonlinearIterations; v != nil {
		par.MaxIter = *v
	}
	if v := cfg.SimulationParameters.SteadyInitial; v != nil {
		par.SteadyInitial = *v
	}
	if v := cfg.SimulationParameters.OutputInterval; v != nil {
		par.OutputInterval = *v
	}

	mdl = model.NewModel()
	var connections []connection
	vesselNames := make(map[int]string)

	// vessels
	for _, vc := range cfg.Vessels {
		if vc.ZeroDElementType != "BloodVessel" {
			err = chk.Err("unknown vessel type %q of vessel %q", vc.ZeroDElementType, vc.VesselName)
			return
		}
		vesselNames[vc.VesselId] = vc.VesselName
		ids := []int{
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.RPoiseuille)),
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.C)),
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.L)),
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.StenosisCoefficient)),
		}
		model.NewBloodVessel(mdl, vc.VesselName, ids)
		if vc.BoundaryConditions != nil {
			if vc.BoundaryConditions.Inlet != "" {
				connections = append(connections, connection{vc.BoundaryConditions.Inlet, vc.VesselName})
			}
			if vc.BoundaryConditions.Outlet != "" {
				connections = append(connections, connection{vc.VesselName, vc.BoundaryConditions.Outlet})
			}
		}
	}

	// boundary conditions
	for i := range cfg.BoundaryConditions {
		bc := &cfg.BoundaryConditions[i]
		err = loadBC(mdl, bc)
		if err != nil {
			return
		}
	}

	// junctions
	for _, jc := range cfg.Junctions {
		err = loadJunction(mdl, &jc)
		if err != nil {
			return
		}
		for _, vid := range jc.InletVessels {
			connections = append(connections, connection{vesselNames[vid], jc.JunctionName})
		}
		for _, vid := range jc.OutletVessels {
			connections = append(connections, connection{jc.JunctionName, vesselNames[vid]})
		}
	}

	// an explicit cardiac cycle period wins over one derived from series
	if v := cfg.SimulationParameters.CardiacCyclePeriod; v != nil {
		mdl.CardiacCyclePeriod = *v
	}

	// nodes, in connection order
	for _, c := range connections {
		from := mdl.GetBlock(c.from)
		to := mdl.GetBlock(c.to)
		if from == nil || to == nil {
			err = chk.Err("connection %q => %q references an unknown block", c.from, c.to)
			return
		}
		mdl.Connect(from, to)
	}

	err = mdl.SetupDofs()
	if err != nil {
		return
	}
	err = mdl.CheckBalance()
	return
}

// LoadFile reads and parses a configuration file
func LoadFile(filename string) (mdl *model.Model, par solve.SimParams, err error) {
	b, err := utl.ReadFile(filename)
	if err != nil {
		err = chk.Err("cannot read configuration file %q:\n%v", filename, err)
		return
	}
	return Load(b)
}

// loadBC materializes one boundary-condition block
func loadBC(mdl *model.Model, bc *BCConfig) (err error) {

	// time stations shared by the series of this block
	t, hasT := bc.getSeries("t")
	if !hasT {
		t = Series{0}
	}

	// series parameter registration with cycle-period bookkeeping
	scalarOrSeries := func(key string, alt ...string) (int, error) {
		keys := append([]string{key}, alt...)
		vals, ok := bc.getSeries(keys...)
		if !ok {
			return 0, chk.Err("boundary condition %q is missing required value %q", bc.BCName, key)
		}
		if len(vals) == 1 {
			return mdl.AddParam(model.NewParam(vals[0])), nil
		}
		if len(t) != len(vals) {
			return 0, chk.Err("malformed time series %q of %q: %d time stations for %d values",
				key, bc.BCName, len(t), len(vals))
		}
		p := model.NewParamSeries(t, vals, true)
		first := true
		for _, q := range mdl.Params {
			if !q.Constant && q.Periodic {
				first = false
				break
			}
		}
		if first {
			mdl.CardiacCyclePeriod = p.CyclePeriod
		}
		return mdl.AddParam(p), nil
	}
	scalar := func(key string, alt ...string) (int, error) {
		v, e := bc.mustScalar(key, alt...)
		if e != nil {
			return 0, e
		}
		return mdl.AddParam(model.NewParam(v)), nil
	}

	switch bc.BCType {

	case "FLOW":
		var q int
		q, err = scalarOrSeries("Q")
		if err != nil {
			return
		}
		model.NewFlowReferenceBC(mdl, bc.BCName, []int{q})

	case "PRESSURE":
		var p int
		p, err = scalarOrSeries("P")
		if err != nil {
			return
		}
		model.NewPressureReferenceBC(mdl, bc.BCName, []int{p})

	case "RESISTANCE":
		var r, pd int
		if r, err = scalarOrSeries("R"); err != nil {
			return
		}
		if pd, err = scalarOrSeries("Pd"); err != nil {
			return
		}
		model.NewResistanceBC(mdl, bc.BCName, []int{r, pd})

	case "RCR":
		var rp, c, rd, pd int
		if rp, err = scalar("Rp"); err != nil {
			return
		}
		if c, err = scalar("C"); err != nil {
			return
		}
		if rd, err = scalar("Rd"); err != nil {
			return
		}
		if pd, err = scalarOrSeries("Pd"); err != nil {
			return
		}
		model.NewWindkesselBC(mdl, bc.BCName, []int{rp, c, rd, pd})

	case "ClosedLoopRCR":
		var rp, c, rd int
		if rp, err = scalar("Rp"); err != nil {
			return
		}
		if c, err = scalar("C"); err != nil {
			return
		}
		if rd, err = scalar("Rd"); err != nil {
			return
		}
		model.NewClosedLoopRCR(mdl, bc.BCName, []int{rp, c, rd}, bc.getBool("closed_loop_outlet"))

	case "CORONARY":
		var ra, ram, rv, ca, cim, pim, pv int
		if ra, err = scalar("Ra", "Ra1"); err != nil {
			return
		}
		if ram, err = scalar("Ram", "Ra2"); err != nil {
			return
		}
		if rv, err = scalar("Rv", "Rv1"); err != nil {
			return
		}
		if ca, err = scalar("Ca"); err != nil {
			return
		}
		if cim, err = scalar("Cim", "Cc"); err != nil {
			return
		}
		if pim, err = scalarOrSeries("Pim"); err != nil {
			return
		}
		if pv, err = scalarOrSeries("Pv", "P_v"); err != nil {
			return
		}
		model.NewOpenLoopCoronaryBC(mdl, bc.BCName, []int{ra, ram, rv, ca, cim, pim, pv})

	case "ClosedLoopCoronaryLeft", "ClosedLoopCoronaryRight":
		side := model.CoronaryLeft
		if bc.BCType == "ClosedLoopCoronaryRight" {
			side = model.CoronaryRight
		}
		ids := make([]int, 5)
		for i, key := range []string{"Ra", "Ram", "Rv", "Ca", "Cim"} {
			if ids[i], err = scalar(key); err != nil {
				return
			}
		}
		model.NewClosedLoopCoronaryBC(mdl, bc.BCName, ids, side)

	case "ClosedLoopHeartAndPulmonary":
		ids := make([]int, len(heartParamKeys))
		for i, key := range heartParamKeys {
			if ids[i], err = scalar(key); err != nil {
				return
			}
		}
		model.NewClosedLoopHeartPulmonary(mdl, bc.BCName, ids)

	default:
		return chk.Err("unknown boundary condition type %q of %q", bc.BCType, bc.BCName)
	}
	return
}

// loadJunction materializes one junction block
func loadJunction(mdl *model.Model, jc *JunctionConfig) (err error) {
	nports := len(jc.InletVessels) + len(jc.OutletVessels)
	switch jc.JunctionType {

	case "NORMAL_JUNCTION", "internal_junction":
		model.NewJunction(mdl, jc.JunctionName)

	case "resistive_junction":
		if jc.JunctionValues == nil || len(jc.JunctionValues.RPoiseuille) != nports {
			return chk.Err("resistive junction %q requires one resistance per port", jc.JunctionName)
		}
		ids := make([]int, nports)
		for i, r := range jc.JunctionValues.RPoiseuille {
			ids[i] = mdl.AddParam(model.NewParam(r))
		}
		model.NewResistiveJunction(mdl, jc.JunctionName, ids)

	case "BloodVesselJunction":
		nout := len(jc.OutletVessels)
		jv := jc.JunctionValues
		if jv == nil || len(jv.RPoiseuille) != nout || len(jv.L) != nout {
			return chk.Err("blood vessel junction %q requires R_poiseuille and L per outlet", jc.JunctionName)
		}
		if len(jv.StenosisCoefficient) != 0 && len(jv.StenosisCoefficient) != nout {
			return chk.Err("blood vessel junction %q has %d stenosis coefficients for %d outlets",
				jc.JunctionName, len(jv.StenosisCoefficient), nout)
		}
		var ids []int
		for _, r := range jv.RPoiseuille {
			ids = append(ids, mdl.AddParam(model.NewParam(r)))
		}
		for _, l := range jv.L {
			ids = append(ids, mdl.AddParam(model.NewParam(l)))
		}
		for _, s := range jv.StenosisCoefficient {
			ids = append(ids, mdl.AddParam(model.NewParam(s)))
		}
		model.NewBloodVesselJunction(mdl, jc.JunctionName, ids)

	default:
		return chk.Err("unknown junction type %q of %q", jc.JunctionType, jc.JunctionName)
	}
	return
}
