// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gohemo/calib"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// CalibrationConfig mirrors a calibration input document: the network
// (vessels and junctions only) plus the observed trajectories keyed by
// variable name
type CalibrationConfig struct {
	Vessels   []VesselConfig       `json:"vessels"`
	Junctions []JunctionConfig     `json:"junctions"`
	Y         map[string][]float64 `json:"y"`
	Dy        map[string][]float64 `json:"dy"`
}

// LoadCalibration parses a calibration document and materializes the model
// and the observations in DOF order
func LoadCalibration(data []byte) (mdl *model.Model, obs *calib.Observations, err error) {

	var cfg CalibrationConfig
	if err = json.Unmarshal(data, &cfg); err != nil {
		err = chk.Err("cannot parse calibration configuration:\n%v", err)
		return
	}

	mdl = model.NewModel()
	var connections []connection
	vesselNames := make(map[int]string)

	// vessels: four calibration parameters each (R, C, L, stenosis)
	for _, vc := range cfg.Vessels {
		vesselNames[vc.VesselId] = vc.VesselName
		ids := []int{
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.RPoiseuille)),
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.C)),
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.L)),
			mdl.AddParam(model.NewParam(vc.ZeroDElementValues.StenosisCoefficient)),
		}
		model.NewBloodVessel(mdl, vc.VesselName, ids)
	}

	// junctions: plain junctions carry no parameters; blood vessel
	// junctions carry three per outlet
	for _, jc := range cfg.Junctions {
		switch jc.JunctionType {
		case "NORMAL_JUNCTION", "internal_junction":
			model.NewJunction(mdl, jc.JunctionName)
		case "BloodVesselJunction":
			nout := len(jc.OutletVessels)
			ids := make([]int, 3*nout)
			for i := range ids {
				ids[i] = mdl.AddParam(model.NewParam(0))
			}
			model.NewBloodVesselJunction(mdl, jc.JunctionName, ids)
		default:
			err = chk.Err("unknown junction type %q of %q", jc.JunctionType, jc.JunctionName)
			return
		}
		for _, vid := range jc.InletVessels {
			connections = append(connections, connection{vesselNames[vid], jc.JunctionName})
		}
		for _, vid := range jc.OutletVessels {
			connections = append(connections, connection{jc.JunctionName, vesselNames[vid]})
		}
	}

	// nodes and synthetic boundary nodes
	for _, c := range connections {
		from := mdl.GetBlock(c.from)
		to := mdl.GetBlock(c.to)
		if from == nil || to == nil {
			err = chk.Err("connection %q => %q references an unknown block", c.from, c.to)
			return
		}
		mdl.Connect(from, to)
	}
	for _, b := range mdl.Blocks {
		if len(model.InletsOf(b)) == 0 {
			mdl.AddBoundaryNode(b, true)
		}
		if len(model.OutletsOf(b)) == 0 {
			mdl.AddBoundaryNode(b, false)
		}
	}
	err = mdl.SetupDofs()
	if err != nil {
		return
	}

	// observations in DOF order
	n := mdl.Dof.Size()
	obs = &calib.Observations{
		Y:  make([][]float64, n),
		Dy: make([][]float64, n),
	}
	for k, name := range mdl.Dof.Variables {
		y, ok := cfg.Y[name]
		if !ok {
			err = chk.Err("calibration input is missing y observations for variable %q", name)
			return
		}
		dy, ok := cfg.Dy[name]
		if !ok {
			err = chk.Err("calibration input is missing dy observations for variable %q", name)
			return
		}
		obs.Y[k] = y
		obs.Dy[k] = dy
	}
	return
}

// LoadCalibrationFile reads and parses a calibration file
func LoadCalibrationFile(filename string) (mdl *model.Model, obs *calib.Observations, err error) {
	b, err := utl.ReadFile(filename)
	if err != nil {
		err = chk.Err("cannot read calibration file %q:\n%v", filename, err)
		return
	}
	return LoadCalibration(b)
}
