// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/json"

	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/chk"
)

// VariableResult groups the trajectory of one DOF
type VariableResult struct {
	Y    []float64 `json:"y"`
	Ydot []float64 `json:"ydot,omitempty"`
}

// JSONResult is the variable-grouped JSON output document
type JSONResult struct {
	Time      []float64                 `json:"time"`
	Variables map[string]VariableResult `json:"variables"`
}

// VariableJSON renders the recorded states grouped by variable name
func VariableJSON(times []float64, states []*algebra.State, mdl *model.Model, derivative bool) (string, error) {
	res := JSONResult{
		Time:      times,
		Variables: make(map[string]VariableResult),
	}
	for dof, name := range mdl.Dof.Variables {
		vr := VariableResult{Y: make([]float64, len(states))}
		if derivative {
			vr.Ydot = make([]float64, len(states))
		}
		for i, s := range states {
			vr.Y[i] = s.Y[dof]
			if derivative {
				vr.Ydot[i] = s.Dydt[dof]
			}
		}
		res.Variables[name] = vr
	}
	b, err := json.MarshalIndent(&res, "", "  ")
	if err != nil {
		return "", chk.Err("cannot encode results to JSON:\n%v", err)
	}
	return string(b), nil
}
