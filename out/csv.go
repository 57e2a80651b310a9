// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out renders recorded simulation results as CSV, JSON and plots
package out

import (
	"github.com/cpmech/gohemo/algebra"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gosl/io"
)

// vesselDofs returns the four external DOF indices of a vessel block
func vesselDofs(b model.Block) (inflow, outflow, inpres, outpres int) {
	in := model.InletsOf(b)[0]
	ot := model.OutletsOf(b)[0]
	return in.FlowDof, ot.FlowDof, in.PresDof, ot.PresDof
}

// mean returns the average of one DOF over all recorded states
func mean(states []*algebra.State, dof int, deriv bool) (m float64) {
	for _, s := range states {
		if deriv {
			m += s.Dydt[dof]
		} else {
			m += s.Y[dof]
		}
	}
	return m / float64(len(states))
}

// VesselCSV renders one row per vessel and time step with the flows and
// pressures at both ends. With meanOnly=true a single row per vessel holds the
// averages over the recorded states; with derivative=true the time
// derivatives are appended as extra columns.
func VesselCSV(times []float64, states []*algebra.State, mdl *model.Model, meanOnly, derivative bool) string {
	var buf string
	if derivative {
		buf = "name,time,flow_in,flow_out,pressure_in,pressure_out,d_flow_in,d_flow_out,d_pressure_in,d_pressure_out\n"
	} else {
		buf = "name,time,flow_in,flow_out,pressure_in,pressure_out\n"
	}
	for _, b := range mdl.Blocks {
		vessel, ok := b.(*model.BloodVessel)
		if !ok {
			continue
		}
		qi, qo, pi, po := vesselDofs(vessel)
		if meanOnly {
			buf += io.Sf("%s,,%.16e,%.16e,%.16e,%.16e", vessel.Name(),
				mean(states, qi, false), mean(states, qo, false),
				mean(states, pi, false), mean(states, po, false))
			if derivative {
				buf += io.Sf(",%.16e,%.16e,%.16e,%.16e",
					mean(states, qi, true), mean(states, qo, true),
					mean(states, pi, true), mean(states, po, true))
			}
			buf += "\n"
			continue
		}
		for i, t := range times {
			s := states[i]
			buf += io.Sf("%s,%.16e,%.16e,%.16e,%.16e,%.16e", vessel.Name(), t,
				s.Y[qi], s.Y[qo], s.Y[pi], s.Y[po])
			if derivative {
				buf += io.Sf(",%.16e,%.16e,%.16e,%.16e",
					s.Dydt[qi], s.Dydt[qo], s.Dydt[pi], s.Dydt[po])
			}
			buf += "\n"
		}
	}
	return buf
}

// VariableCSV renders one row per DOF and time step
func VariableCSV(times []float64, states []*algebra.State, mdl *model.Model, meanOnly, derivative bool) string {
	var buf string
	if derivative {
		buf = "name,time,y,ydot\n"
	} else {
		buf = "name,time,y\n"
	}
	for dof, name := range mdl.Dof.Variables {
		if meanOnly {
			buf += io.Sf("%s,,%.16e", name, mean(states, dof, false))
			if derivative {
				buf += io.Sf(",%.16e", mean(states, dof, true))
			}
			buf += "\n"
			continue
		}
		for i, t := range times {
			buf += io.Sf("%s,%.16e,%.16e", name, t, states[i].Y[dof])
			if derivative {
				buf += io.Sf(",%.16e", states[i].Dydt[dof])
			}
			buf += "\n"
		}
	}
	return buf
}
