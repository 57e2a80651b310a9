// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// HemoPlot runs a simulation and plots the flows and pressures of one vessel
package main

import (
	"github.com/cpmech/gohemo/inp"
	"github.com/cpmech/gohemo/model"
	"github.com/cpmech/gohemo/out"
	"github.com/cpmech/gohemo/solve"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	fnConfig, fnkey := io.ArgToFilename(0, "config", ".json", true)
	vesselName := io.ArgToString(1, "")
	dirout := io.ArgToString(2, "/tmp/gohemo")
	io.Pf("\n%v\n", io.ArgsTable(
		"configuration file", "fnConfig", fnConfig,
		"vessel to plot", "vesselName", vesselName,
		"output directory", "dirout", dirout,
	))

	// load and run
	mdl, par, err := inp.LoadFile(fnConfig)
	if err != nil {
		chk.Panic("cannot load configuration:\n%v", err)
	}
	solver, err := solve.NewSolver(mdl, par)
	if err != nil {
		chk.Panic("cannot create solver:\n%v", err)
	}
	solver.Verbose = true
	err = solver.Run()
	if err != nil {
		chk.Panic("simulation failed:\n%v", err)
	}

	// pick the first vessel if none was given
	if vesselName == "" {
		for _, b := range mdl.Blocks {
			if _, ok := b.(*model.BloodVessel); ok {
				vesselName = b.Name()
				break
			}
		}
	}
	if vesselName == "" {
		chk.Panic("model has no vessel to plot")
	}

	// plot
	err = out.PlotVessel(solver.Times, solver.States, mdl, vesselName, dirout, fnkey+"_"+vesselName)
	if err != nil {
		chk.Panic("cannot plot results:\n%v", err)
	}
	io.PfGreen("file <%s/%s_%s.eps> written\n", dirout, fnkey, vesselName)
}
