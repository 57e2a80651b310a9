// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gohemo simulates pulsatile blood flow through networks of 0D (lumped
// parameter) hemodynamic elements and calibrates element parameters from
// observed trajectories.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cpmech/gohemo/calib"
	"github.com/cpmech/gohemo/inp"
	"github.com/cpmech/gohemo/solve"
	"github.com/cpmech/gosl/io"
)

func main() {

	var verbose bool
	var dense bool

	root := &cobra.Command{
		Use:           "gohemo",
		Short:         "0D pulsatile hemodynamics solver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run config.json output.csv",
		Short: "run a simulation and write results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mdl, par, err := inp.LoadFile(args[0])
			if err != nil {
				return err
			}
			par.UseDense = dense
			solver, err := solve.NewSolver(mdl, par)
			if err != nil {
				return err
			}
			solver.Verbose = verbose
			err = solver.Run()
			if err != nil {
				return err
			}
			solver.WriteResultToCSV(args[1])
			return nil
		},
	}
	runCmd.Flags().BoolVar(&dense, "dense", false, "use the dense linear algebra backend")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate config.json",
		Short: "recover block parameters from observed trajectories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mdl, obs, err := inp.LoadCalibrationFile(args[0])
			if err != nil {
				return err
			}
			α, err := calib.Calibrate(mdl, obs)
			if err != nil {
				return err
			}
			io.Pf("%s", calib.Report(mdl, α))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show progress messages")
	root.AddCommand(runCmd, calibrateCmd)

	if err := root.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}
