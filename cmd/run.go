/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/oceanmodels/goocean/config"
	"github.com/oceanmodels/goocean/sim"
	"github.com/oceanmodels/goocean/tendencies"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a YAML parameter file",
	Long:  `Run a simulation from a YAML parameter file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		paramFile, err := cmd.Flags().GetString("paramFile")
		if err != nil {
			panic(err)
		}
		cpuProfile, _ := cmd.Flags().GetBool("cpuprofile")
		logEvery, _ := cmd.Flags().GetInt("logSteps")
		sp := processInput(paramFile)
		if cpuProfile {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		RunSimulation(sp, logEvery)
	},
}

func processInput(paramFile string) (sp *config.SimulationParameters) {
	var (
		err error
	)
	if len(paramFile) == 0 {
		err := fmt.Errorf("must supply a parameters file (-I, --paramFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Wind-driven channel"
Nx: 32
Ny: 32
Nz: 16
Lx: 1000.
Ly: 1000.
Lz: 100.
TopologyX: Periodic
TopologyY: Periodic
TopologyZ: Bounded
Dt: 10.
FinalTime: 3600.
Tracers: [b]
Buoyancy: Tracer
CoriolisF: 1.e-4
Closures:
  - Type: Smagorinsky
BCs:
  u:
    Top: {Kind: Flux, Value: -1.e-5}
  b:
    Top: {Kind: Gradient, Value: 1.e-6}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(paramFile); err != nil {
		panic(err)
	}
	sp = &config.SimulationParameters{}
	if err = sp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("paramFile", "I", "", "YAML file of simulation parameters")
	runCmd.Flags().Bool("cpuprofile", false, "write a CPU profile for the run")
	runCmd.Flags().IntP("logSteps", "l", 1, "number of steps between diagnostic log lines, 0 disables")
}

func RunSimulation(sp *config.SimulationParameters, logEvery int) {
	sp.Print()
	fatal := func(err error) {
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	}
	fatal(sp.Validate())
	g, err := sp.BuildGrid()
	fatal(err)
	closure, err := sp.BuildClosure()
	fatal(err)
	buoyancy, err := sp.BuildBuoyancy()
	fatal(err)
	bcs, err := sp.BuildBCs()
	fatal(err)

	state := tendencies.NewState(g, sp.Tracers)
	engine, err := tendencies.NewEngine(tendencies.Config{
		Grid:           g,
		State:          state,
		Closure:        closure,
		Coriolis:       sp.BuildCoriolis(),
		Buoyancy:       buoyancy,
		BCs:            bcs,
		ParallelDegree: sp.ParallelDegree,
	})
	fatal(err)

	s, err := sim.New(engine, sp.Dt)
	fatal(err)
	s.LogEvery = logEvery
	s.Run(sp.FinalTime)
}
