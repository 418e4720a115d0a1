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
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/notargets/goadvect/InputParameters"
	"github.com/notargets/goadvect/geometry2D"
	"github.com/notargets/goadvect/model_problems/Advection2D"
	"github.com/notargets/goadvect/readfiles"
	"github.com/notargets/goadvect/types"
	"github.com/notargets/goadvect/utils"

	"github.com/spf13/cobra"
)

type ModelAdvect struct {
	GridFile  string
	ICFile    string
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Profile   bool
}

// AdvectCmd represents the advect command
var AdvectCmd = &cobra.Command{
	Use:   "advect",
	Short: "Two dimensional advection solver, able to read grid files and output solutions",
	Long:  `Two dimensional advection solver, able to read grid files and output solutions`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("advect called")
		ma := &ModelAdvect{}
		if ma.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		if ma.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		ma.Graph, _ = cmd.Flags().GetBool("graph")
		ps, _ := cmd.Flags().GetInt("plotSteps")
		ma.PlotSteps = ps
		dr, _ := cmd.Flags().GetInt("delay")
		ma.Delay = time.Duration(dr) * time.Millisecond
		ma.Profile, _ = cmd.Flags().GetBool("profile")
		ap := processInput(ma)
		RunAdvect(ma, ap)
	},
}

func processInput(ma *ModelAdvect) (ap *InputParameters.AdvectionParameters) {
	var (
		err error
	)
	if len(ma.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Rotating Bump"
PolynomialOrder: 1
FinalTime: 6.2831853
VelocityType: rotation # Can be "zero", "uniform"
InitType: bump # Can be "gaussian", "uniform"
MeshRings: 8 # Used when no grid file is given
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(ma.ICFile); err != nil {
		panic(err)
	}
	ap = &InputParameters.AdvectionParameters{}
	if err = ap.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(AdvectCmd)
	AdvectCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format, a disk mesh is generated when omitted")
	AdvectCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- PolynomialOrder\n\t- FinalTime")
	AdvectCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	AdvectCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	AdvectCmd.Flags().IntP("plotSteps", "s", 1, "number of steps before plotting each frame")
	AdvectCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}

func RunAdvect(ma *ModelAdvect, ap *InputParameters.AdvectionParameters) {
	var (
		VX, VY  utils.Vector
		EToV    utils.Matrix
		BCEdges map[types.BCTAG][]types.EdgeInt
		err     error
	)
	ap.Print()
	// A BC section can override the top level inflow value
	for _, params := range ap.BCs {
		if v, ok := params["inflowValue"]; ok {
			ap.InflowValue = v
		}
	}
	if len(ma.GridFile) != 0 {
		_, VX, VY, EToV, BCEdges = readfiles.ReadSU2(ma.GridFile, true)
	} else {
		VX, VY, EToV, BCEdges = geometry2D.NewUnitDiskMesh(ap.MeshRings)
	}
	c, err := Advection2D.NewAdvection2D(
		ap.PolynomialOrder, ap.FinalTime, ap.SafetyFactor,
		Advection2D.NewVelocityType(ap.VelocityType),
		Advection2D.NewInitType(ap.InitType),
		ap.InflowValue, VX, VY, EToV, BCEdges)
	if err != nil {
		panic(err)
	}
	c.PlotSteps = ma.PlotSteps
	if ma.Profile {
		defer profile.Start().Stop()
	}
	c.Run(ma.Graph, ma.Delay)
}
