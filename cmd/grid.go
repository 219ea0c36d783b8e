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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gomsh/InputParameters"
)

const exampleGridFile = `
########################################
Title: "Test Grid"
Kind: euclidean-grid # or ellipsoid-grid
Radii: [6371., 6371., 6371.] # ellipsoid-grid only
XAxis: {Min: 0., Max: 1., N: 11}
YAxis: {Min: 0., Max: 2., N: 21}
Values: [1.] # constant VALUE columns at every node
########################################
`

// GridCmd represents the grid command
var GridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Write a structured euclidean or ellipsoid grid described by a YAML file",
	Long:  `Write a structured euclidean or ellipsoid grid described by a YAML file`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			inputFile, outputFile string
			data                  []byte
		)
		if inputFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			return
		}
		if outputFile, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		if len(inputFile) == 0 {
			fmt.Printf("Example File:%s\n", exampleGridFile)
			return fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile)")
		}
		if data, err = os.ReadFile(inputFile); err != nil {
			return
		}
		gp := &InputParameters.GridParameters{}
		if err = gp.Parse(data); err != nil {
			return fmt.Errorf("%s: %w", inputFile, err)
		}
		if len(outputFile) == 0 {
			outputFile = strings.TrimSuffix(inputFile, ".yaml")
		}
		return RunGrid(gp, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(GridCmd)
	GridCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file with the grid Kind, Radii and XAxis/YAxis/ZAxis")
	GridCmd.Flags().StringP("output", "o", "", "output file, .msh is appended when missing")
}

func RunGrid(gp *InputParameters.GridParameters, outputFile string) error {
	if viper.GetBool("verbose") {
		gp.Print()
	}
	m, err := gp.Build()
	if err != nil {
		return err
	}
	_, err = saveMesh(outputFile, m)
	return err
}
