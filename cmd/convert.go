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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/gomsh/msh"
	"github.com/notargets/gomsh/readers"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Gmsh 2.2 (.msh), SU2 (.su2) or Gambit neutral (.neu) mesh to MSH",
	Long: `Convert a Gmsh 2.2 (.msh), SU2 (.su2) or Gambit neutral (.neu) mesh to MSH.
Element physical groups, SU2 markers and Gambit element groups become ID-tags.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			inputFile, outputFile, kindName string
			dims                            int
		)
		if inputFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			return
		}
		if outputFile, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		if dims, err = cmd.Flags().GetInt("dims"); err != nil {
			return
		}
		if kindName, err = cmd.Flags().GetString("kind"); err != nil {
			return
		}
		if len(inputFile) == 0 {
			return fmt.Errorf("must supply a mesh file (-F, --meshFile)")
		}
		return RunConvert(inputFile, outputFile, kindName, dims)
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	ConvertCmd.Flags().StringP("meshFile", "F", "", "mesh file to read in Gmsh, SU2 or Gambit format")
	ConvertCmd.Flags().StringP("output", "o", "", "output file, defaults to the mesh file name with .msh")
	ConvertCmd.Flags().IntP("dims", "d", 0, "POINT coordinate width, 2 or 3 (default: 2 for planar meshes)")
	ConvertCmd.Flags().StringP("kind", "k", msh.EuclideanMesh.String(), "euclidean-mesh or ellipsoid-mesh")
}

func RunConvert(inputFile, outputFile, kindName string, dims int) error {
	kind, err := msh.ParseKind(kindName)
	if err != nil {
		return err
	}
	if kind.IsGrid() {
		return fmt.Errorf("cannot convert an unstructured mesh to %s", kind)
	}
	if len(outputFile) == 0 {
		outputFile = strings.TrimSuffix(inputFile, filepath.Ext(inputFile))
	}
	if msh.NormalizeName(outputFile) == filepath.Clean(inputFile) {
		return fmt.Errorf("output would overwrite %s, pass --output", inputFile)
	}
	m, err := readers.ReadMeshFile(inputFile, readers.WithDims(dims), readers.WithKind(kind))
	if err != nil {
		return err
	}
	_, err = saveMesh(outputFile, m)
	return err
}
