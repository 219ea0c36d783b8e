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

	"github.com/spf13/cobra"

	"github.com/notargets/gomsh/msh"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Decode an MSH file, certify it and print its entity counts",
	Long:  `Decode an MSH file, certify it and print its entity counts`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var name string
		if name, err = cmd.Flags().GetString("meshFile"); err != nil {
			return
		}
		if len(name) == 0 && len(args) == 1 {
			name = args[0]
		}
		if len(name) == 0 {
			return fmt.Errorf("must supply an MSH file (-F, --meshFile)")
		}
		return RunInfo(name)
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().StringP("meshFile", "F", "", "MSH file to read")
}

func RunInfo(name string) error {
	m, err := msh.Load(name)
	if err != nil {
		return err
	}
	if err = msh.Certify(m); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	m.PrintStatistics()
	return nil
}
