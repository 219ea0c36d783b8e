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

	"github.com/spf13/viper"

	"github.com/notargets/gomsh/msh"
)

// saveMesh writes m through msh.Save using the global banner and verbose settings
func saveMesh(name string, m *msh.Mesh) (path string, err error) {
	var opts []msh.EncoderOption
	if comment := viper.GetString("comment"); comment != "" {
		opts = append(opts, msh.WithComment(comment))
	}
	if path, err = msh.Save(name, m, opts...); err != nil {
		return
	}
	fmt.Printf("wrote %s: %s\n", path, m.Kind)
	if viper.GetBool("verbose") {
		m.PrintStatistics()
	}
	return
}
