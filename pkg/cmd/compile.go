// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mlogc/mlogc/pkg/builder"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_name(s)",
	Short: "Compile one or more HLL sources to MLOG.",
	Long: `Compile one or more HLL sources (named without their .hlml
	extension) to MLOG, writing one <source_name>.mlog file per source in
	the current directory unless -o names an explicit output file (only
	valid for a single source).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		output := GetString(cmd, "output")
		if output != "" && len(args) != 1 {
			fmt.Println("cannot use -o with more than one source")
			os.Exit(1)
		}

		ok := true

		for _, name := range args {
			if !compileOne(cmd, name, output) {
				ok = false
			}
		}

		if !ok {
			os.Exit(1)
		}
	},
}

// compileOne checks and lowers one target, reporting success or failure.
func compileOne(cmd *cobra.Command, sourceName, output string) bool {
	start := time.Now()
	c := newChecker(cmd, sourceName)

	target, errs := c.CheckTarget(sourceName)
	if len(errs) > 0 {
		reportSyntaxErrors(errs)
		return false
	}

	program := builder.Build(target)

	dest := output
	if dest == "" {
		dest = strings.TrimSuffix(sourceName, filepath.Ext(sourceName)) + ".mlog"
	}

	if err := os.WriteFile(dest, []byte(program.Text()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", sourceName, err)
		return false
	}

	log.Infof("compiled %q -> %q (%d instructions, %s)", sourceName, dest, len(program), time.Since(start))
	fmt.Printf("%s -> %s\n", sourceName, dest)

	return true
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "write output to this file (only with a single source)")
}
