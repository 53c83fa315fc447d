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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd parses, resolves and checks a target without lowering or writing
// any output — a fast "does this compile" signal, complementing compileCmd
// by running only the front half of the pipeline.
var checkCmd = &cobra.Command{
	Use:   "check [flags] source_name(s)",
	Short: "Check one or more HLL sources without emitting MLOG.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		ok := true

		for _, name := range args {
			if !checkOne(cmd, name) {
				ok = false
			}
		}

		if !ok {
			os.Exit(1)
		}
	},
}

func checkOne(cmd *cobra.Command, sourceName string) bool {
	c := newChecker(cmd, sourceName)

	target, errs := c.CheckTarget(sourceName)
	if len(errs) > 0 {
		reportSyntaxErrors(errs)
		return false
	}

	log.Debugf("%q checked clean (%d procedures, %d globals)", sourceName, len(target.Procedures), len(target.Globals))
	fmt.Printf("%s: ok\n", sourceName)

	return true
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
