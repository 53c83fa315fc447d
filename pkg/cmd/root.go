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
	"runtime/debug"

	"github.com/mlogc/mlogc/pkg/checker"
	"github.com/mlogc/mlogc/pkg/locate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mlogc",
	Short: "A compiler from HLL to MLOG.",
	Long:  "A compiler (and small toolbox) for the HLL language, targeting MLOG.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			printVersion()
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

func printVersion() {
	fmt.Print("mlogc ")

	if Version != "" {
		// Built via "make"
		fmt.Printf("%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Printf("%s", info.Main.Version)
	} else {
		// Unknown, perhaps "go run"
		fmt.Printf("(unknown version)")
	}

	fmt.Println()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newChecker constructs a Checker wired against the -I include path
// requested on cmd, configuring logrus verbosity from --verbose first so
// construction itself is traced when asked for.
func newChecker(cmd *cobra.Command, subject string) *checker.Checker {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	includeDirs := GetStringArray(cmd, "include")
	locator := locate.New(includeDirs)

	log.Debugf("constructing checker for %q (include path %v)", subject, includeDirs)

	return checker.New(checker.Config{Subject: subject}, locator)
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringArrayP("include", "I", []string{}, "add a directory to the source search path")
}
