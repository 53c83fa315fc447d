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

	"github.com/mlogc/mlogc/pkg/builder"
	"github.com/mlogc/mlogc/pkg/checker"
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/sem"
	"github.com/mlogc/mlogc/pkg/util/termio"
	"github.com/spf13/cobra"
)

// debugCmd groups the inspector subcommands exposing internal compiler
// structures on the command line: giving a human something to look at
// besides the final artifact.
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Inspect intermediate compiler state.",
}

var debugListingCmd = &cobra.Command{
	Use:   "listing [flags] source_name",
	Short: "Print the lowered MLOG instruction stream.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		target := mustCheck(cmd, args[0])
		program := builder.Build(target)

		printListing(program)
	},
}

var debugStatsCmd = &cobra.Command{
	Use:   "stats [flags] source_name",
	Short: "Print summary statistics about a compiled target.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		target := mustCheck(cmd, args[0])
		program := builder.Build(target)

		printStats(target, program)
	},
}

func mustCheck(cmd *cobra.Command, sourceName string) *checker.Target {
	c := newChecker(cmd, sourceName)

	target, errs := c.CheckTarget(sourceName)
	if len(errs) > 0 {
		reportSyntaxErrors(errs)
		os.Exit(1)
	}

	return target
}

// printListing lays the program out in one or two columns depending on the
// detected terminal width, addressed by line number — the in-memory
// replacement for spec.md's persisted debug-artifact dumper (see
// DESIGN.md: no per-statement source map is threaded through pkg/sem, so
// this annotates by address rather than by originating HLL span).
func printListing(program mlog.Program) {
	width := termio.Width(int(os.Stdout.Fd()))

	if width >= 100 {
		printListingWide(program)
		return
	}

	for i, instr := range program {
		fmt.Printf("%4d  %s\n", i, instr.String())
	}
}

func printListingWide(program mlog.Program) {
	half := (len(program) + 1) / 2

	for i := 0; i < half; i++ {
		left := fmt.Sprintf("%4d  %s", i, program[i].String())

		if j := i + half; j < len(program) {
			fmt.Printf("%-48s %4d  %s\n", left, j, program[j].String())
		} else {
			fmt.Println(left)
		}
	}
}

func printStats(target *checker.Target, program mlog.Program) {
	t := termio.NewTable(2)
	t.AddRow("instructions", fmt.Sprintf("%d", len(program)))
	t.AddRow("registers", fmt.Sprintf("%d", countRegisters(program)))
	t.AddRow("procedures", fmt.Sprintf("%d", len(target.Procedures)))
	t.AddRow("globals", fmt.Sprintf("%d", len(target.Globals)))
	t.AddRow("folded constants", fmt.Sprintf("%d", countKnowns(target.Body)))

	fmt.Print(t.String())
}

func countRegisters(program mlog.Program) int {
	seen := make(map[string]bool)

	for _, instr := range program {
		for _, op := range instr.Operands {
			if op.Kind == mlog.KindRegister {
				seen[op.Register] = true
			}
		}
	}

	return len(seen)
}

// countKnowns counts every constant-folded literal reachable from body, a
// proxy for how much constant folding a target benefited from: folding
// discards the original expression tree, so the reduction's original depth
// cannot be recovered after the fact, only that a reduction happened.
func countKnowns(stmt sem.Stmt) int {
	n := 0
	walkStmt(stmt, func(e sem.Expr) {
		if _, ok := e.(*sem.Known); ok {
			n++
		}
	})

	return n
}

// walkStmt visits every expression reachable from stmt, recursing into
// nested blocks/branches/loops, calling visit on each (visit is
// responsible for recursing into an expression's own sub-expressions via
// walkExpr).
func walkStmt(stmt sem.Stmt, visit func(sem.Expr)) {
	switch n := stmt.(type) {
	case *sem.Block:
		for _, s := range n.Stmts {
			walkStmt(s, visit)
		}
	case *sem.If:
		walkExpr(n.Cond, visit)
		walkStmt(n.Then, visit)

		if n.Else != nil {
			walkStmt(n.Else, visit)
		}
	case *sem.While:
		walkExpr(n.Cond, visit)
		walkStmt(n.Body, visit)

		if n.Interleaved != nil {
			walkStmt(n.Interleaved, visit)
		}

		if n.ZeroBranch != nil {
			walkStmt(n.ZeroBranch, visit)
		}
	case *sem.Return:
		if n.Value != nil {
			walkExpr(n.Value, visit)
		}
	case *sem.LocalVarStmt:
		if n.Initial != nil {
			walkExpr(n.Initial, visit)
		}
	case *sem.Discard:
		walkExpr(n.Expr, visit)
	case *sem.Assign:
		walkExpr(n.Value, visit)
	}
}

// walkExpr visits e and every sub-expression it contains.
func walkExpr(e sem.Expr, visit func(sem.Expr)) {
	visit(e)

	switch n := e.(type) {
	case *sem.BinaryOp:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *sem.ShortCircuit:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *sem.UnaryOp:
		walkExpr(n.Operand, visit)
	case *sem.Call:
		for _, a := range n.Args {
			walkExpr(a, visit)
		}
	case *sem.MemberRead:
		walkExpr(n.Object, visit)
	}
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugListingCmd)
	debugCmd.AddCommand(debugStatsCmd)
}
