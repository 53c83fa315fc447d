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
package builder_test

import (
	"fmt"
	"testing"

	"github.com/mlogc/mlogc/pkg/builder"
	"github.com/mlogc/mlogc/pkg/checker"
	"github.com/mlogc/mlogc/pkg/util/assert"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// mapLocator resolves every source name against an in-memory map, for
// tests that never touch the filesystem.
type mapLocator map[string]string

func (m mapLocator) Locate(sourceName string) (source.File, error) {
	text, ok := m[sourceName]
	if !ok {
		return source.File{}, fmt.Errorf("no such source %q", sourceName)
	}

	return *source.NewSourceFile(sourceName, []byte(text)), nil
}

// compile runs the full pipeline over a single-source program named "t",
// failing the test on any diagnostic.
func compile(t *testing.T, text string) string {
	t.Helper()

	c := checker.New(checker.Config{Subject: "t"}, mapLocator{"t": text})

	target, errs := c.CheckTarget("t")
	if len(errs) > 0 {
		for _, e := range errs {
			t.Logf("diagnostic: %s", e.Error())
		}

		t.Fatalf("unexpected diagnostics checking %q", text)
	}

	return builder.Build(target).Text()
}

func TestBuilder_HelloWorld(t *testing.T) {
	out := compile(t, `link message1; entrypoint { mlog::print("Hello, Mindustry!"); mlog::printflush(message1); }`)

	expected := "print \"Hello, Mindustry!\"\nprintflush message1\nend\n"
	assert.Equal(t, expected, out)
}

func TestBuilder_ConstantFolding(t *testing.T) {
	out := compile(t, `link cell1; const answer = 40 + 2; const index = 0; entrypoint { mlog::write(answer, cell1, index); }`)

	expected := "write 42 cell1 0\nend\n"
	assert.Equal(t, expected, out)
}

func TestBuilder_IfElseInnerDeclaration(t *testing.T) {
	out := compile(t, `link cell1; entrypoint {
		var v;
		mlog::read(v, cell1, 0);
		if v < 1000 {
			v *= 56;
		} else {
			v *= 4;
		}
		mlog::write(v, cell1, 1);
	}`)

	lines := splitNonEmpty(out)
	// read, jump, op, jump, op, write, end
	assert.Equal(t, 7, len(lines))
	assert.Equal(t, "end", lines[len(lines)-1])

	nonEnd := lines[:len(lines)-1]
	assert.Equal(t, 6, len(nonEnd))
	assert.Equal(t, "read v cell1 0", nonEnd[0])
	assert.True(t, contains(nonEnd[1], "greaterThanEq"), "expected inverted comparison jump, got %q", nonEnd[1])
}

func TestBuilder_BitwiseNotOnNegativeOne(t *testing.T) {
	out := compile(t, `entrypoint { var x = ~(-1); }`)

	expected := "set x 0\nend\n"
	assert.Equal(t, expected, out)
}

func TestBuilder_LabeledBreakTargetsOuterLoopEnd(t *testing.T) {
	out := compile(t, `link cell1; entrypoint {
		var i = 0;
		outer: while i < 10 {
			var j = 0;
			while j < 10 {
				if j == 5 {
					break outer;
				}
				j += 1;
			}
			i += 1;
		}
		mlog::write(i, cell1, 0);
	}`)

	if len(out) == 0 {
		t.Fatal("expected non-empty program")
	}

	// Line 5 is `break outer`; the outer loop ends at line 10, the write.
	lines := splitNonEmpty(out)
	assert.Equal(t, 12, len(lines))
	assert.Equal(t, "jump 10 always 0 0", lines[5])
	assert.Equal(t, "write i cell1 0", lines[10])
}

func splitNonEmpty(s string) []string {
	var out []string

	line := ""
	for _, r := range s {
		if r == '\n' {
			if line != "" {
				out = append(out, line)
			}

			line = ""

			continue
		}

		line += string(r)
	}

	return out
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}

	return false
}
