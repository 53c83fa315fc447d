package checker_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mlogc/mlogc/pkg/checker"
	"github.com/mlogc/mlogc/pkg/util/assert"
	"github.com/mlogc/mlogc/pkg/util/source"
)

type mapLocator map[string]string

func (m mapLocator) Locate(sourceName string) (source.File, error) {
	text, ok := m[sourceName]
	if !ok {
		return source.File{}, fmt.Errorf("no such source %q", sourceName)
	}

	return *source.NewSourceFile(sourceName, []byte(text)), nil
}

func TestCheckTarget_ConstantFoldsAcrossGlobals(t *testing.T) {
	c := checker.New(checker.Config{Subject: "t"}, mapLocator{
		"t": `const a = 40; const b = a + 2; entrypoint { var x = b; }`,
	})

	target, errs := c.CheckTarget("t")
	assert.Equal(t, 0, len(errs))

	if target == nil {
		t.Fatal("expected a target")
	}
}

func TestCheckTarget_CyclicConstantFails(t *testing.T) {
	c := checker.New(checker.Config{Subject: "t"}, mapLocator{
		"t": `const a = b + 1; const b = a + 1; entrypoint { var x = a; }`,
	})

	_, errs := c.CheckTarget("t")
	assert.True(t, len(errs) > 0, "expected a cyclic-definition diagnostic")
	assert.True(t, strings.Contains(errs[0].Error(), "CyclicDefinition"), "expected CyclicDefinition, got %q", errs[0].Error())
}

func TestCheckTarget_MissingEntrypointFails(t *testing.T) {
	c := checker.New(checker.Config{Subject: "t"}, mapLocator{
		"t": `const a = 1;`,
	})

	_, errs := c.CheckTarget("t")
	assert.True(t, len(errs) > 0, "expected a missing-entrypoint diagnostic")
}

func TestCheckTarget_CrossSourcePublicVisibility(t *testing.T) {
	c := checker.New(checker.Config{Subject: "main"}, mapLocator{
		"main": `using lib::helper as helper; entrypoint { var x = helper; }`,
		"lib":  `public const helper = 9;`,
	})

	_, errs := c.CheckTarget("main")
	assert.Equal(t, 0, len(errs))
}

func TestCheckTarget_CrossSourcePrivateVisibilityFails(t *testing.T) {
	c := checker.New(checker.Config{Subject: "main"}, mapLocator{
		"main": `using lib::helper as helper; entrypoint { var x = helper; }`,
		"lib":  `const helper = 9;`,
	})

	_, errs := c.CheckTarget("main")
	assert.True(t, len(errs) > 0, "expected a NotVisible diagnostic")
}

func TestCheckTarget_UnknownSymbolFails(t *testing.T) {
	c := checker.New(checker.Config{Subject: "t"}, mapLocator{
		"t": `entrypoint { var x = doesNotExist; }`,
	})

	_, errs := c.CheckTarget("t")
	assert.True(t, len(errs) > 0, "expected an UnknownSymbol diagnostic")
}
