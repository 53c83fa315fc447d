package resolver_test

import (
	"testing"

	"github.com/mlogc/mlogc/pkg/hll/parser"
	"github.com/mlogc/mlogc/pkg/hll/resolver"
	"github.com/mlogc/mlogc/pkg/util/assert"
	"github.com/mlogc/mlogc/pkg/util/source"
)

func resolve(t *testing.T, text string) (*resolver.Resolved, []source.SyntaxError) {
	t.Helper()

	srcfile := *source.NewSourceFile("t", []byte(text))

	decls, errs := parser.Parse(srcfile)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	return resolver.Resolve(srcfile, decls)
}

func TestResolve_EntrypointAndDefinitions(t *testing.T) {
	r, errs := resolve(t, `link cell1; const answer = 42; entrypoint { mlog::write(answer, cell1, 0); }`)
	assert.Equal(t, 0, len(errs))

	if r.Entrypoint == nil {
		t.Fatal("expected an entrypoint")
	}

	if _, ok := r.Definitions["cell1"]; !ok {
		t.Fatal("expected cell1 to be defined")
	}

	if _, ok := r.Definitions["answer"]; !ok {
		t.Fatal("expected answer to be defined")
	}
}

func TestResolve_DuplicateDefinitionFails(t *testing.T) {
	_, errs := resolve(t, `const x = 1; const x = 2; entrypoint {}`)
	assert.True(t, len(errs) > 0, "expected a redeclaration error")
}

func TestResolve_DuplicateEntrypointFails(t *testing.T) {
	_, errs := resolve(t, `entrypoint {} entrypoint {}`)
	assert.True(t, len(errs) > 0, "expected a duplicate-entrypoint error")
}

func TestResolve_SourceWithNoEntrypoint(t *testing.T) {
	r, errs := resolve(t, `public const shared = 7;`)
	assert.Equal(t, 0, len(errs))

	if r.Entrypoint != nil {
		t.Fatal("expected no entrypoint")
	}

	def, ok := r.Definitions["shared"]
	if !ok {
		t.Fatal("expected shared to be defined")
	}

	assert.True(t, def.IsPublic(), "expected shared to be public")
}
