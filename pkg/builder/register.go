package builder

import (
	"fmt"
	"strings"

	"github.com/mlogc/mlogc/pkg/name"
)

// tempPool is the builder's next-free register cursor (§4.5 "Register
// model"): claiming a temp bumps the cursor, and releasing restores it to
// an earlier mark so a sibling sub-expression can reuse the same slot once
// its predecessor's value has been consumed.
type tempPool struct {
	next int
}

// mark returns the current cursor position, to be passed to release once
// every register claimed since is no longer needed.
func (p *tempPool) mark() int { return p.next }

func (p *tempPool) release(mark int) { p.next = mark }

func (p *tempPool) claim() string {
	r := fmt.Sprintf("__t%d", p.next)
	p.next++

	return r
}

// env is a parent-linked map from a source identifier to the register
// holding it, mirroring pkg/checker's Scope one-for-one: the builder walks
// the same statement shape the checker did, so a child env created at the
// same points the checker created a child Scope resolves shadowing
// identically.
type env struct {
	parent *env
	vars   map[string]string
}

func newEnv(parent *env) *env { return &env{parent: parent} }

func (e *env) child() *env { return newEnv(e) }

func (e *env) bind(identifier, register string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}

	e.vars[identifier] = register
}

func (e *env) lookup(identifier string) (string, bool) {
	for s := e; s != nil; s = s.parent {
		if r, ok := s.vars[identifier]; ok {
			return r, true
		}
	}

	return "", false
}

// localCounter hands out a register name for every local declaration (a
// parameter or a LocalVarStmt). A variable's own identifier is used
// verbatim the first time it is declared anywhere in the program — MLOG
// registers are plain names, not slots, and the common case (one variable,
// one name) should read exactly as written. Only once that name is already
// taken (shadowing, or a same-named local in another procedure) does a
// numbered variant get minted, since the target has no lexical scoping of
// its own to keep two live locals of the same spelling apart.
type localCounter struct {
	used map[string]bool
}

// reserve marks name as taken without allocating it for a declaration,
// used to keep module-level globals (assigned their register names up
// front) from ever being shadowed by a later local of the same spelling.
func (c *localCounter) reserve(name string) {
	if c.used == nil {
		c.used = make(map[string]bool)
	}

	c.used[name] = true
}

func (c *localCounter) allocate(identifier string) string {
	if c.used == nil {
		c.used = make(map[string]bool)
	}

	if !c.used[identifier] {
		c.used[identifier] = true
		return identifier
	}

	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s_%d", identifier, i)
		if !c.used[candidate] {
			c.used[candidate] = true
			return candidate
		}
	}
}

// globalRegisterName derives a flat MLOG variable name for a checked
// module-level variable, since the target has no notion of a qualified
// name.
func globalRegisterName(n name.Name) string {
	return strings.ReplaceAll(n.String(), "::", "_")
}
