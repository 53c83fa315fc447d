// Package checker drives multi-source compilation: it loads, lexes,
// parses and resolves sources on demand, memoizing each by name, and walks
// the parse tree producing a fully-resolved semantic tree (pkg/sem) with
// global cycle detection, constant folding, scope-managed locals,
// loop-label resolution and built-in symbol binding.
//
// Definitions are held in a per-target map[name.Name]sem.Definition rather
// than referenced by pointer from other nodes, so the symbol graph itself
// never forms a reference cycle; a parallel map[name.Name]bool of names
// currently being checked is what actually detects a cycle, whether it
// runs through one source's constants or through several sources' mentions
// of one another.
package checker

import (
	"fmt"

	"github.com/mlogc/mlogc/pkg/builtin"
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/hll/parser"
	"github.com/mlogc/mlogc/pkg/hll/resolver"
	"github.com/mlogc/mlogc/pkg/name"
	"github.com/mlogc/mlogc/pkg/sem"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// Locator maps a bare source name to its file. The checker only ever
// depends on this interface: the concrete filesystem search (§6's
// "Source locator & loader" stage) is an external collaborator supplied by
// the CLI, never performed by the checker itself.
type Locator interface {
	Locate(sourceName string) (source.File, error)
}

// Config holds the checker's construction-time options, per a single
// initializer rather than a builder chain (§9 "Configuration via explicit
// structs").
type Config struct {
	// Subject names the target for top-level errors that have no better
	// span to point at (e.g. "entry source has no entrypoint").
	Subject string
}

// sourceState is one source's cached pipeline state: its file, parse tree,
// and resolved declaration map. Definitions themselves live in the
// checker's shared Globals map once checked, not here.
type sourceState struct {
	name     string
	file     source.File
	resolved *resolver.Resolved
}

// Checker is the stateful driver for one compilation run (one or more
// targets sharing the same built-in catalog and source cache).
type Checker struct {
	cfg     Config
	locator Locator
	catalog *builtin.Catalog

	sources map[string]*sourceState
	globals map[name.Name]sem.Definition
	// checking is the set of names currently being resolved; re-entering a
	// name already in this set is a CyclicDefinition.
	checking map[name.Name]bool
}

// New constructs a Checker over a Locator, materializing the built-in
// catalog before any user source is touched.
func New(cfg Config, locator Locator) *Checker {
	c := &Checker{
		cfg:      cfg,
		locator:  locator,
		catalog:  builtin.Build(),
		sources:  make(map[string]*sourceState),
		globals:  make(map[name.Name]sem.Definition),
		checking: make(map[name.Name]bool),
	}

	for n, d := range c.catalog.Definitions {
		c.globals[n] = d
	}

	return c
}

// Target is the output of checking one entry source: its checked
// entrypoint body plus every user-defined procedure and global variable
// transitively reached while checking it, ready for the builder.
type Target struct {
	EntrySource string
	Body        sem.Stmt
	Procedures  map[name.Name]*sem.UserDefinedProcedure
	Globals     map[name.Name]*sem.GlobalVar
}

// CheckTarget checks the entrypoint of entrySourceName, recursively
// checking every source and definition it reaches.
func (c *Checker) CheckTarget(entrySourceName string) (*Target, []source.SyntaxError) {
	src, errs := c.getSource(entrySourceName)
	if len(errs) > 0 {
		return nil, errs
	}

	if src.resolved.Entrypoint == nil {
		return nil, []source.SyntaxError{
			*src.file.SyntaxError(zeroSpan(), fmt.Sprintf("source %q has no entrypoint", entrySourceName)),
		}
	}

	body, errs := c.checkStmt(src, NewScope(), nil, src.resolved.Entrypoint.Body)
	if len(errs) > 0 {
		return nil, errs
	}

	t := &Target{
		EntrySource: entrySourceName,
		Body:        body,
		Procedures:  make(map[name.Name]*sem.UserDefinedProcedure),
		Globals:     make(map[name.Name]*sem.GlobalVar),
	}

	for n, d := range c.globals {
		switch v := d.(type) {
		case *sem.UserDefinedProcedure:
			t.Procedures[n] = v
		case *sem.GlobalVar:
			t.Globals[n] = v
		}
	}

	return t, nil
}

func zeroSpan() source.Span { return source.NewSpan(0, 0) }

// zeroSourceError reports UnknownSymbol for a name that does not exist in
// the built-in catalog, where there is no real source file to anchor a
// span to.
func zeroSourceError(n name.Name) *source.SyntaxError {
	blank := source.NewSourceFile(name.Builtin, nil)
	return blank.SyntaxError(zeroSpan(), "UnknownSymbol: "+n.String())
}

// getSource loads, lexes, parses and resolves a source by name, memoizing
// the result. Built-ins live only in the catalog/globals map and are never
// reached through this path.
func (c *Checker) getSource(sourceName string) (*sourceState, []source.SyntaxError) {
	if s, ok := c.sources[sourceName]; ok {
		return s, nil
	}

	file, err := c.locator.Locate(sourceName)
	if err != nil {
		return nil, []source.SyntaxError{*file.SyntaxError(zeroSpan(), "IOFailure: "+err.Error())}
	}

	decls, errs := parser.Parse(file)
	if len(errs) > 0 {
		return nil, errs
	}

	resolved, errs := resolver.Resolve(file, decls)
	if len(errs) > 0 {
		return nil, errs
	}

	s := &sourceState{name: sourceName, file: file, resolved: resolved}
	c.sources[sourceName] = s

	return s, nil
}

// checkGlobalInSource resolves one identifier within one source's own
// top-level definitions, checking it (and memoizing the result) on first
// access. Re-entering a name already being checked is CyclicDefinition.
func (c *Checker) checkGlobalInSource(sourceName, identifier string) (sem.Definition, []source.SyntaxError) {
	n := name.New(sourceName, identifier)

	if d, ok := c.globals[n]; ok {
		return d, nil
	}

	if sourceName == name.Builtin {
		return nil, []source.SyntaxError{*zeroSourceError(n)}
	}

	src, errs := c.getSource(sourceName)
	if len(errs) > 0 {
		return nil, errs
	}

	decl, ok := src.resolved.Definitions[identifier]
	if !ok {
		return nil, []source.SyntaxError{*src.file.SyntaxError(zeroSpan(), "UnknownSymbol: "+n.String())}
	}

	if c.checking[n] {
		return nil, []source.SyntaxError{*src.file.SyntaxError(decl.Span(), "CyclicDefinition: "+n.String())}
	}

	c.checking[n] = true
	defer delete(c.checking, n)

	def, errs := c.checkDefinition(src, decl)
	if len(errs) > 0 {
		return nil, errs
	}

	c.globals[n] = def

	return def, nil
}

// lookupQualified resolves an explicitly-qualified mention (scope::ident),
// enforcing visibility: a non-public definition in another source cannot be
// named from outside it.
func (c *Checker) lookupQualified(from *sourceState, mention ast.Mention) (name.Name, sem.Definition, []source.SyntaxError) {
	def, errs := c.checkGlobalInSource(mention.Qualifier, mention.Identifier)
	if len(errs) > 0 {
		return name.Name{}, nil, errs
	}

	n := name.New(mention.Qualifier, mention.Identifier)

	if mention.Qualifier != from.name && mention.Qualifier != name.Builtin && !isPublic(def) {
		return name.Name{}, nil, []source.SyntaxError{
			*from.file.SyntaxError(mention.Sp, "NotVisible: "+n.String()),
		}
	}

	return c.derefUsing(n, def)
}

// lookupUnqualified resolves a bare mention against the current source's
// own globals (locals are checked by the caller first).
func (c *Checker) lookupUnqualified(from *sourceState, identifier string, span source.Span) (name.Name, sem.Definition, []source.SyntaxError) {
	def, errs := c.checkGlobalInSource(from.name, identifier)
	if len(errs) > 0 {
		return name.Name{}, nil, errs
	}

	return c.derefUsing(name.New(from.name, identifier), def)
}

// derefUsing follows a Using definition to the symbol it forwards to, so
// that every subsequent lookup of the alias behaves identically to its
// target (§4.4, §8 "Idempotent visibility").
func (c *Checker) derefUsing(n name.Name, def sem.Definition) (name.Name, sem.Definition, []source.SyntaxError) {
	u, ok := def.(*sem.Using)
	if !ok {
		return n, def, nil
	}

	target, errs := c.checkGlobalInSource(u.Target.Source, u.Target.Identifier)
	if len(errs) > 0 {
		return name.Name{}, nil, errs
	}

	return c.derefUsing(u.Target, target)
}

func isPublic(def sem.Definition) bool {
	switch d := def.(type) {
	case *sem.Link:
		return d.Public
	case *sem.Using:
		return d.Public
	case *sem.UserDefinedProcedure:
		return d.Public
	case *sem.UserDefinedConstant:
		return d.Public
	case *sem.GlobalVar:
		return d.Public
	default:
		// Built-ins are always reachable once named via their reserved
		// scope; the mlog:: qualifier check happens before this is
		// consulted.
		return true
	}
}
