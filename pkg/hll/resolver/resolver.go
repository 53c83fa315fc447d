// Package resolver turns one parsed source into its entrypoint (if any)
// and a map of its top-level definitions keyed by identifier, failing on
// any duplicate identifier or duplicate entrypoint. It performs no
// semantic analysis beyond that: the checker addresses globals by
// identifier rather than by position, and everything past "does this name
// collide" is the checker's job.
package resolver

import (
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// Resolved is the per-source result: its entrypoint, if declared, and its
// top-level definitions keyed by identifier.
type Resolved struct {
	Entrypoint  *ast.Entrypoint
	Definitions map[string]ast.Definition
}

// Resolve processes one source's parse tree.
func Resolve(srcfile source.File, decls []ast.Declaration) (*Resolved, []source.SyntaxError) {
	r := &Resolved{Definitions: make(map[string]ast.Definition)}

	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.Entrypoint:
			if r.Entrypoint != nil {
				return nil, []source.SyntaxError{*srcfile.SyntaxError(d.Span(), "duplicate entrypoint in source")}
			}

			r.Entrypoint = d
		case ast.Definition:
			if existing, ok := r.Definitions[d.Ident()]; ok {
				msg := "redeclaration of '" + d.Ident() + "'"

				return nil, []source.SyntaxError{
					*srcfile.SyntaxError(existing.Span(), "first declared here: '"+d.Ident()+"'"),
					*srcfile.SyntaxError(d.Span(), msg),
				}
			}

			r.Definitions[d.Ident()] = d
		}
	}

	return r, nil
}
