package checker

import (
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/name"
	"github.com/mlogc/mlogc/pkg/sem"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// checkDefinition checks one top-level declaration into its semantic form.
// It is only ever invoked once per name, from inside checkGlobalInSource's
// checking-set bracket.
func (c *Checker) checkDefinition(src *sourceState, decl ast.Definition) (sem.Definition, []source.SyntaxError) {
	switch d := decl.(type) {
	case *ast.Link:
		return &sem.Link{Public: d.Public, Name: name.New(src.name, d.Identifier), Building: d.Building}, nil

	case *ast.Using:
		target, errs := c.parseMentionAsName(src, d.Target)
		if len(errs) > 0 {
			return nil, errs
		}
		// Validate the target exists (and is itself free of cycles) now,
		// so later lookups of this alias see a stable result.
		targetDef, errs := c.checkGlobalInSource(target.Source, target.Identifier)
		if len(errs) > 0 {
			return nil, errs
		}

		if target.Source != src.name && target.Source != name.Builtin && !isPublic(targetDef) {
			return nil, []source.SyntaxError{*src.file.SyntaxError(d.Target.Sp, "NotVisible: "+target.String())}
		}

		return &sem.Using{Public: d.Public, Name: name.New(src.name, d.Identifier), Target: target}, nil

	case *ast.Proc:
		scope := NewScope()
		params := make([]sem.Param, len(d.Params))

		for i, p := range d.Params {
			params[i] = sem.Param{Identifier: p.Identifier, Output: p.Output}
			scope.Declare(p.Identifier)
		}

		body, errs := c.checkStmt(src, scope, nil, d.Body)
		if len(errs) > 0 {
			return nil, errs
		}

		return &sem.UserDefinedProcedure{
			Public: d.Public, Name: name.New(src.name, d.Identifier), Params: params, Body: body,
		}, nil

	case *ast.Const:
		value, errs := c.checkExpr(src, nil, d.Value)
		if len(errs) > 0 {
			return nil, errs
		}

		known, ok := value.(*sem.Known)
		if !ok {
			return nil, []source.SyntaxError{*src.file.SyntaxError(d.Value.Span(), "NotCompileTime: const initializer")}
		}

		return &sem.UserDefinedConstant{Public: d.Public, Name: name.New(src.name, d.Identifier), Value: *known}, nil

	case *ast.GlobalVar:
		var initial *sem.Known

		if d.Initial != nil {
			value, errs := c.checkExpr(src, nil, d.Initial)
			if len(errs) > 0 {
				return nil, errs
			}

			known, ok := value.(*sem.Known)
			if !ok {
				return nil, []source.SyntaxError{*src.file.SyntaxError(d.Initial.Span(), "NotCompileTime: global initializer")}
			}

			initial = known
		}

		return &sem.GlobalVar{Public: d.Public, Name: name.New(src.name, d.Identifier), Initial: initial}, nil

	default:
		return nil, []source.SyntaxError{*src.file.SyntaxError(decl.Span(), "cannot check this declaration kind at top level")}
	}
}

// parseMentionAsName resolves a Using target's qualifier against the
// declaring source: an unqualified target names a symbol in the same
// source.
func (c *Checker) parseMentionAsName(src *sourceState, m ast.Mention) (name.Name, []source.SyntaxError) {
	qualifier := m.Qualifier
	if qualifier == "" {
		qualifier = src.name
	}

	return name.New(qualifier, m.Identifier), nil
}
