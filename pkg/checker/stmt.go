package checker

import (
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/sem"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// checkStmt checks one statement, threading the lexical scope it sees and
// the stack of loops lexically enclosing it (for break/continue
// resolution). loops is nil outside any loop.
func (c *Checker) checkStmt(src *sourceState, scope *Scope, loops loopStack, s ast.Statement) (sem.Stmt, []source.SyntaxError) {
	switch n := s.(type) {
	case *ast.Block:
		return c.checkBlock(src, scope.Child(), loops, n)

	case *ast.If:
		return c.checkIf(src, scope, loops, n)

	case *ast.While:
		return c.checkWhile(src, scope, loops, n)

	case *ast.Break:
		depth, ok := loops.resolve(n.Label)
		if !ok {
			if n.Label != "" {
				return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "BadLabel: "+n.Label)}
			}

			return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "NotInLoop: break")}
		}

		return &sem.Break{Depth: depth}, nil

	case *ast.Continue:
		depth, ok := loops.resolve(n.Label)
		if !ok {
			if n.Label != "" {
				return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "BadLabel: "+n.Label)}
			}

			return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "NotInLoop: continue")}
		}

		return &sem.Continue{Depth: depth}, nil

	case *ast.Return:
		if n.Value == nil {
			return &sem.Return{}, nil
		}

		value, errs := c.checkExpr(src, scope, n.Value)
		if len(errs) > 0 {
			return nil, errs
		}

		return &sem.Return{Value: value}, nil

	case *ast.LocalVar:
		var initial sem.Expr

		if n.Initial != nil {
			checked, errs := c.checkExpr(src, scope, n.Initial)
			if len(errs) > 0 {
				return nil, errs
			}

			initial = checked
		}

		scope.Declare(n.Identifier)

		return &sem.LocalVarStmt{Identifier: n.Identifier, Initial: initial}, nil

	case *ast.Discard:
		value, errs := c.checkExpr(src, scope, n.Expr)
		if len(errs) > 0 {
			return nil, errs
		}

		return &sem.Discard{Expr: value}, nil

	case *ast.Increment:
		target, errs := c.checkVariableTarget(src, scope, n.Target, n.Sp)
		if len(errs) > 0 {
			return nil, errs
		}

		return &sem.Increment{Target: target}, nil

	case *ast.Decrement:
		target, errs := c.checkVariableTarget(src, scope, n.Target, n.Sp)
		if len(errs) > 0 {
			return nil, errs
		}

		return &sem.Decrement{Target: target}, nil

	case *ast.Assign:
		target, errs := c.checkVariableTarget(src, scope, n.Target, n.Sp)
		if len(errs) > 0 {
			return nil, errs
		}

		value, errs := c.checkExpr(src, scope, n.Value)
		if len(errs) > 0 {
			return nil, errs
		}

		return &sem.Assign{Op: sem.AssignOp(n.Op), Target: target, Value: value}, nil

	default:
		return nil, []source.SyntaxError{*src.file.SyntaxError(s.Span(), "unsupported statement form")}
	}
}

func (c *Checker) checkBlock(src *sourceState, scope *Scope, loops loopStack, n *ast.Block) (sem.Stmt, []source.SyntaxError) {
	stmts := make([]sem.Stmt, len(n.Stmts))

	for i, st := range n.Stmts {
		checked, errs := c.checkStmt(src, scope, loops, st)
		if len(errs) > 0 {
			return nil, errs
		}

		stmts[i] = checked
	}

	return &sem.Block{Stmts: stmts}, nil
}

// checkVariableTarget checks that an assignment/increment/decrement target
// resolves to something storable, rejecting anything else (a constant, a
// procedure, a link) with NonVariableAccess.
func (c *Checker) checkVariableTarget(src *sourceState, scope *Scope, e ast.Expression, span source.Span) (sem.Expr, []source.SyntaxError) {
	checked, errs := c.checkExpr(src, scope, e)
	if len(errs) > 0 {
		return nil, errs
	}

	switch checked.(type) {
	case *sem.LocalVariableAccess, *sem.GlobalVariableAccess:
		return checked, nil
	default:
		return nil, []source.SyntaxError{*src.file.SyntaxError(span, "NonVariableAccess: assignment target")}
	}
}

// checkIf checks a conditional using two nested scopes: an outer one
// holding any leading variable declarations, and an inner one (scoped to
// the condition and both branches) so declarations never leak past the
// statement that introduced them. When there are no leading declarations
// this collapses to a single child scope.
func (c *Checker) checkIf(src *sourceState, scope *Scope, loops loopStack, n *ast.If) (sem.Stmt, []source.SyntaxError) {
	outer := scope.Child()

	leading, errs := c.checkLeadingVars(src, outer, n.Vars)
	if len(errs) > 0 {
		return nil, errs
	}

	inner := outer.Child()

	cond, errs := c.checkExpr(src, inner, n.Cond)
	if len(errs) > 0 {
		return nil, errs
	}

	then, errs := c.checkStmt(src, inner, loops, n.Then)
	if len(errs) > 0 {
		return nil, errs
	}

	var elseStmt sem.Stmt

	if n.Else != nil {
		elseStmt, errs = c.checkStmt(src, inner, loops, n.Else)
		if len(errs) > 0 {
			return nil, errs
		}
	}

	ifStmt := &sem.If{Cond: cond, Then: then, Else: elseStmt}

	if len(leading) == 0 {
		return ifStmt, nil
	}

	return &sem.Block{Stmts: append(leading, ifStmt)}, nil
}

// checkWhile mirrors checkIf's nested-scope structure, additionally pushing
// a loop frame (for break/continue resolution) before checking the
// condition, interleaved statement and body, and rejecting a label that
// shadows one already in scope.
func (c *Checker) checkWhile(src *sourceState, scope *Scope, loops loopStack, n *ast.While) (sem.Stmt, []source.SyntaxError) {
	if n.Label != "" && loops.hasLabel(n.Label) {
		return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "RedeclaredLabel: "+n.Label)}
	}

	outer := scope.Child()

	leading, errs := c.checkLeadingVars(src, outer, n.Vars)
	if len(errs) > 0 {
		return nil, errs
	}

	inner := outer.Child()
	innerLoops := loops.push(n.Label)

	cond, errs := c.checkExpr(src, inner, n.Cond)
	if len(errs) > 0 {
		return nil, errs
	}

	var interleaved sem.Stmt

	if n.Interleaved != nil {
		interleaved, errs = c.checkStmt(src, inner, innerLoops, n.Interleaved)
		if len(errs) > 0 {
			return nil, errs
		}
	}

	body, errs := c.checkStmt(src, inner, innerLoops, n.Body)
	if len(errs) > 0 {
		return nil, errs
	}

	var zeroBranch sem.Stmt

	if n.ZeroBranch != nil {
		zeroBranch, errs = c.checkStmt(src, inner, loops, n.ZeroBranch)
		if len(errs) > 0 {
			return nil, errs
		}
	}

	whileStmt := &sem.While{Cond: cond, Interleaved: interleaved, Body: body, ZeroBranch: zeroBranch}

	if len(leading) == 0 {
		return whileStmt, nil
	}

	return &sem.Block{Stmts: append(leading, whileStmt)}, nil
}

func (c *Checker) checkLeadingVars(src *sourceState, scope *Scope, vars []*ast.LocalVar) ([]sem.Stmt, []source.SyntaxError) {
	stmts := make([]sem.Stmt, 0, len(vars))

	for _, v := range vars {
		checked, errs := c.checkStmt(src, scope, nil, v)
		if len(errs) > 0 {
			return nil, errs
		}

		stmts = append(stmts, checked)
	}

	return stmts, nil
}
