package checker

import (
	"math"

	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/name"
	"github.com/mlogc/mlogc/pkg/sem"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// equalityTolerance is the absolute-difference tolerance the constant
// folder uses for `==`/`!=`, matching the target instruction's own runtime
// semantics. `===` never uses it (§9 open question, resolved: strict
// equality folds with exact double equality).
const equalityTolerance = 1e-6

// checkExpr checks one expression, folding it to a sem.Known wherever every
// operand is itself Known. scope is nil in a constant-only context (a
// const value or a global initializer), where no local may be mentioned.
func (c *Checker) checkExpr(src *sourceState, scope *Scope, e ast.Expression) (sem.Expr, []source.SyntaxError) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return &sem.Known{Kind: sem.KnownNumber, Number: n.Value}, nil
	case *ast.ColorLiteral:
		return &sem.Known{Kind: sem.KnownColor, Color: n.Value}, nil
	case *ast.StringLiteral:
		return &sem.Known{Kind: sem.KnownString, Text: n.Value}, nil
	case *ast.Grouping:
		return c.checkExpr(src, scope, n.Inner)
	case *ast.SymbolAccess:
		return c.checkSymbolAccess(src, scope, n)
	case *ast.BinaryOp:
		return c.checkBinaryOp(src, scope, n)
	case *ast.UnaryOp:
		return c.checkUnaryOp(src, scope, n)
	case *ast.Call:
		return c.checkCall(src, scope, n.Callee, n.Args, n.Sp)
	case *ast.MemberCall:
		return c.checkMemberCall(src, scope, n)
	case *ast.MemberAccess:
		return c.checkMemberAccess(src, scope, n)
	default:
		return nil, []source.SyntaxError{*src.file.SyntaxError(e.Span(), "unsupported expression form")}
	}
}

func (c *Checker) checkSymbolAccess(src *sourceState, scope *Scope, n *ast.SymbolAccess) (sem.Expr, []source.SyntaxError) {
	m := n.Mention

	if !m.Qualified() {
		if scope.Has(m.Identifier) {
			return &sem.LocalVariableAccess{Identifier: m.Identifier}, nil
		}
	}

	var (
		resolved sem.Definition
		errs     []source.SyntaxError
	)

	if m.Qualified() {
		_, resolved, errs = c.lookupQualified(src, m)
	} else {
		_, resolved, errs = c.lookupUnqualified(src, m.Identifier, m.Sp)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	switch d := resolved.(type) {
	case *sem.Link:
		return &sem.LinkAccess{Building: d.Building}, nil
	case *sem.GlobalVar:
		return &sem.GlobalVariableAccess{Name: d.Name}, nil
	case *sem.UserDefinedConstant:
		k := d.Value
		return &k, nil
	case *sem.BuiltinKeyword:
		k := d.Value
		return &k, nil
	case *sem.BuiltinConstant:
		k := d.Value
		return &k, nil
	default:
		return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "NonVariableAccess: "+m.Identifier)}
	}
}

// shortCircuitOps are the operators the checker never folds through the
// general binary-operator table; they survive as ShortCircuit nodes unless
// both operands happen to already be Known.
var shortCircuitOps = map[string]bool{"&&": true, "||": true}

func (c *Checker) checkBinaryOp(src *sourceState, scope *Scope, n *ast.BinaryOp) (sem.Expr, []source.SyntaxError) {
	left, errs := c.checkExpr(src, scope, n.Left)
	if len(errs) > 0 {
		return nil, errs
	}

	right, errs := c.checkExpr(src, scope, n.Right)
	if len(errs) > 0 {
		return nil, errs
	}

	lk, lok := left.(*sem.Known)
	rk, rok := right.(*sem.Known)

	if shortCircuitOps[n.Op] {
		if lok && rok {
			return foldLogical(n.Op, *lk, *rk), nil
		}

		return &sem.ShortCircuit{Op: n.Op, Left: left, Right: right}, nil
	}

	if lok && rok {
		if folded, ok := foldBinary(n.Op, *lk, *rk); ok {
			return folded, nil
		}
	}

	return &sem.BinaryOp{Op: n.Op, Left: left, Right: right}, nil
}

func foldLogical(op string, l, r sem.Known) sem.Expr {
	lv, rv := truthy(l), truthy(r)

	var result bool
	if op == "&&" {
		result = lv && rv
	} else {
		result = lv || rv
	}

	if result {
		return &sem.Known{Kind: sem.KnownNumber, Number: 1}
	}

	return &sem.Known{Kind: sem.KnownNumber, Number: 0}
}

func truthy(k sem.Known) bool {
	switch k.Kind {
	case sem.KnownNumber:
		return k.Number != 0
	case sem.KnownFalse, sem.KnownNull:
		return false
	default:
		return true
	}
}

// foldBinary computes the constant-folded result of a non-short-circuit
// binary operator, or reports ok=false when the operand kinds don't permit
// folding (e.g. a string operand to an arithmetic operator).
func foldBinary(op string, l, r sem.Known) (*sem.Known, bool) {
	switch op {
	case "==", "!=", "===":
		return foldEquality(op, l, r), true
	}

	if !l.IsNumeric() || !r.IsNumeric() {
		return nil, false
	}

	a, b := l.Number, r.Number

	switch op {
	case "+":
		return numberResult(a + b), true
	case "-":
		return numberResult(a - b), true
	case "*":
		return numberResult(a * b), true
	case "/":
		return numberResult(a / b), true
	case "//":
		return numberResult(math.Floor(a / b)), true
	case "%":
		return numberResult(math.Mod(a, b)), true
	case "<":
		return boolResult(a < b), true
	case "<=":
		return boolResult(a <= b), true
	case ">":
		return boolResult(a > b), true
	case ">=":
		return boolResult(a >= b), true
	case "|":
		return numberResult(float64(toInt(a) | toInt(b))), true
	case "^":
		return numberResult(float64(toInt(a) ^ toInt(b))), true
	case "&":
		return numberResult(float64(toInt(a) & toInt(b))), true
	case "<<":
		return numberResult(float64(toInt(a) << uint(toInt(b)))), true
	case ">>":
		return numberResult(float64(toInt(a) >> uint(toInt(b)))), true
	default:
		return nil, false
	}
}

func foldEquality(op string, l, r sem.Known) *sem.Known {
	var equal bool

	switch {
	case l.Kind == sem.KnownNumber && r.Kind == sem.KnownNumber:
		if op == "===" {
			equal = l.Number == r.Number
		} else {
			equal = math.Abs(l.Number-r.Number) <= equalityTolerance
		}
	case l.Kind == sem.KnownString && r.Kind == sem.KnownString:
		equal = l.Text == r.Text
	case l.Kind == sem.KnownColor && r.Kind == sem.KnownColor:
		equal = l.Color == r.Color
	default:
		equal = l.Kind == r.Kind
	}

	if op == "!=" {
		equal = !equal
	}

	return boolResult(equal)
}

func numberResult(v float64) *sem.Known { return &sem.Known{Kind: sem.KnownNumber, Number: v} }

func boolResult(v bool) *sem.Known {
	if v {
		return &sem.Known{Kind: sem.KnownNumber, Number: 1}
	}

	return &sem.Known{Kind: sem.KnownNumber, Number: 0}
}

// toInt truncates a double to its 53-bit-safe integer bit pattern for the
// bitwise/shift operators, matching the range within which float64
// accumulation is exact.
func toInt(v float64) int64 {
	return int64(v)
}

func (c *Checker) checkUnaryOp(src *sourceState, scope *Scope, n *ast.UnaryOp) (sem.Expr, []source.SyntaxError) {
	operand, errs := c.checkExpr(src, scope, n.Operand)
	if len(errs) > 0 {
		return nil, errs
	}

	if k, ok := operand.(*sem.Known); ok && k.IsNumeric() {
		switch n.Op {
		case "+":
			return numberResult(k.Number), nil
		case "-":
			return numberResult(-k.Number), nil
		case "~":
			return numberResult(float64(^toInt(k.Number))), nil
		case "!":
			return boolResult(k.Number == 0), nil
		}
	}

	return &sem.UnaryOp{Op: n.Op, Operand: operand}, nil
}

func (c *Checker) checkCall(src *sourceState, scope *Scope, callee ast.Mention, args []ast.Expression, span source.Span) (sem.Expr, []source.SyntaxError) {
	var (
		resolvedName = callee
		def          sem.Definition
		errs         []source.SyntaxError
	)

	if callee.Qualified() {
		_, def, errs = c.lookupQualified(src, callee)
	} else {
		_, def, errs = c.lookupUnqualified(src, callee.Identifier, callee.Sp)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	paramCount, qualifiedName, ok := procedureShape(def)
	if !ok {
		return nil, []source.SyntaxError{*src.file.SyntaxError(span, "NotAProcedure: "+resolvedName.Identifier)}
	}

	if len(args) > paramCount {
		return nil, []source.SyntaxError{*src.file.SyntaxError(span, "TooManyArguments: "+qualifiedName.String())}
	}

	checkedArgs := make([]sem.Expr, len(args))

	for i, a := range args {
		checkedArg, errs := c.checkExpr(src, scope, a)
		if len(errs) > 0 {
			return nil, errs
		}

		checkedArgs[i] = checkedArg
	}

	return &sem.Call{Name: qualifiedName, Args: checkedArgs}, nil
}

// procedureShape reports the declared parameter count and qualified name
// of def if it is any kind of callable procedure.
func procedureShape(def sem.Definition) (paramCount int, qualifiedName name.Name, ok bool) {
	switch d := def.(type) {
	case *sem.UserDefinedProcedure:
		return len(d.Params), d.Name, true
	case *sem.BuiltinProcedure:
		return d.ParamCount, d.Name, true
	case *sem.BuiltinProcedureWithDummy:
		return d.ParamCount, d.Name, true
	default:
		return 0, name.Name{}, false
	}
}

func (c *Checker) checkMemberCall(src *sourceState, scope *Scope, n *ast.MemberCall) (sem.Expr, []source.SyntaxError) {
	// A member call rewrites to a plain call resolved only within the
	// current source's own scope (§4.4): cross-source member calls are not
	// permitted and must be aliased in with `using` first.
	args := make([]ast.Expression, 0, len(n.Args)+1)
	args = append(args, n.Receiver)
	args = append(args, n.Args...)

	return c.checkCall(src, scope, ast.Mention{Identifier: n.Member, Sp: n.Sp}, args, n.Sp)
}

func (c *Checker) checkMemberAccess(src *sourceState, scope *Scope, n *ast.MemberAccess) (sem.Expr, []source.SyntaxError) {
	object, errs := c.checkExpr(src, scope, n.Object)
	if len(errs) > 0 {
		return nil, errs
	}

	def, ok := c.catalog.Definitions[name.Of(n.Member)]
	if !ok {
		return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "NonSensibleProperty: "+n.Member)}
	}

	bc, ok := def.(*sem.BuiltinConstant)
	if !ok {
		return nil, []source.SyntaxError{*src.file.SyntaxError(n.Sp, "NonSensibleProperty: "+n.Member)}
	}

	return &sem.MemberRead{Object: object, Value: bc.Value}, nil
}
