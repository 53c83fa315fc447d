// Package sem defines the semantic tree produced by the checker: a typed,
// fully-resolved refinement of pkg/hll/ast in which every reachable
// expression is either a constant or provably unreducible, every variable
// access is discriminated by storage class, and every symbol reference is
// a name.Name handle rather than a pointer — so the tree itself cannot
// contain a reference cycle.
package sem

import "github.com/mlogc/mlogc/pkg/name"

// Expr is a sealed sum over the semantic expression forms.
type Expr interface {
	exprNode()
}

// KnownKind discriminates the compile-time-reducible value forms.
type KnownKind uint8

const (
	KnownNumber KnownKind = iota
	KnownColor
	KnownString
	// KnownBuiltinName holds a bare built-in name used as a value (e.g. a
	// resource or unit identifier passed to a procedure).
	KnownBuiltinName
	KnownTrue
	KnownFalse
	KnownNull
)

// Known is a compile-time-reducible value: the result of constant folding,
// or a literal that was already one.
type Known struct {
	Kind   KnownKind
	Number float64
	Color  uint32
	Text   string // string value, or the built-in name for KnownBuiltinName
}

func (*Known) exprNode() {}

// IsNumeric reports whether this constant participates in numeric constant
// folding.
func (k Known) IsNumeric() bool {
	return k.Kind == KnownNumber
}

// BinaryOp is a non-short-circuit two-operand operator application that
// the checker could not fold (at least one operand was not Known).
type BinaryOp struct {
	Op          string
	Left, Right Expr
}

func (*BinaryOp) exprNode() {}

// ShortCircuit represents `&&`/`||` once at least one operand is not
// Known. These are never folded through the general binary-operator table:
// the builder lowers them with a jump rather than an `op` instruction.
type ShortCircuit struct {
	Op          string // "&&" or "||"
	Left, Right Expr
}

func (*ShortCircuit) exprNode() {}

// UnaryOp is a single-operand prefix operator application that the checker
// could not fold.
type UnaryOp struct {
	Op      string
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// GlobalVariableAccess reads a module-level variable by its qualified name.
type GlobalVariableAccess struct {
	Name name.Name
}

func (*GlobalVariableAccess) exprNode() {}

// LocalVariableAccess reads a procedure-local variable by identifier.
type LocalVariableAccess struct {
	Identifier string
}

func (*LocalVariableAccess) exprNode() {}

// LinkAccess reads a link's bound building name.
type LinkAccess struct {
	Building string
}

func (*LinkAccess) exprNode() {}

// Call invokes a resolved procedure (user-defined or built-in) with
// already-checked argument expressions.
type Call struct {
	Name name.Name
	Args []Expr
}

func (*Call) exprNode() {}

// MemberRead is the result of checking a MemberAccess: the receiver
// expression, evaluated for any side effects, paired with the built-in
// constant its member resolved to.
type MemberRead struct {
	Object Expr
	Value  Known
}

func (*MemberRead) exprNode() {}
