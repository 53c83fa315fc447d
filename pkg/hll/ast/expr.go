package ast

import "github.com/mlogc/mlogc/pkg/util/source"

// Expression is a sealed sum over the value-producing forms.
type Expression interface {
	exprNode()
	Span() source.Span
}

// BinaryOp is a two-operand operator application, including the
// short-circuit `&&`/`||` forms (the checker and builder treat those
// specially; the parse tree does not distinguish them structurally).
type BinaryOp struct {
	Op          string // the operator's token text, e.g. "+", "&&", "==="
	Left, Right Expression
	Sp          source.Span
}

func (*BinaryOp) exprNode()           {}
func (b *BinaryOp) Span() source.Span { return b.Sp }

// UnaryOp is a single-operand prefix operator application.
type UnaryOp struct {
	Op       string // "+", "-", "~", "!"
	Operand  Expression
	Sp       source.Span
}

func (*UnaryOp) exprNode()           {}
func (u *UnaryOp) Span() source.Span { return u.Sp }

// NumberLiteral is a parsed numeric constant.
type NumberLiteral struct {
	Value float64
	Sp    source.Span
}

func (*NumberLiteral) exprNode()           {}
func (n *NumberLiteral) Span() source.Span { return n.Sp }

// ColorLiteral is a parsed `0p` colour constant.
type ColorLiteral struct {
	Value uint32
	Sp    source.Span
}

func (*ColorLiteral) exprNode()           {}
func (c *ColorLiteral) Span() source.Span { return c.Sp }

// StringLiteral is a quoted string constant.
type StringLiteral struct {
	Value string
	Sp    source.Span
}

func (*StringLiteral) exprNode()           {}
func (s *StringLiteral) Span() source.Span { return s.Sp }

// SymbolAccess reads a mentioned symbol (local, global, or built-in).
type SymbolAccess struct {
	Mention Mention
	Sp      source.Span
}

func (*SymbolAccess) exprNode()           {}
func (s *SymbolAccess) Span() source.Span { return s.Sp }

// Grouping is a parenthesized expression, retained so error spans point at
// the written text.
type Grouping struct {
	Inner Expression
	Sp    source.Span
}

func (*Grouping) exprNode()           {}
func (g *Grouping) Span() source.Span { return g.Sp }

// Call invokes a procedure named by a mention with a list of arguments.
type Call struct {
	Callee Mention
	Args   []Expression
	Sp     source.Span
}

func (*Call) exprNode()           {}
func (c *Call) Span() source.Span { return c.Sp }

// MemberCall is `receiver.member(args)`, rewritten by the checker into a
// Call within the current source's own scope.
type MemberCall struct {
	Receiver Expression
	Member   string
	Args     []Expression
	Sp       source.Span
}

func (*MemberCall) exprNode()           {}
func (m *MemberCall) Span() source.Span { return m.Sp }

// MemberAccess is `object.member`, rewritten by the checker into a
// sensor-style read against the built-in catalog.
type MemberAccess struct {
	Object Expression
	Member string
	Sp     source.Span
}

func (*MemberAccess) exprNode()           {}
func (m *MemberAccess) Span() source.Span { return m.Sp }
