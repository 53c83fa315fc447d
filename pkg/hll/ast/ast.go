// Package ast defines the parse tree produced by the parser: a closed set
// of declaration, statement and expression variants, encoded as sealed
// interfaces with one implementing struct per variant. Adding a variant
// means adding a case to every exhaustive switch over the interface.
package ast

import "github.com/mlogc/mlogc/pkg/util/source"

// Declaration is a top-level construct: either the entrypoint, or a
// Definition.
type Declaration interface {
	declNode()
	Span() source.Span
}

// Definition is a named, top-level binding. LocalVar also implements
// Statement, since it may additionally appear inside a body wherever a
// statement is expected.
type Definition interface {
	Declaration
	Ident() string
	IsPublic() bool
}

// Mention is an optional source-qualifier followed by an identifier, as it
// appears at a use site (`ident` or `scope::ident`).
type Mention struct {
	Qualifier string // empty when unqualified
	Identifier string
	Sp         source.Span
}

// Span implements the span accessor used throughout the tree.
func (m Mention) Span() source.Span { return m.Sp }

// Qualified reports whether this mention named an explicit source.
func (m Mention) Qualified() bool { return m.Qualifier != "" }

// Param is one parameter of a user-defined procedure.
type Param struct {
	Identifier string
	// Output marks a trailing `&` in-out parameter.
	Output bool
	Sp     source.Span
}

// Entrypoint is the per-source declaration whose body runs first.
type Entrypoint struct {
	Body Statement
	Sp   source.Span
}

func (*Entrypoint) declNode()          {}
func (e *Entrypoint) Span() source.Span { return e.Sp }

// Link declares a named handle to an external device.
type Link struct {
	Identifier string
	Public     bool
	Building   string
	Sp         source.Span
}

func (*Link) declNode()            {}
func (l *Link) Span() source.Span  { return l.Sp }
func (l *Link) Ident() string      { return l.Identifier }
func (l *Link) IsPublic() bool     { return l.Public }

// Using introduces an alias for another symbol, transparent at use sites.
type Using struct {
	Identifier string
	Public     bool
	Target     Mention
	Sp         source.Span
}

func (*Using) declNode()           {}
func (u *Using) Span() source.Span { return u.Sp }
func (u *Using) Ident() string     { return u.Identifier }
func (u *Using) IsPublic() bool    { return u.Public }

// Proc declares a user-defined procedure.
type Proc struct {
	Identifier string
	Public     bool
	Params     []Param
	Body       Statement
	Sp         source.Span
}

func (*Proc) declNode()           {}
func (p *Proc) Span() source.Span { return p.Sp }
func (p *Proc) Ident() string     { return p.Identifier }
func (p *Proc) IsPublic() bool    { return p.Public }

// Const declares a compile-time constant.
type Const struct {
	Identifier string
	Public     bool
	Value      Expression
	Sp         source.Span
}

func (*Const) declNode()           {}
func (c *Const) Span() source.Span { return c.Sp }
func (c *Const) Ident() string     { return c.Identifier }
func (c *Const) IsPublic() bool    { return c.Public }

// GlobalVar declares a module-level variable, with an optional constant
// initializer.
type GlobalVar struct {
	Identifier string
	Public     bool
	Initial    Expression // nil if absent
	Sp         source.Span
}

func (*GlobalVar) declNode()           {}
func (g *GlobalVar) Span() source.Span { return g.Sp }
func (g *GlobalVar) Ident() string     { return g.Identifier }
func (g *GlobalVar) IsPublic() bool    { return g.Public }

// LocalVar declares a procedure-local variable. It implements both
// Definition (so it can sit in a declaration list) and Statement (so it can
// appear inline in a body).
type LocalVar struct {
	Identifier string
	Initial    Expression // nil if absent
	Sp         source.Span
}

func (*LocalVar) declNode()           {}
func (*LocalVar) stmtNode()           {}
func (l *LocalVar) Span() source.Span { return l.Sp }
func (l *LocalVar) Ident() string     { return l.Identifier }
func (l *LocalVar) IsPublic() bool    { return false }
