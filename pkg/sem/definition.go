package sem

import (
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/name"
)

// Definition is a sealed sum over global bindings, keyed in the checker's
// per-target map by their name.Name rather than held by pointer from other
// nodes.
type Definition interface {
	definitionNode()
}

// Param is one checked procedure parameter.
type Param struct {
	Identifier string
	Output     bool
}

// Link retains a named handle to an external device.
type Link struct {
	Public   bool
	Name     name.Name
	Building string
}

func (*Link) definitionNode() {}

// Using forwards every subsequent lookup of Name to Target.
type Using struct {
	Public bool
	Name   name.Name
	Target name.Name
}

func (*Using) definitionNode() {}

// UserDefinedProcedure is a checked `proc` declaration.
type UserDefinedProcedure struct {
	Public bool
	Name   name.Name
	Params []Param
	Body   Stmt
}

func (*UserDefinedProcedure) definitionNode() {}

// UserDefinedConstant is a checked `const` declaration; its value is always
// Known (the checker rejects anything else with NotCompileTime).
type UserDefinedConstant struct {
	Public bool
	Name   name.Name
	Value  Known
}

func (*UserDefinedConstant) definitionNode() {}

// GlobalVar is a checked top-level `var` declaration. Initial is nil when
// absent, and is always Known when present.
type GlobalVar struct {
	Public  bool
	Name    name.Name
	Initial *Known
}

func (*GlobalVar) definitionNode() {}

// LocalVar is a checked procedure parameter or local declaration, held here
// only so Definition covers it uniformly; the body itself carries
// LocalVarStmt nodes for in-body declarations.
type LocalVar struct {
	Identifier string
	Initial    Expr
}

func (*LocalVar) definitionNode() {}

// BuiltinKeyword names one of the three reserved value keywords
// (`true`, `false`, `null`).
type BuiltinKeyword struct {
	Name  name.Name
	Value Known
}

func (*BuiltinKeyword) definitionNode() {}

// BuiltinConstant names one of the catalog's environmental scalars or
// resource/unit/block identifiers.
type BuiltinConstant struct {
	Name  name.Name
	Value Known
}

func (*BuiltinConstant) definitionNode() {}

// BuiltinProcedure names one fixed-shape MLOG instruction family member.
// Emit receives the lowered call arguments, in declared order, and
// produces the concrete instruction.
type BuiltinProcedure struct {
	Name       name.Name
	ParamCount int
	Emit       func(args []mlog.Operand) mlog.Instruction
}

func (*BuiltinProcedure) definitionNode() {}

// BuiltinProcedureWithDummy is a BuiltinProcedure whose instruction
// template has a slot filled by a fixed dummy value rather than a call
// argument (e.g. `ulocate_building_<kind>`'s ignored `ore` operand).
type BuiltinProcedureWithDummy struct {
	Name        name.Name
	ParamCount  int
	DummySuffix string
	Emit        func(args []mlog.Operand) mlog.Instruction
}

func (*BuiltinProcedureWithDummy) definitionNode() {}
