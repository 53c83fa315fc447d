// Package mlog models the flat, jump-based instruction stream emitted by
// the builder and its text encoding.
package mlog

import (
	"fmt"
	"strconv"
	"strings"
)

// OperandKind discriminates the four immediate forms plus a register.
type OperandKind uint8

const (
	// KindRegister identifies an operand that names a register.
	KindRegister OperandKind = iota
	// KindNumber is a numeric immediate.
	KindNumber
	// KindString is a quoted string immediate.
	KindString
	// KindColor is a %RRGGBBAA colour immediate.
	KindColor
	// KindBuiltin is a bare named built-in (e.g. a link, or a keyword such
	// as `any`).
	KindBuiltin
)

// Operand is either a register or one of the four immediate forms. Exactly
// one of the fields is meaningful, selected by Kind. A register is rendered
// by its name: the target instruction set has no notion of a numbered
// register slot, so the builder's register pool allocates human-readable
// names (a user variable keeps its own identifier; a compiler-introduced
// temporary gets a synthesized one).
type Operand struct {
	Kind     OperandKind
	Register string
	Number   float64
	Text     string
	Color    uint32
}

// Reg constructs a register operand from its allocated name.
func Reg(name string) Operand { return Operand{Kind: KindRegister, Register: name} }

// Num constructs a numeric immediate operand.
func Num(v float64) Operand { return Operand{Kind: KindNumber, Number: v} }

// Str constructs a string immediate operand.
func Str(v string) Operand { return Operand{Kind: KindString, Text: v} }

// Col constructs a colour immediate operand.
func Col(v uint32) Operand { return Operand{Kind: KindColor, Color: v} }

// Builtin constructs a bare-name immediate operand (a link, or a named
// built-in value such as `any` or `null`).
func Builtin(name string) Operand { return Operand{Kind: KindBuiltin, Text: name} }

// String renders the operand in MLOG text form.
func (o Operand) String() string {
	switch o.Kind {
	case KindRegister:
		return o.Register
	case KindNumber:
		return FormatNumber(o.Number)
	case KindString:
		return strconv.Quote(o.Text)
	case KindColor:
		return fmt.Sprintf("%%%08X", o.Color)
	case KindBuiltin:
		return o.Text
	default:
		panic("unreachable operand kind")
	}
}

// FormatNumber renders a float64 using a locale-independent decimal form
// with exactly as many fraction digits as required to round-trip through
// float64 parsing, and at most one integer-part digit run (no grouping).
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Instruction is one line of the lowered MLOG program.  Opcode is the
// MLOG mnemonic (e.g. "set", "op", "jump", "end", or a built-in procedure's
// instruction name); Operands are rendered space-separated after it.
type Instruction struct {
	Opcode   string
	Operands []Operand
}

// New constructs an instruction from an opcode and its operands.
func New(opcode string, operands ...Operand) Instruction {
	return Instruction{Opcode: opcode, Operands: operands}
}

// String renders one line of MLOG text (without a trailing newline).
func (i Instruction) String() string {
	var b strings.Builder

	b.WriteString(i.Opcode)

	for _, op := range i.Operands {
		b.WriteByte(' ')
		b.WriteString(op.String())
	}

	return b.String()
}

// Program is an ordered, lowered instruction stream ready for text
// serialization.  By invariant the last instruction is always "end".
type Program []Instruction

// Text renders the program as newline-terminated MLOG source, one
// instruction per line.
func (p Program) Text() string {
	var b strings.Builder

	for _, instr := range p {
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}

	return b.String()
}
