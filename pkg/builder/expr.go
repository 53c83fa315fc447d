package builder

import (
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/sem"
)

// arithOpcode maps an HLL operator token to its MLOG `op`/`jump` mnemonic
// (§6 "Output file" table).
var arithOpcode = map[string]string{
	"==": "equal", "!=": "notEqual", "===": "strictEqual",
	"<": "lessThan", "<=": "lessThanEq", ">": "greaterThan", ">=": "greaterThanEq",
	"|": "or", "^": "xor", "&": "and",
	"<<": "shl", ">>": "shr",
	"+": "add", "-": "sub", "*": "mul", "/": "div", "//": "idiv", "%": "mod",
}

// lowerExpr lowers one already-checked expression to its evaluation: a
// register (possibly a fresh temp the caller may reuse) or an immediate.
func (b *Builder) lowerExpr(e *env, expr sem.Expr) eval {
	switch n := expr.(type) {
	case *sem.Known:
		return stable(b.knownOperand(*n))

	case *sem.LocalVariableAccess:
		if r, ok := e.lookup(n.Identifier); ok {
			return stable(mlog.Reg(r))
		}
		// Unreachable once the checker has resolved the tree: every local
		// access it produces was declared in an enclosing scope the
		// builder walks identically.
		return stable(mlog.Builtin("null"))

	case *sem.GlobalVariableAccess:
		return stable(mlog.Reg(b.globalRegs[n.Name]))

	case *sem.LinkAccess:
		return stable(mlog.Builtin(n.Building))

	case *sem.MemberRead:
		// The receiver is evaluated for any side effects, then discarded:
		// the member's value is already known at check time.
		b.lowerExpr(e, n.Object)
		return stable(b.knownOperand(n.Value))

	case *sem.UnaryOp:
		return b.lowerUnary(e, n)

	case *sem.BinaryOp:
		return b.lowerBinary(e, n)

	case *sem.ShortCircuit:
		return b.lowerShortCircuit(e, n)

	case *sem.Call:
		return b.lowerCall(e, n)

	default:
		return stable(mlog.Builtin("null"))
	}
}

func (b *Builder) lowerUnary(e *env, n *sem.UnaryOp) eval {
	operand := b.lowerExpr(e, n.Operand)

	result := operand.operand
	if !operand.temp {
		reg := b.temps.claim()
		result = mlog.Reg(reg)
	}

	switch n.Op {
	case "+":
		b.emit(mlog.New("op", mlog.Builtin("add"), result, mlog.Num(0), operand.operand))
	case "-":
		b.emit(mlog.New("op", mlog.Builtin("sub"), result, mlog.Num(0), operand.operand))
	case "~":
		b.emit(mlog.New("op", mlog.Builtin("not"), result, operand.operand, mlog.Num(0)))
	case "!":
		b.emit(mlog.New("op", mlog.Builtin("notEqual"), result, operand.operand, mlog.Num(0)))
	}

	return eval{operand: result, temp: true}
}

func (b *Builder) lowerBinary(e *env, n *sem.BinaryOp) eval {
	left := b.lowerExpr(e, n.Left)

	mark := b.temps.mark()
	right := b.lowerExpr(e, n.Right)
	b.temps.release(mark)

	var result mlog.Operand

	if left.temp {
		result = left.operand
	} else {
		result = mlog.Reg(b.temps.claim())
	}

	opcode := arithOpcode[n.Op]
	b.emit(mlog.New("op", mlog.Builtin(opcode), result, left.operand, right.operand))

	return eval{operand: result, temp: true}
}

// lowerShortCircuit lowers `&&`/`||` using the jump-based scheme (§4.5):
// the left operand seeds the result register, a conditional jump skips
// evaluating the right operand when it already decides the outcome, and
// `||`'s shortcut path writes the canonical truthy 1.
func (b *Builder) lowerShortCircuit(e *env, n *sem.ShortCircuit) eval {
	left := b.lowerExpr(e, n.Left)

	var result mlog.Operand

	if left.temp {
		result = left.operand
	} else {
		result = mlog.Reg(b.temps.claim())
		b.emit(mlog.New("set", result, left.operand))
	}

	endLabel := b.labels.newLabel()

	if n.Op == "&&" {
		b.emitJump("equal", result, mlog.Num(0), endLabel)

		mark := b.temps.mark()
		right := b.lowerExpr(e, n.Right)
		b.emit(mlog.New("set", result, right.operand))
		b.temps.release(mark)

		b.labels.place(endLabel, b.instrs)

		return eval{operand: result, temp: true}
	}

	shortcutLabel := b.labels.newLabel()
	b.emitJump("notEqual", result, mlog.Num(0), shortcutLabel)

	mark := b.temps.mark()
	right := b.lowerExpr(e, n.Right)
	b.emit(mlog.New("set", result, right.operand))
	b.temps.release(mark)

	b.emitJump("always", mlog.Num(0), mlog.Num(0), endLabel)
	b.labels.place(shortcutLabel, b.instrs)
	b.emit(mlog.New("set", result, mlog.Num(1)))
	b.labels.place(endLabel, b.instrs)

	return eval{operand: result, temp: true}
}
