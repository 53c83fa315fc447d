package builder

import (
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/sem"
)

// comparisonOps is every binary operator MLOG's own `jump` instruction can
// test directly, without first materializing a boolean into a register
// (§4.5, §8 scenario 3: `v < 1000` compiles straight to a single `jump ...
// greaterThanEq v 1000`, never an intermediate `op lessThan`).
var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// invertedComparisonOpcode gives the MLOG jump mnemonic testing the
// logical negation of an HLL comparison operator, used when a condition
// should branch on being false (an `if`/`while` guard's fall-through path).
var invertedComparisonOpcode = map[string]string{
	"==": "notEqual", "!=": "equal",
	"<": "greaterThanEq", "<=": "greaterThan",
	">": "lessThanEq", ">=": "lessThan",
}

// emitCondJump emits a single jump to target testing cond, inverted if
// requested. A top-level comparison fuses directly into the jump's own
// condition; anything else (a variable, a call, a short-circuited
// expression, `===`, which MLOG has no single-instruction negation for) is
// evaluated to a value first and compared against zero.
func (b *Builder) emitCondJump(e *env, cond sem.Expr, invert bool, target int) {
	if bin, ok := cond.(*sem.BinaryOp); ok && comparisonOps[bin.Op] {
		opcode := arithOpcode[bin.Op]
		if invert {
			opcode = invertedComparisonOpcode[bin.Op]
		}

		mark := b.temps.mark()
		left := b.lowerExpr(e, bin.Left)
		right := b.lowerExpr(e, bin.Right)
		b.emitJump(opcode, left.operand, right.operand, target)
		b.temps.release(mark)

		return
	}

	mark := b.temps.mark()
	value := b.lowerExpr(e, cond)

	opcode := "notEqual"
	if invert {
		opcode = "equal"
	}

	b.emitJump(opcode, value.operand, mlog.Num(0), target)
	b.temps.release(mark)
}
