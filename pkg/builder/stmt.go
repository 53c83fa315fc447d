package builder

import (
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/sem"
)

// compoundOpcode maps a compound-assignment operator to its `op` mnemonic.
var compoundOpcode = map[sem.AssignOp]string{
	sem.AssignMul: "mul", sem.AssignDiv: "div", sem.AssignIDiv: "idiv", sem.AssignMod: "mod",
	sem.AssignAdd: "add", sem.AssignSub: "sub", sem.AssignShl: "shl", sem.AssignShr: "shr",
	sem.AssignAnd: "and", sem.AssignXor: "xor", sem.AssignOr: "or",
}

// lowerStmt lowers one checked statement, threading the register
// environment (e) and the enclosing loops' break/continue targets.
func (b *Builder) lowerStmt(e *env, stmt sem.Stmt) {
	switch n := stmt.(type) {
	case *sem.Block:
		child := e.child()
		for _, s := range n.Stmts {
			b.lowerStmt(child, s)
		}

	case *sem.If:
		b.lowerIf(e, n)

	case *sem.While:
		b.lowerWhile(e, n)

	case *sem.Break:
		frame := b.loops[len(b.loops)-1-n.Depth]
		b.emitJump("always", mlog.Num(0), mlog.Num(0), frame.endLabel)

	case *sem.Continue:
		frame := b.loops[len(b.loops)-1-n.Depth]
		b.emitJump("always", mlog.Num(0), mlog.Num(0), frame.continueLabel)

	case *sem.Return:
		b.lowerReturn(e, n)

	case *sem.LocalVarStmt:
		reg := b.locals.allocate(n.Identifier)
		e.bind(n.Identifier, reg)

		if n.Initial != nil {
			value := b.lowerExpr(e, n.Initial)
			b.emit(mlog.New("set", mlog.Reg(reg), value.operand))
		}

	case *sem.Discard:
		b.lowerExpr(e, n.Expr)

	case *sem.Increment:
		b.lowerStep(e, n.Target, "add")

	case *sem.Decrement:
		b.lowerStep(e, n.Target, "sub")

	case *sem.Assign:
		b.lowerAssign(e, n)
	}
}

func (b *Builder) lowerStep(e *env, target sem.Expr, opcode string) {
	reg, ok := b.variableRegister(e, target)
	if !ok {
		return
	}

	b.emit(mlog.New("op", mlog.Builtin(opcode), mlog.Reg(reg), mlog.Reg(reg), mlog.Num(1)))
}

func (b *Builder) lowerAssign(e *env, n *sem.Assign) {
	reg, ok := b.variableRegister(e, n.Target)
	if !ok {
		return
	}

	mark := b.temps.mark()
	value := b.lowerExpr(e, n.Value)

	if n.Op == sem.AssignSet {
		b.emit(mlog.New("set", mlog.Reg(reg), value.operand))
	} else {
		b.emit(mlog.New("op", mlog.Builtin(compoundOpcode[n.Op]), mlog.Reg(reg), mlog.Reg(reg), value.operand))
	}

	b.temps.release(mark)
}

func (b *Builder) lowerReturn(e *env, n *sem.Return) {
	if b.currentProc == nil {
		// A return outside any procedure (legal in an entrypoint body)
		// simply ends the program early; there is no caller to hand a
		// value back to.
		if n.Value != nil {
			b.lowerExpr(e, n.Value)
		}

		b.instrs = append(b.instrs, mlog.New("end"))

		return
	}

	if n.Value != nil {
		value := b.lowerExpr(e, n.Value)
		b.emit(mlog.New("set", mlog.Reg(b.currentProc.retReg), value.operand))
	}

	b.emitJump("always", mlog.Num(0), mlog.Num(0), b.currentProc.epilogueLabel)
}

func (b *Builder) lowerIf(e *env, n *sem.If) {
	inner := e.child()

	falseLabel := b.labels.newLabel()
	b.emitCondJump(inner, n.Cond, true, falseLabel)

	b.lowerStmt(inner, n.Then)

	if n.Else != nil {
		endLabel := b.labels.newLabel()
		b.emitJump("always", mlog.Num(0), mlog.Num(0), endLabel)
		b.labels.place(falseLabel, b.instrs)
		b.lowerStmt(inner, n.Else)
		b.labels.place(endLabel, b.instrs)

		return
	}

	b.labels.place(falseLabel, b.instrs)
}

func (b *Builder) lowerWhile(e *env, n *sem.While) {
	inner := e.child()

	zeroLabel := b.labels.newLabel()
	loopEndLabel := b.labels.newLabel()
	continueLabel := b.labels.newLabel()
	bodyTopLabel := b.labels.newLabel()

	b.emitCondJump(inner, n.Cond, true, zeroLabel)

	b.labels.place(bodyTopLabel, b.instrs)

	b.loops = append(b.loops, loopFrame{endLabel: loopEndLabel, continueLabel: continueLabel})
	b.lowerStmt(inner, n.Body)

	if n.Interleaved != nil {
		b.lowerStmt(inner, n.Interleaved)
	}

	// continueLabel sits after the interleaved clause: a `continue` jumps
	// past it for the current iteration and straight to the re-check, it
	// does not re-run it.
	b.labels.place(continueLabel, b.instrs)
	b.emitCondJump(inner, n.Cond, false, bodyTopLabel)
	b.loops = b.loops[:len(b.loops)-1]

	if n.ZeroBranch != nil {
		b.emitJump("always", mlog.Num(0), mlog.Num(0), loopEndLabel)
		b.labels.place(zeroLabel, b.instrs)
		b.lowerStmt(inner, n.ZeroBranch)
		b.labels.place(loopEndLabel, b.instrs)

		return
	}

	b.labels.place(zeroLabel, b.instrs)
	b.labels.place(loopEndLabel, b.instrs)
}
