package builder

import (
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/sem"
)

// eval is the lowered form of a sub-expression: either a freshly-claimed
// temp register (reusable as a result register by its consumer) or a
// stable operand (a variable's own register, a link, or an immediate).
type eval struct {
	operand mlog.Operand
	temp    bool
}

func stable(o mlog.Operand) eval { return eval{operand: o} }

// getOrEnqueueProc returns the shared activation record for a user-defined
// procedure, allocating its static storage and queuing its body for
// lowering the first time any call site reaches it.
func (b *Builder) getOrEnqueueProc(def *sem.UserDefinedProcedure) *procCtx {
	if p, ok := b.procs[def.Name]; ok {
		return p
	}

	argRegs := make([]string, len(def.Params))
	for i, p := range def.Params {
		argRegs[i] = b.locals.allocate(p.Identifier)
	}

	proc := &procCtx{
		def:           def,
		argRegs:       argRegs,
		retReg:        b.locals.allocate("__ret"),
		retAddrReg:    b.locals.allocate("__retaddr"),
		entryLabel:    b.labels.newLabel(),
		epilogueLabel: b.labels.newLabel(),
	}

	b.procs[def.Name] = proc
	b.procOrder = append(b.procOrder, def.Name)
	b.queue = append(b.queue, def.Name)

	return proc
}

// lowerCall lowers a resolved call (user-defined or built-in) into its
// side-effecting instructions, returning the evaluation a consumer should
// use for the call's value.
func (b *Builder) lowerCall(e *env, call *sem.Call) eval {
	if proc, ok := b.target.Procedures[call.Name]; ok {
		return b.lowerUserCall(e, proc, call)
	}

	if def, ok := b.catalog.Definitions[call.Name]; ok {
		return b.lowerBuiltinCall(e, def, call)
	}

	// Unreachable: the checker only ever produces a Call naming a
	// procedure it already resolved to one of these two forms.
	return stable(mlog.Num(0))
}

func (b *Builder) lowerUserCall(e *env, def *sem.UserDefinedProcedure, call *sem.Call) eval {
	proc := b.getOrEnqueueProc(def)

	for i := range def.Params {
		var argEval eval

		if i < len(call.Args) {
			argEval = b.lowerExpr(e, call.Args[i])
		} else {
			argEval = stable(mlog.Builtin("null"))
		}

		b.emit(mlog.New("set", mlog.Reg(proc.argRegs[i]), argEval.operand))
	}

	callID := len(proc.callSites)
	b.emit(mlog.New("set", mlog.Reg(proc.retAddrReg), mlog.Num(float64(callID))))
	b.emitJump("always", mlog.Num(0), mlog.Num(0), proc.entryLabel)

	resumeLabel := b.labels.newLabel()
	b.labels.place(resumeLabel, b.instrs)
	proc.callSites = append(proc.callSites, resumeLabel)

	for i, param := range def.Params {
		if !param.Output || i >= len(call.Args) {
			continue
		}

		if target, ok := b.variableRegister(e, call.Args[i]); ok {
			b.emit(mlog.New("set", mlog.Reg(target), mlog.Reg(proc.argRegs[i])))
		}
	}

	return stable(mlog.Reg(proc.retReg))
}

// variableRegister reports the register an already-lowered expression
// names, when it names a variable at all (the only legal form for an
// output-parameter argument).
func (b *Builder) variableRegister(e *env, arg sem.Expr) (string, bool) {
	switch a := arg.(type) {
	case *sem.LocalVariableAccess:
		if r, ok := e.lookup(a.Identifier); ok {
			return r, true
		}
	case *sem.GlobalVariableAccess:
		if r, ok := b.globalRegs[a.Name]; ok {
			return r, true
		}
	}

	return "", false
}

func (b *Builder) lowerBuiltinCall(e *env, def sem.Definition, call *sem.Call) eval {
	var (
		paramCount int
		emitFn     func(args []mlog.Operand) mlog.Instruction
	)

	switch d := def.(type) {
	case *sem.BuiltinProcedure:
		paramCount, emitFn = d.ParamCount, d.Emit
	case *sem.BuiltinProcedureWithDummy:
		paramCount, emitFn = d.ParamCount, d.Emit
	default:
		return stable(mlog.Num(0))
	}

	args := make([]mlog.Operand, paramCount)

	for i := 0; i < paramCount; i++ {
		if i < len(call.Args) {
			args[i] = b.lowerExpr(e, call.Args[i]).operand
		} else {
			args[i] = mlog.Builtin("null")
		}
	}

	b.emit(emitFn(args))

	// Built-in procedures carry their output (where they have one) as an
	// ordinary positional argument rather than a return channel (matching
	// the target's own instruction shape); a call used where a value is
	// expected simply yields null.
	return stable(mlog.Builtin("null"))
}
