// Package builder lowers a checked target (pkg/checker) into a flat MLOG
// instruction stream (pkg/mlog): register allocation for intermediate
// values, jump-based control flow, short-circuit jumps, and a
// return-address dispatch convention for user-defined procedure calls,
// since the target instruction set has no call stack of its own.
package builder

import (
	"sort"

	"github.com/mlogc/mlogc/pkg/builtin"
	"github.com/mlogc/mlogc/pkg/checker"
	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/name"
	"github.com/mlogc/mlogc/pkg/sem"
)

// procCtx is the static activation record shared by every call site of one
// user-defined procedure: the target has no call stack, so a procedure's
// argument, return-value and return-address storage is allocated once and
// reused by every invocation (recursive calls are not supported — see
// DESIGN.md).
type procCtx struct {
	def           *sem.UserDefinedProcedure
	argRegs       []string
	retReg        string
	retAddrReg    string
	entryLabel    int
	epilogueLabel int
	callSites     []int // resume label per call site, in call order
	enqueued      bool
	lowered       bool
}

// Builder drives one lowering pass over a checked Target.
type Builder struct {
	target  *checker.Target
	catalog *builtin.Catalog

	instrs []mlog.Instruction
	labels *labeler
	temps  tempPool
	locals localCounter

	globalRegs map[name.Name]string
	procs      map[name.Name]*procCtx
	procOrder  []name.Name
	queue      []name.Name

	currentProc *procCtx
	loops       loopLabelStack
}

// loopFrame records the jump targets break/continue resolve to, innermost
// last — the lowering-time analogue of pkg/checker's loopStack.
type loopFrame struct {
	endLabel      int
	continueLabel int
}

type loopLabelStack []loopFrame

// Build lowers t into a complete MLOG program, terminated by `end`.
func Build(t *checker.Target) mlog.Program {
	b := &Builder{
		target:     t,
		catalog:    builtin.Build(),
		labels:     newLabeler(),
		globalRegs: make(map[name.Name]string),
		procs:      make(map[name.Name]*procCtx),
	}

	b.assignGlobalRegisters()
	b.emitGlobalInitializers()

	root := newEnv(nil)
	b.lowerStmt(root, t.Body)

	if len(b.queue) > 0 {
		programEnd := b.labels.newLabel()
		b.emitJump("always", mlog.Num(0), mlog.Num(0), programEnd)
		b.lowerProcedureBodies()
		b.emitProcedureDispatchBlocks()
		b.labels.place(programEnd, b.instrs)
	}

	b.instrs = append(b.instrs, mlog.New("end"))

	return mlog.Program(b.instrs)
}

func (b *Builder) assignGlobalRegisters() {
	for n := range b.target.Globals {
		reg := globalRegisterName(n)
		b.globalRegs[n] = reg
		b.locals.reserve(reg)
	}
}

// emitGlobalInitializers sets every global variable that declared an
// initial value, in a deterministic (name-sorted) order so the emitted
// program does not depend on Go's randomized map iteration.
func (b *Builder) emitGlobalInitializers() {
	names := make([]name.Name, 0, len(b.target.Globals))

	for n, g := range b.target.Globals {
		if g.Initial != nil {
			names = append(names, n)
		}
	}

	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })

	for _, n := range names {
		g := b.target.Globals[n]
		b.emit(mlog.New("set", mlog.Reg(b.globalRegs[n]), b.knownOperand(*g.Initial)))
	}
}

// lowerProcedureBodies drains the discovery worklist, appending each
// reached procedure's body once. Lowering one body may enqueue further
// procedures it calls; the loop continues until none remain.
func (b *Builder) lowerProcedureBodies() {
	for len(b.queue) > 0 {
		n := b.queue[0]
		b.queue = b.queue[1:]

		proc := b.procs[n]
		if proc.lowered {
			continue
		}

		proc.lowered = true
		b.labels.place(proc.entryLabel, b.instrs)

		prevProc := b.currentProc
		b.currentProc = proc

		root := newEnv(nil)

		for i, p := range proc.def.Params {
			root.bind(p.Identifier, proc.argRegs[i])
		}

		b.lowerStmt(root, proc.def.Body)
		b.currentProc = prevProc

		b.emitJump("always", mlog.Num(0), mlog.Num(0), proc.epilogueLabel)
	}
}

// emitProcedureDispatchBlocks appends each reached procedure's
// return-address dispatch, once every call site (including ones generated
// while lowering other procedures' bodies) has been recorded.
func (b *Builder) emitProcedureDispatchBlocks() {
	for _, n := range b.procOrder {
		proc := b.procs[n]
		b.labels.place(proc.epilogueLabel, b.instrs)

		for i, resumeLabel := range proc.callSites {
			b.emitJump("equal", mlog.Reg(proc.retAddrReg), mlog.Num(float64(i)), resumeLabel)
		}
	}
}

func (b *Builder) emit(i mlog.Instruction) int {
	b.instrs = append(b.instrs, i)
	return len(b.instrs) - 1
}

// emitJump appends a jump instruction with a symbolic target, patched once
// target is placed (immediately, if it already has been).
func (b *Builder) emitJump(cond string, a, b2 mlog.Operand, target int) {
	idx := b.emit(mlog.New("jump", mlog.Num(0), mlog.Builtin(cond), a, b2))
	b.labels.target(target, idx, 0, b.instrs)
}

func (b *Builder) knownOperand(k sem.Known) mlog.Operand {
	switch k.Kind {
	case sem.KnownNumber:
		return mlog.Num(k.Number)
	case sem.KnownColor:
		return mlog.Col(k.Color)
	case sem.KnownString:
		return mlog.Str(k.Text)
	case sem.KnownBuiltinName:
		return mlog.Builtin(k.Text)
	case sem.KnownTrue:
		return mlog.Builtin("true")
	case sem.KnownFalse:
		return mlog.Builtin("false")
	default:
		return mlog.Builtin("null")
	}
}
