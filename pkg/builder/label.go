package builder

import "github.com/mlogc/mlogc/pkg/mlog"

// patch is one pending rewrite of a not-yet-resolved jump target: the
// instruction and operand slot to overwrite once its label's final line
// number is known.
type patch struct {
	instr   int
	operand int
}

// labeler resolves symbolic jump targets against the final, already-decided
// instruction order: placing a label records its line number immediately
// (the builder only ever appends), and a jump emitted before its target is
// placed is patched the moment that target is placed.
type labeler struct {
	next    int
	resolved map[int]int
	pending  map[int][]patch
}

func newLabeler() *labeler {
	return &labeler{resolved: make(map[int]int), pending: make(map[int][]patch)}
}

// newLabel allocates a fresh, as-yet-unplaced label id.
func (l *labeler) newLabel() int {
	l.next++
	return l.next
}

// place fixes label at the current end of instrs, patching every jump that
// was already emitted against it. Always call this with the builder's
// live instruction slice: a patch recorded before a later append must still
// land on the same element once the backing array has grown.
func (l *labeler) place(label int, instrs []mlog.Instruction) {
	line := len(instrs)
	l.resolved[label] = line

	for _, p := range l.pending[label] {
		instrs[p.instr].Operands[p.operand] = mlog.Num(float64(line))
	}

	delete(l.pending, label)
}

// target resolves label against instr's operand slot immediately if already
// placed, or defers the rewrite until it is.
func (l *labeler) target(label, instr, operand int, instrs []mlog.Instruction) {
	if line, ok := l.resolved[label]; ok {
		instrs[instr].Operands[operand] = mlog.Num(float64(line))
		return
	}

	l.pending[label] = append(l.pending[label], patch{instr: instr, operand: operand})
}
