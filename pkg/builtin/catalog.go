// Package builtin materializes the reserved `mlog` source: the keyword
// constants, environmental scalars, resource/unit/block identifiers, and
// the instruction-family procedures (read, write, draw_*, control_*,
// radar/uradar, op_*, ulocate_*, ...) that the checker binds before
// checking any user source.
package builtin

import (
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/mlogc/mlogc/pkg/mlog"
	"github.com/mlogc/mlogc/pkg/name"
	"github.com/mlogc/mlogc/pkg/sem"
)

// radarFilters is the fixed 7-element filter universe (§6 Radar family
// enumeration), in the index order that decides both emission order and
// the "any"-padding of unselected slots.
var radarFilters = []string{"enemy", "ally", "player", "attacker", "flying", "boss", "ground"}

// radarMetrics is the metric set combined with every filter selection.
var radarMetrics = []string{"distance", "health", "shield", "armor", "maxHealth"}

// Catalog is the resolved set of built-in definitions, keyed by name.
type Catalog struct {
	Definitions map[name.Name]sem.Definition
}

// Build constructs the full built-in catalog.
func Build() *Catalog {
	c := &Catalog{Definitions: make(map[name.Name]sem.Definition)}

	c.addKeywords()
	c.addEnvironmentalScalars()
	c.addNamedIdentifiers()
	c.addCoreProcedures()
	c.addControlFamily()
	c.addDrawFamily()
	c.addLookupFamily()
	c.addOpFamily()
	c.addUlocateFamily()
	c.addRadarFamily()

	return c
}

func (c *Catalog) put(identifier string, d sem.Definition) {
	c.Definitions[name.Of(identifier)] = d
}

func (c *Catalog) addKeywords() {
	keywords := []struct {
		ident string
		kind  sem.KnownKind
	}{
		{"true", sem.KnownTrue},
		{"false", sem.KnownFalse},
		{"null", sem.KnownNull},
	}

	for _, kw := range keywords {
		n := name.Of(kw.ident)
		c.put(kw.ident, &sem.BuiltinKeyword{Name: n, Value: sem.Known{Kind: kw.kind}})
	}
}

func numberConst(v float64) sem.Known { return sem.Known{Kind: sem.KnownNumber, Number: v} }

func (c *Catalog) addEnvironmentalScalars() {
	scalars := map[string]sem.Known{
		"pi":            numberConst(3.14159265358979323846),
		"e":             numberConst(2.71828182845904523536),
		"time":          numberConst(0),
		"tick":          numberConst(0),
		"second":        numberConst(60),
		"minute":        numberConst(3600),
		"counter":       numberConst(0),
		"waveNumber":    numberConst(0),
		"waveTime":      numberConst(0),
		"degToRad":      numberConst(0.017453292519943295),
		"radToDeg":      numberConst(57.29577951308232),
		"server":        {Kind: sem.KnownBuiltinName, Text: "server"},
		"ctrlProcessor": {Kind: sem.KnownBuiltinName, Text: "ctrlProcessor"},
		"ctrlPlayer":    {Kind: sem.KnownBuiltinName, Text: "ctrlPlayer"},
		"ctrlCommand":   {Kind: sem.KnownBuiltinName, Text: "ctrlCommand"},
	}

	for ident, known := range scalars {
		n := name.Of(ident)
		c.put(ident, &sem.BuiltinConstant{Name: n, Value: known})
	}
}

// namedIdentifierFamilies is a representative, non-exhaustive slice of the
// approximately 400 team/resource/unit/block identifiers the real catalog
// carries; the mechanism (dash-to-underscore rewriting, one BuiltinConstant
// per name holding a KnownBuiltinName) generalizes to the full set, which
// would be loaded from a generated data table in a production build.
var namedIdentifierFamilies = map[string][]string{
	"item":   {"copper", "lead", "metaglass", "graphite", "titanium", "thorium", "silicon", "plastanium", "phase-fabric", "surge-alloy", "spore-pod", "sand", "blast-compound", "pyratite", "coal", "scrap"},
	"liquid": {"water", "slag", "oil", "cryofluid"},
	"unit":   {"dagger", "mace", "fortress", "poly", "mega", "quad", "flare", "horizon", "zenith"},
	"block":  {"duo", "scatter", "hail", "router", "distributor", "sorter"},
	"floor":  {"sand-floor", "shale", "ice"},
	"wall":   {"copper-wall", "titanium-wall", "phase-wall"},
	"ore":    {"ore-copper", "ore-lead", "ore-titanium"},
	"color":  {"red", "green", "blue", "yellow", "white", "black"},
	"team":   {"sharded", "crux", "derelict"},
}

func (c *Catalog) addNamedIdentifiers() {
	for _, names := range namedIdentifierFamilies {
		for _, raw := range names {
			ident := strings.ReplaceAll(raw, "-", "_")
			n := name.Of(ident)
			c.put(ident, &sem.BuiltinConstant{Name: n, Value: sem.Known{Kind: sem.KnownBuiltinName, Text: ident}})
		}
	}
}

// fixed instruction helpers -------------------------------------------------

func instr(opcode string, args []mlog.Operand, extra ...mlog.Operand) mlog.Instruction {
	operands := append(append([]mlog.Operand{}, args...), extra...)
	return mlog.New(opcode, operands...)
}

func (c *Catalog) procedure(ident, opcode string, paramCount int) {
	n := name.Of(ident)
	c.put(ident, &sem.BuiltinProcedure{
		Name:       n,
		ParamCount: paramCount,
		Emit: func(args []mlog.Operand) mlog.Instruction {
			return instr(opcode, args)
		},
	})
}

func (c *Catalog) addCoreProcedures() {
	c.procedure("read", "read", 3)
	c.procedure("write", "write", 3)
	c.procedure("print", "print", 1)
	c.procedure("printflush", "printflush", 1)
	c.procedure("drawflush", "drawflush", 1)
	c.procedure("packcolor", "packcolor", 4)
	c.procedure("getlink", "getlink", 2)
	c.procedure("sensor", "sensor", 3)
	c.procedure("wait", "wait", 1)
	c.procedure("ubind", "ubind", 1)

	// `stop` takes no operands.
	c.put("stop", &sem.BuiltinProcedure{
		Name: name.Of("stop"), ParamCount: 0,
		Emit: func(args []mlog.Operand) mlog.Instruction { return mlog.New("stop") },
	})
}

func (c *Catalog) addControlFamily() {
	controlKinds := map[string]int{
		"enabled": 2, "shoot": 4, "shootp": 3, "config": 3, "color": 4,
	}

	for kind, count := range controlKinds {
		ident := "control_" + kind
		c.put(ident, &sem.BuiltinProcedure{
			Name: name.Of(ident), ParamCount: count,
			Emit: func(args []mlog.Operand) mlog.Instruction {
				return instr("control", append([]mlog.Operand{mlog.Builtin(kind)}, args...))
			},
		})
	}

	ucontrolKinds := map[string]int{
		"idle": 0, "stop": 0, "move": 2, "approach": 3, "within": 3, "boost": 1,
		"target": 3, "targetp": 2, "itemDrop": 2, "itemTake": 3, "payDrop": 0,
		"payTake": 1, "payEnter": 0, "mine": 2, "flag": 1, "build": 5,
		"getBlock": 3, "within_": 1, "unbind": 0,
	}

	for kind, count := range ucontrolKinds {
		ident := "ucontrol_" + kind
		c.put(ident, &sem.BuiltinProcedure{
			Name: name.Of(ident), ParamCount: count,
			Emit: func(args []mlog.Operand) mlog.Instruction {
				return instr("ucontrol", append([]mlog.Operand{mlog.Builtin(kind)}, args...))
			},
		})
	}
}

func (c *Catalog) addDrawFamily() {
	drawKinds := map[string]int{
		"clear": 3, "color": 4, "stroke": 1, "line": 4, "rect": 4,
		"lineRect": 4, "poly": 5, "linePoly": 5, "triangle": 6, "image": 5,
	}

	for kind, count := range drawKinds {
		ident := "draw_" + kind
		c.put(ident, &sem.BuiltinProcedure{
			Name: name.Of(ident), ParamCount: count,
			Emit: func(args []mlog.Operand) mlog.Instruction {
				return instr("draw", append([]mlog.Operand{mlog.Builtin(kind)}, args...))
			},
		})
	}
}

func (c *Catalog) addLookupFamily() {
	lookupKinds := map[string]int{"block": 2, "unit": 2, "item": 2, "liquid": 2}

	for kind, count := range lookupKinds {
		ident := "lookup_" + kind
		c.put(ident, &sem.BuiltinProcedure{
			Name: name.Of(ident), ParamCount: count,
			Emit: func(args []mlog.Operand) mlog.Instruction {
				return instr("lookup", append([]mlog.Operand{mlog.Builtin(kind)}, args...))
			},
		})
	}
}

// addOpFamily binds the non-punctuation op mnemonics (those not already
// reachable through an HLL operator token) as callable procedures, per the
// catalog's `op_*` family.
func (c *Catalog) addOpFamily() {
	ops := []string{"max", "min", "atan2", "dst", "noise", "abs", "log", "log10", "floor", "ceil", "sqrt", "rand", "sin", "cos", "tan", "asin", "acos", "atan"}

	for _, op := range ops {
		ident := "op_" + op
		count := 3

		switch op {
		case "abs", "log", "log10", "floor", "ceil", "sqrt", "rand", "sin", "cos", "tan", "asin", "acos", "atan":
			count = 2
		}

		c.put(ident, &sem.BuiltinProcedure{
			Name: name.Of(ident), ParamCount: count,
			Emit: func(args []mlog.Operand) mlog.Instruction {
				return instr("op", append([]mlog.Operand{mlog.Builtin(op)}, args...))
			},
		})
	}
}

func (c *Catalog) addUlocateFamily() {
	fixed := map[string]int{"ulocate_ore": 2, "ulocate_spawn": 2, "ulocate_damaged": 2}

	for ident, count := range fixed {
		kind := strings.TrimPrefix(ident, "ulocate_")
		c.put(ident, &sem.BuiltinProcedure{
			Name: name.Of(ident), ParamCount: count,
			Emit: func(args []mlog.Operand) mlog.Instruction {
				return instr("ulocate", append([]mlog.Operand{mlog.Builtin(kind)}, args...))
			},
		})
	}

	buildingKinds := []string{"core", "storage", "generator", "turret", "factory", "repair", "battery", "reactor"}

	for _, kind := range buildingKinds {
		ident := "ulocate_building_" + kind
		c.put(ident, &sem.BuiltinProcedureWithDummy{
			Name: name.Of(ident), ParamCount: 2, DummySuffix: "ore",
			Emit: func(args []mlog.Operand) mlog.Instruction {
				// The underlying `ulocate building` instruction always
				// carries an `ore` slot, ignored for this kind; it is
				// filled with the number 0, right after the building kind,
				// rather than threading an unused call argument through.
				operands := []mlog.Operand{mlog.Builtin("building"), mlog.Builtin(kind), mlog.Num(0)}
				operands = append(operands, args...)

				return instr("ulocate", operands)
			},
		})
	}
}

// addRadarFamily enumerates every 0..3-element ordered-by-index subset of
// radarFilters combined with a metric, registering both the `radar_*`
// (building-sourced) and `uradar_*` (bound-unit-sourced) variants. Each
// subset is represented as a bitset.BitSet over the 7-filter universe so
// that enumeration is a plain "walk every set bit in ascending order"
// rather than hand-rolled index bookkeeping.
func (c *Catalog) addRadarFamily() {
	n := uint(len(radarFilters))

	for mask := uint64(0); mask < (uint64(1) << n); mask++ {
		bs := bitset.From([]uint64{mask})
		if bs.Count() > 3 {
			continue
		}

		selected := make([]string, 0, 3)

		for i, e := bs.NextSet(0); e; i, e = bs.NextSet(i + 1) {
			selected = append(selected, radarFilters[i])
		}

		filters := padFilters(selected)
		suffix := strings.Join(selected, "_")

		for _, metric := range radarMetrics {
			ident := "radar_" + metric
			uident := "uradar_" + metric

			if suffix != "" {
				ident = "radar_" + suffix + "_" + metric
				uident = "uradar_" + suffix + "_" + metric
			}

			c.addRadarVariant(ident, filters, metric, true)
			c.addRadarVariant(uident, filters, metric, false)
		}
	}
}

// padFilters fills the 3 radar filter slots, writing "any" for every
// unselected slot, per §6.
func padFilters(selected []string) [3]string {
	var out [3]string

	for i := range out {
		out[i] = "any"
	}

	copy(out[:], selected)

	return out
}

// addRadarVariant registers one radar/uradar procedure. The building
// variant takes (building, order, output); the unit variant takes (order,
// output) since its target is the bound unit rather than a call argument.
func (c *Catalog) addRadarVariant(ident string, filters [3]string, metric string, hasBuilding bool) {
	paramCount := 2
	if hasBuilding {
		paramCount = 3
	}

	c.put(ident, &sem.BuiltinProcedure{
		Name: name.Of(ident), ParamCount: paramCount,
		Emit: func(args []mlog.Operand) mlog.Instruction {
			opcode := "uradar"
			if hasBuilding {
				opcode = "radar"
			}

			operands := []mlog.Operand{
				mlog.Builtin(filters[0]), mlog.Builtin(filters[1]), mlog.Builtin(filters[2]),
				mlog.Builtin(metric),
			}
			operands = append(operands, args...)

			return instr(opcode, operands)
		},
	})
}
