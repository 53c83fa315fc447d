// Package name provides the handle used to address definitions without
// holding a pointer to them, so that the symbol graph never forms an actual
// object-graph cycle: everything is looked up through a per-target
// map[Name]Definition instead.
package name

import "fmt"

// Builtin is the reserved source name under which the built-in catalog is
// materialized.
const Builtin = "mlog"

// Name is a pair (source, identifier) identifying one global definition.
type Name struct {
	Source     string
	Identifier string
}

// New constructs a qualified name.
func New(source, identifier string) Name {
	return Name{Source: source, Identifier: identifier}
}

// Of constructs a name within the built-in source.
func Of(identifier string) Name {
	return Name{Source: Builtin, Identifier: identifier}
}

// String renders "source::identifier", matching the HLL's own mention
// syntax.
func (n Name) String() string {
	return fmt.Sprintf("%s::%s", n.Source, n.Identifier)
}
