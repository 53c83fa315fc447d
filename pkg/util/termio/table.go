// Package termio provides the small terminal-aware printing helpers the
// debug subcommands use: a fixed-width table printer and a terminal-width
// query. A full-screen ANSI-colored, raw-mode-keyboard interactive browser
// would serve no purpose here (debug output is a one-shot print, not a
// navigable view), so only the plain-text pieces are provided.
package termio

import (
	"fmt"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal (piped output, CI
// logs) and no width can be queried.
const DefaultWidth = 80

// Width reports the terminal width of fd, falling back to DefaultWidth when
// fd is not a terminal.
func Width(fd int) uint {
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}

	return uint(w)
}

// Table is a simple fixed-column-width text table, column widths growing to
// fit their widest cell (optionally capped via SetMaxWidth).
type Table struct {
	widths []uint
	rows   [][]string
}

// NewTable constructs a table of the given column count with no rows yet.
func NewTable(columns uint) *Table {
	return &Table{widths: make([]uint, columns)}
}

// AddRow appends one row, widening any column whose new cell is longer than
// every cell seen for it so far.
func (t *Table) AddRow(cells ...string) {
	if uint(len(cells)) != uint(len(t.widths)) {
		panic("termio: wrong number of columns")
	}

	for i, c := range cells {
		if w := uint(len(c)); w > t.widths[i] {
			t.widths[i] = w
		}
	}

	t.rows = append(t.rows, cells)
}

// SetMaxWidth caps the printed width of one column, clipping any wider cell.
func (t *Table) SetMaxWidth(col, width uint) {
	if t.widths[col] > width {
		t.widths[col] = width
	}
}

// String renders the table as a plain string, one row per line.
func (t *Table) String() string {
	var b strings.Builder

	for _, row := range t.rows {
		for i, cell := range row {
			if uint(len(cell)) > t.widths[i] {
				cell = cell[:t.widths[i]]
			}

			fmt.Fprintf(&b, "%-*s", t.widths[i], cell)

			if i+1 < len(row) {
				b.WriteString(" | ")
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}
