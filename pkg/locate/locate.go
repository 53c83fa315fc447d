// Package locate supplies the filesystem-backed checker.Locator the CLI
// hands to pkg/checker: a bare source name is looked up across an ordered
// list of include directories, first match wins — the same []string of
// candidate directories, tried in order, that every multi-file source
// lookup in this style of toolchain uses.
package locate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlogc/mlogc/pkg/util/source"
)

// Extension is the canonical suffix for a source file named by a bare
// identifier (§6 "Source files").
const Extension = ".hlml"

// Directories is a checker.Locator searching an ordered list of include
// directories for a source named "<dir>/<name>.hlml". An empty Dirs list
// searches nothing; a locator built by New always searches ".", so an empty
// include list there searches only the current working directory.
type Directories struct {
	Dirs []string
}

// New constructs a Directories locator, always searching "." first so a
// bare invocation from a source's own directory needs no flag at all.
func New(includeDirs []string) *Directories {
	dirs := append([]string{"."}, includeDirs...)
	return &Directories{Dirs: dirs}
}

// Locate implements checker.Locator.
func (d *Directories) Locate(sourceName string) (source.File, error) {
	filename := sourceName + Extension

	for _, dir := range d.Dirs {
		path := filepath.Join(dir, filename)

		bytes, err := os.ReadFile(path)
		if err == nil {
			return *source.NewSourceFile(sourceName, bytes), nil
		} else if !os.IsNotExist(err) {
			return *source.NewSourceFile(sourceName, nil), err
		}
	}

	return *source.NewSourceFile(sourceName, nil),
		fmt.Errorf("cannot find %q on include path %v", filename, d.Dirs)
}
