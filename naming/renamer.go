// SPDX-License-Identifier: EPL-2.0

package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/sampleprep/batch"
)

// Renamer plans renames for a pass. It tracks which names in each directory
// are claimed, by files already on disk and by earlier planned renames, so
// a plan never sends two files to the same name. A Renamer serves one pass.
type Renamer struct {
	formatters []Formatter

	owners map[string]string // claimed path -> path of the file that owns it
	loaded map[string]bool   // directories whose entries are in owners
}

// NewRenamer builds a Renamer running formatters in order. With no
// formatters DefaultFormatters is used.
func NewRenamer(formatters ...Formatter) *Renamer {
	if len(formatters) == 0 {
		formatters = DefaultFormatters()
	}
	return &Renamer{
		formatters: formatters,
		owners:     make(map[string]string),
		loaded:     make(map[string]bool),
	}
}

// Command plans the rename of path, or returns nil when its name is
// already canonical.
func (r *Renamer) Command(path string) (batch.Command, error) {
	dir, name := filepath.Split(path)
	dir = filepath.Clean(dir)

	if err := r.load(dir); err != nil {
		return nil, err
	}

	taken := func(candidate string) bool {
		owner, ok := r.owners[filepath.Join(dir, candidate)]
		return ok && owner != path
	}

	formatted := Chain(name, taken, r.formatters...)
	if formatted == "" || formatted == name {
		return nil, nil
	}
	if strings.ContainsAny(formatted, `/\`) || formatted == "." || formatted == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, formatted)
	}

	final := resolve(formatted, taken)
	if final == name {
		return nil, nil
	}

	to := filepath.Join(dir, final)
	r.owners[to] = path

	return &RenameCommand{From: path, To: to}, nil
}

// load claims the names already present in dir.
func (r *Renamer) load(dir string) error {
	if r.loaded[dir] {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		r.owners[p] = p
	}
	r.loaded[dir] = true
	return nil
}

// resolve appends " 2", " 3", ... to the stem until the name is free.
func resolve(name string, taken Taken) string {
	if !taken(name) {
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d%s", stem, n, ext)
		if !taken(candidate) {
			return candidate
		}
	}
}

// RenameCommand moves a file to a new name in the same directory.
type RenameCommand struct {
	From string
	To   string
}

func (c *RenameCommand) Description() string {
	return fmt.Sprintf("Rename '%s' -> '%s'", c.From, filepath.Base(c.To))
}

// Execute renames the file. It refuses to replace a different file that
// appeared at the destination after planning; a case-only rename of the
// same file is allowed.
func (c *RenameCommand) Execute() error {
	dst, err := os.Lstat(c.To)
	switch {
	case err == nil:
		src, serr := os.Lstat(c.From)
		if serr != nil {
			return fmt.Errorf("renaming %s: %w", c.From, serr)
		}
		if !os.SameFile(src, dst) {
			return fmt.Errorf("%w: %s", ErrTargetExists, c.To)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", c.To, err)
	}

	if err := os.Rename(c.From, c.To); err != nil {
		return fmt.Errorf("renaming %s: %w", c.From, err)
	}
	return nil
}
