// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Predicate selects the files a pass visits.
type Predicate func(path string) bool

// Extensions matches files whose extension is one of exts. Case and a
// leading dot are ignored on both sides.
func Extensions(exts ...string) Predicate {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[normalizeExt(e)] = true
	}
	return func(path string) bool {
		return set[normalizeExt(filepath.Ext(path))]
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// CheckRoot verifies root exists and is a directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRootNotDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}
	return nil
}

// Discover walks root and returns the regular files keep accepts, sorted
// lexicographically for a deterministic processing order. Symlinks are not
// followed.
func Discover(root string, keep Predicate) ([]string, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if keep == nil || keep(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
