// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempPath returns a unique hidden path in the directory of path with the
// given extension.
func TempPath(path, ext string) string {
	return filepath.Join(filepath.Dir(path), ".sampleprep-"+uuid.New().String()+ext)
}

// ReplaceFile writes a new version of path through write and moves it over
// the original once write succeeded. The original file mode is kept. On
// failure the temporary file is removed and path is left untouched.
func ReplaceFile(path string, write func(f *os.File) error) error {
	return WriteFile(path, path, write)
}

// WriteFile is ReplaceFile with a destination that can differ from the
// file whose mode is copied.
func WriteFile(modeFrom, dst string, write func(f *os.File) error) (err error) {
	info, err := os.Stat(modeFrom)
	if err != nil {
		return err
	}

	tmp := TempPath(dst, filepath.Ext(dst))
	f, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err = write(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("replacing %s: %w", dst, err)
	}
	return nil
}
