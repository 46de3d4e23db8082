// SPDX-License-Identifier: EPL-2.0

package naming

import "errors"

var (
	// ErrTargetExists indicates a rename would overwrite another file.
	ErrTargetExists = errors.New("target file already exists")

	// ErrInvalidName indicates a formatter produced a name with a path separator.
	ErrInvalidName = errors.New("formatted name is not a plain file name")

	// ErrInvalidRule indicates a rename rule that does not compile.
	ErrInvalidRule = errors.New("invalid rename rule")
)
