// SPDX-License-Identifier: EPL-2.0

package batch

import "errors"

var (
	// ErrRootNotDirectory indicates the root of a pass is missing or a regular file.
	ErrRootNotDirectory = errors.New("root is not a directory")

	// ErrAborted is returned by confirmers that cannot ask, e.g. without a terminal.
	ErrAborted = errors.New("operation aborted")
)
