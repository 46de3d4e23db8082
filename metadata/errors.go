// SPDX-License-Identifier: EPL-2.0

package metadata

import "errors"

// ErrUnsupportedFormat indicates no stripper exists for a file format.
var ErrUnsupportedFormat = errors.New("metadata stripping not supported for format")
