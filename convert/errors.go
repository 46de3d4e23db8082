// SPDX-License-Identifier: EPL-2.0

package convert

import "errors"

var (
	ErrNoDecoder   = errors.New("no decoder for file format")
	ErrNoEncoder   = errors.New("no encoder for target format")
	ErrDestination = errors.New("destination already claimed by another file")
)
