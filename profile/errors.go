// SPDX-License-Identifier: EPL-2.0

package profile

import "errors"

var (
	ErrUnknownProfile    = errors.New("unknown profile")
	ErrEmptyFormat       = errors.New("target format is empty")
	ErrNoEncoder         = errors.New("no encoder for target format")
	ErrInvalidBitDepth   = errors.New("target bit depth must be 8, 16, 24 or 32")
	ErrInvalidSampleRate = errors.New("target sample rate must be positive")
	ErrInvalidChannels   = errors.New("target channels must be 0, 1 or 2")
)
