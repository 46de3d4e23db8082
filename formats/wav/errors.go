// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input has no RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding indicates a WAVE encoding other than integer PCM
	// and 32 or 64-bit IEEE float.
	ErrUnsupportedEncoding = errors.New("unsupported WAV encoding")

	// ErrUnsupportedBitDepth indicates a sample width outside 8, 16, 24 and 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrTruncatedChunk indicates a chunk header or payload running past the end of the file.
	ErrTruncatedChunk = errors.New("truncated WAV chunk")
)
