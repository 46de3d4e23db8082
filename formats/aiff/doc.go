// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Uncompressed AIFF at 8, 16, 24 and 32 bits is read into float32 samples
// in [-1, 1]. AIFF-C and writing are not supported; converted files are
// always written as WAV.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF
//	}
package aiff
