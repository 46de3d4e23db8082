// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const frameBlock = 1024

// frameReader hands out one interleaved frame at a time from block reads of src.
type frameReader struct {
	src      Source
	channels int
	buf      []float32
	pos      int
	n        int
	eof      bool
}

func newFrameReader(src Source) *frameReader {
	return &frameReader{
		src:      src,
		channels: src.Channels(),
		buf:      make([]float32, frameBlock*src.Channels()),
	}
}

// next copies the next frame into dst and reports false once src is drained.
func (f *frameReader) next(dst []float32) (bool, error) {
	for f.pos >= f.n {
		if f.eof {
			return false, nil
		}

		n, err := f.src.ReadSamples(f.buf)
		f.pos = 0
		f.n = n - n%f.channels

		switch {
		case errors.Is(err, io.EOF):
			f.eof = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			// a source that returns nothing without an error has nothing left
			f.eof = true
		}
	}

	copy(dst, f.buf[f.pos:f.pos+f.channels])
	f.pos += f.channels
	return true, nil
}
