// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src and returns every interleaved sample it produced.
// bufferSize is rounded down to a multiple of the channel count.
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	channels := src.Channels()
	if bufferSize < channels {
		bufferSize = channels
	}
	buf := make([]float32, bufferSize-bufferSize%channels)

	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}
}
