// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// tapsPerRatio sets the filter half-length per unit of sampleRate/(2*cutoff).
const tapsPerRatio = 16

// LowPass is a linear-phase FIR low-pass filter built from a Blackman
// windowed sinc. The output has as many frames as src and is not delayed;
// the first and last frames are repeated past the edges of the stream.
type LowPass struct {
	src      Source
	in       *frameReader
	channels int
	taps     []float64
	half     int

	// ring holds len(taps) frames; the oldest starts at ring[start*channels].
	ring  []float32
	start int
	last  []float32
	// pending counts real frames at or after the centre of the window.
	pending int
	primed  bool
	acc     []float64
}

// NewLowPass filters src above cutoff Hz.
func NewLowPass(src Source, cutoff float64) *LowPass {
	channels := src.Channels()
	taps, half := lowPassTaps(float64(src.SampleRate()), cutoff)

	return &LowPass{
		src:      src,
		in:       newFrameReader(src),
		channels: channels,
		taps:     taps,
		half:     half,
		ring:     make([]float32, len(taps)*channels),
		last:     make([]float32, channels),
		acc:      make([]float64, channels),
	}
}

func lowPassTaps(sampleRate, cutoff float64) ([]float64, int) {
	fc := min(cutoff/sampleRate, 0.5)
	half := max(int(math.Ceil(tapsPerRatio/(2*fc))), 1)
	n := 2*half + 1

	taps := make([]float64, n)
	var sum float64
	for i := range taps {
		k := float64(i - half)
		sinc := 2 * fc
		if k != 0 {
			sinc = math.Sin(2*math.Pi*fc*k) / (math.Pi * k)
		}
		phase := 2 * math.Pi * float64(i) / float64(n-1)
		window := 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
		taps[i] = sinc * window
		sum += taps[i]
	}

	// unity gain at DC
	for i := range taps {
		taps[i] /= sum
	}
	return taps, half
}

func (l *LowPass) SampleRate() int { return l.src.SampleRate() }
func (l *LowPass) Channels() int   { return l.channels }
func (l *LowPass) BitDepth() int   { return l.src.BitDepth() }
func (l *LowPass) Close() error    { return l.src.Close() }

func (l *LowPass) slot(i int) []float32 {
	at := (l.start + i) % len(l.taps) * l.channels
	return l.ring[at : at+l.channels]
}

// push reads the next frame into the slot the window just released, or
// repeats the last frame once src is drained.
func (l *LowPass) push(dst []float32) (bool, error) {
	ok, err := l.in.next(dst)
	if err != nil {
		return false, err
	}
	if ok {
		copy(l.last, dst)
		return true, nil
	}
	copy(dst, l.last)
	return false, nil
}

func (l *LowPass) prime() error {
	ok, err := l.in.next(l.last)
	if err != nil || !ok {
		return err
	}

	for i := 0; i <= l.half; i++ {
		copy(l.slot(i), l.last)
	}
	l.pending = 1

	for i := l.half + 1; i < len(l.taps); i++ {
		ok, err := l.push(l.slot(i))
		if err != nil {
			return err
		}
		if ok {
			l.pending++
		}
	}
	return nil
}

// ReadSamples produces filtered interleaved samples.
// len(dst) must be a multiple of the channel count.
func (l *LowPass) ReadSamples(dst []float32) (int, error) {
	if len(dst)%l.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !l.primed {
		l.primed = true
		if err := l.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / l.channels
	written := 0

	for written < frames {
		if l.pending == 0 {
			return written * l.channels, io.EOF
		}

		clear(l.acc)
		for i, tap := range l.taps {
			for c, v := range l.slot(i) {
				l.acc[c] += tap * float64(v)
			}
		}
		for c, v := range l.acc {
			dst[written*l.channels+c] = float32(v)
		}
		written++

		// the oldest slot becomes the newest
		oldest := l.slot(0)
		l.start = (l.start + 1) % len(l.taps)
		ok, err := l.push(oldest)
		if err != nil {
			return written * l.channels, err
		}
		l.pending--
		if ok {
			l.pending++
		}
	}

	return written * l.channels, nil
}
