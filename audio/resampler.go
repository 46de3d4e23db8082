// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/sampleprep/utils"
)

// passband is the share of the target Nyquist frequency kept when downsampling.
const passband = 0.9

// Resampler streams from src at a new sample rate using Catmull-Rom cubic
// interpolation over interleaved frames. The channel count and bit depth of
// src are preserved. When downsampling, src is first run through a LowPass
// cut at 90% of the target Nyquist frequency.
type Resampler struct {
	src      Source
	in       *frameReader
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1, t+2 around the read position.
	window [4][]float32
	filled [4]bool

	// fractional position between window[1] and window[2]
	pos float64

	primed bool
	eof    bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	if step > 1.0 {
		src = NewLowPass(src, passband*float64(dstRate)/2)
	}

	r := &Resampler{
		src:      src,
		in:       newFrameReader(src),
		dstRate:  dstRate,
		step:     step,
		channels: channels,
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BitDepth() int   { return r.src.BitDepth() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (r *Resampler) readFrame(dst []float32) (bool, error) {
	ok, err := r.in.next(dst)
	if !ok && err == nil {
		r.eof = true
	}
	return ok, err
}

func (r *Resampler) prime() error {
	for i := 1; i < len(r.window) && !r.eof; i++ {
		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		r.filled[i] = ok
	}

	if !r.filled[1] {
		return io.EOF
	}
	return nil
}

// advance shifts the window by one frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.filled[:], r.filled[1:])
	r.filled[3] = false

	if r.eof {
		return nil
	}

	ok, err := r.readFrame(r.window[3])
	r.filled[3] = ok
	return err
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		r.primed = true
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.filled[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			y1 := r.window[1][c]
			y2 := y1
			if r.filled[2] {
				y2 = r.window[2][c]
			}
			y0 := y1
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			y3 := y2
			if r.filled[3] {
				y3 = r.window[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
