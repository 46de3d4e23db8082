// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Downmixer folds a source into fewer channels. Mono output averages every
// source channel; stereo output averages the even source channels into the
// left channel and the odd ones into the right.
type Downmixer struct {
	src Source
	out int
	tmp []float32
}

// NewDownmixer wraps src so it produces channels channels. When src already
// has channels or fewer channels it is passed through untouched.
func NewDownmixer(src Source, channels int) (*Downmixer, error) {
	if channels != 1 && channels != 2 {
		return nil, ErrInvalidChannels
	}

	out := channels
	if src.Channels() < out {
		out = src.Channels()
	}

	return &Downmixer{
		src: src,
		out: out,
		tmp: make([]float32, 4096),
	}, nil
}

func (m *Downmixer) SampleRate() int { return m.src.SampleRate() }
func (m *Downmixer) Channels() int   { return m.out }
func (m *Downmixer) BitDepth() int   { return m.src.BitDepth() }

func (m *Downmixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *Downmixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / in

	switch m.out {
	case 1:
		scale := float32(1) / float32(in)
		for f := range got {
			base := f * in
			var sum float32
			for c := range in {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * scale
		}
	case 2:
		left := float32(1) / float32((in+1)/2)
		right := float32(1) / float32(in/2)
		for f := range got {
			base := f * in
			var l, r float32
			for c := range in {
				if c%2 == 0 {
					l += m.tmp[base+c]
				} else {
					r += m.tmp[base+c]
				}
			}
			dst[2*f] = l * left
			dst[2*f+1] = r * right
		}
	}

	return got * m.out, err
}
