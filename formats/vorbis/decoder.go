// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/sampleprep/audio"
)

// Vorbis decodes to float; converted files treat it as 32-bit material.
const floatBitDepth = 32

// oggReader is the part of oggvorbis.Reader the source reads through.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return floatBitDepth }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}

	// Read is sized and counted in samples, interleaved
	n, err := s.dec.Read(dst[:frames*s.channels])
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("decoding vorbis: %w", err)
		}
		return 0, io.EOF
	}

	return n, err
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	if dec.Channels() < 1 {
		return nil, fmt.Errorf("opening ogg stream: %w", audio.ErrInvalidChannels)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
