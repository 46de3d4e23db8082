// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/utils"
)

// pcmReader is the part of gowav.Decoder the source reads through.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("reading wav pcm: %w", err)
		}
		return 0, io.EOF
	}

	for i := range n {
		v := s.intBuf.Data[i]
		// 8-bit WAV is stored unsigned around 128
		if s.bitDepth == 8 {
			v -= 128
		}
		dst[i] = utils.PCMToFloat(v, s.bitDepth)
	}

	return n, err
}

// floatSource reads IEEE float samples straight from the data chunk.
type floatSource struct {
	r          *bufio.Reader
	sampleRate int
	channels   int
	width      int // bytes per sample
	raw        []byte
}

func (s *floatSource) SampleRate() int { return s.sampleRate }
func (s *floatSource) Channels() int   { return s.channels }
func (s *floatSource) BitDepth() int   { return s.width * 8 }
func (s *floatSource) Float() bool     { return true }
func (s *floatSource) Close() error    { return nil }

func (s *floatSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	size := len(dst) * s.width
	if cap(s.raw) < size {
		s.raw = make([]byte, size)
	}
	raw := s.raw[:size]

	read, err := io.ReadFull(s.r, raw)
	n := read / s.width
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		err = io.EOF
	case err != nil && !errors.Is(err, io.EOF):
		return 0, fmt.Errorf("reading wav float data: %w", err)
	}

	le := binary.LittleEndian
	for i := range n {
		var v float64
		if s.width == 8 {
			v = math.Float64frombits(le.Uint64(raw[i*8:]))
		} else {
			v = float64(math.Float32frombits(le.Uint32(raw[i*4:])))
		}
		if math.IsNaN(v) {
			v = 0
		}
		dst[i] = float32(v)
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, err
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits and IEEE float
// WAV files of 32 or 64 bits, with any channel count and any chunk layout
// before the data chunk. WAVE_FORMAT_EXTENSIBLE files are read by their
// SubFormat.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	info, data, err := ReadFormat(rs)
	if err != nil {
		return nil, err
	}

	switch info.Encoding {
	case FormatPCM:
		return decodePCM(rs, info)
	case FormatIEEEFloat:
		return decodeFloat(rs, info, data)
	}
	return nil, fmt.Errorf("%w: format tag 0x%04x", ErrUnsupportedEncoding, info.Encoding)
}

func decodePCM(rs io.ReadSeeker, info FormatInfo) (audio.Source, error) {
	if !ValidBitDepth(info.BitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitDepth)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding wav: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav data chunk: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: info.SampleRate,
		channels:   info.Channels,
		bitDepth:   info.BitDepth,
	}, nil
}

func decodeFloat(rs io.ReadSeeker, info FormatInfo, data Chunk) (audio.Source, error) {
	if info.BitDepth != 32 && info.BitDepth != 64 {
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedEncoding, info.BitDepth)
	}
	if info.Channels <= 0 || info.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotWavFile, info.Channels, info.SampleRate)
	}
	if data.ID != "data" {
		return nil, fmt.Errorf("%w: no data chunk", ErrNotWavFile)
	}

	if _, err := rs.Seek(data.Offset+chunkHeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("locating wav data chunk: %w", err)
	}

	return &floatSource{
		r:          bufio.NewReader(io.LimitReader(rs, int64(data.Size))),
		sampleRate: info.SampleRate,
		channels:   info.Channels,
		width:      info.BitDepth / 8,
	}, nil
}

// ValidBitDepth reports whether bits is a PCM sample width this package reads and writes.
func ValidBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}
