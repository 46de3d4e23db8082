// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type mockReader struct {
	channels int
	samples  []float32
	offset   int
	err      error
}

func (m *mockReader) SampleRate() int { return 48000 }
func (m *mockReader) Channels() int   { return m.channels }

func (m *mockReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := copy(p, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func newTestSource(channels int, samples []float32) *source {
	return &source{
		dec:        &mockReader{channels: channels, samples: samples},
		sampleRate: 48000,
		channels:   channels,
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not Ogg data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_Properties(t *testing.T) {
	t.Parallel()

	src := newTestSource(2, nil)
	if src.SampleRate() != 48000 || src.Channels() != 2 || src.BitDepth() != 32 {
		t.Errorf("got %dHz/%dch/%d-bit", src.SampleRate(), src.Channels(), src.BitDepth())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_PassesSamplesThrough(t *testing.T) {
	t.Parallel()

	in := []float32{0.1, -0.1, 0.5, -0.5, 1, -1}
	src := newTestSource(2, in)

	dst := make([]float32, 6)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 6 {
		t.Fatalf("ReadSamples() = (%d, %v), want (6, nil)", n, err)
	}
	for i := range in {
		if dst[i] != in[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], in[i])
		}
	}
}

func TestSource_WholeFramesOnly(t *testing.T) {
	t.Parallel()

	src := newTestSource(2, make([]float32, 100))

	// 7 slots hold 3 stereo frames
	n, err := src.ReadSamples(make([]float32, 7))
	if err != nil || n != 6 {
		t.Errorf("ReadSamples() = (%d, %v), want (6, nil)", n, err)
	}

	n, err = src.ReadSamples(make([]float32, 1))
	if err != nil || n != 0 {
		t.Errorf("ReadSamples(1 slot) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadsToEOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(2, make([]float32, 1000))

	dst := make([]float32, 256)
	total := 0
	for range 10 {
		n, err := src.ReadSamples(dst)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	if total != 1000 {
		t.Errorf("read %d samples, want 1000", total)
	}
}

func TestSource_DecoderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt page")
	src := newTestSource(1, nil)
	src.dec = &mockReader{channels: 1, err: boom}

	if _, err := src.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}
