// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

type brokenSource struct {
	*mockSource
}

func (b brokenSource) ReadSamples(dst []float32) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		frames     int
		bufferSize int
	}{
		{"mono small buffer", 1, 100, 7},
		{"stereo odd buffer", 2, 100, 9},
		{"buffer smaller than a frame", 2, 10, 1},
		{"empty source", 2, 0, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples, err := ReadAll(newConstantSource(8000, tt.channels, tt.frames, 0.1), tt.bufferSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(samples) != tt.frames*tt.channels {
				t.Errorf("got %d samples, want %d", len(samples), tt.frames*tt.channels)
			}
		})
	}
}

func TestReadAll_Error(t *testing.T) {
	t.Parallel()

	_, err := ReadAll(brokenSource{newSilentSource(8000, 1, 10)}, 16)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadAll() error = %v, want io.ErrUnexpectedEOF", err)
	}
}
