// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/utils"
)

// encodeFrames is how many frames are converted per encoder write.
const encodeFrames = 4096

// Encode drains src into w as an integer PCM WAV of the given bit depth,
// keeping the source sample rate and channel count. The file carries only
// the fmt and data chunks.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) error {
	if !ValidBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	if channels < 1 {
		return fmt.Errorf("%w: %d", audio.ErrInvalidChannels, channels)
	}

	enc := gowav.NewEncoder(w, src.SampleRate(), bitDepth, channels, FormatPCM)

	samples := make([]float32, encodeFrames*channels)
	buf := &goaudio.IntBuffer{
		Data: make([]int, len(samples)),
		Format: &goaudio.Format{
			SampleRate:  src.SampleRate(),
			NumChannels: channels,
		},
		SourceBitDepth: bitDepth,
	}

	// an empty write still emits the headers
	wrote := false
	for {
		n, err := src.ReadSamples(samples)
		if n > 0 {
			buf.Data = buf.Data[:n]
			for i, x := range samples[:n] {
				v := utils.FloatToPCM(x, bitDepth)
				if bitDepth == 8 {
					v += 128
				}
				buf.Data[i] = v
			}

			if werr := enc.Write(buf); werr != nil {
				return fmt.Errorf("writing wav pcm: %w", werr)
			}
			wrote = true
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
	}

	if !wrote {
		buf.Data = buf.Data[:0]
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}
