// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming building blocks the converter chains
// together: the Source interface, the decoder Registry, the Resampler with
// its LowPass filter, and the Downmixer.
//
// # Source
//
// Every decoder and processor is a Source producing interleaved float32
// samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// BitDepth is the width of the encoded material the samples came from.
// Processors pass it through so the writer can decide whether to requantize.
//
// # Chaining
//
//	src, _ := wav.Decoder{}.Decode(file)  // 24-bit 48 kHz stereo
//	r := audio.NewResampler(src, 44100)
//	m, _ := audio.NewDownmixer(r, 1)      // 44.1 kHz mono
//	samples, err := audio.ReadAll(m, 4096)
//
// Closing the outermost processor closes the whole chain. A Resampler that
// lowers the rate filters its input with a LowPass first, so material above
// the new Nyquist frequency does not fold back into the audible band.
//
// # Registry
//
// A Registry maps file extensions to decoders; lookups are case-insensitive
// and ignore a leading dot:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.Lookup("Kick.WAV")
//
// # End of stream
//
// ReadSamples returns io.EOF, possibly together with the last samples, once
// the stream is exhausted. Any other error is a decoding failure.
package audio
