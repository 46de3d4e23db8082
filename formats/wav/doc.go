// SPDX-License-Identifier: EPL-2.0

// Package wav reads, writes and cleans RIFF/WAVE files.
//
// Integer PCM goes through github.com/go-audio/wav at 8, 16, 24 and 32 bits
// in both directions. The decoder also reads 32 and 64-bit IEEE float, and
// follows the SubFormat of WAVE_FORMAT_EXTENSIBLE files. Chunks between fmt
// and data are skipped.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	n, err := src.ReadSamples(buf) // float32 in [-1, 1]
//
// Encode drains an audio.Source into a file at the requested depth. The
// result holds only the fmt and data chunks:
//
//	out, _ := os.Create("kick.wav")
//	err := wav.Encode(out, src, 16)
//
// # Chunks
//
// ReadChunks walks the top-level chunks and decodes LIST/INFO entries
// (Title, Artist, Comment, ...). StripChunks rewrites a file keeping only the
// chunks a predicate accepts, copying them byte for byte:
//
//	keep := func(id string) bool { return id == "fmt " || id == "data" }
//	dropped, err := wav.StripChunks(in, out, keep)
//
// # Errors
//
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrUnsupportedEncoding: ADPCM, 16-bit float and other encodings
//   - ErrUnsupportedBitDepth: widths other than 8, 16, 24 and 32
//   - ErrTruncatedChunk: a chunk runs past the end of the file
package wav
