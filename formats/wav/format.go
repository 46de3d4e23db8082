// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// WAVE format tags.
const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatExtensible = 0xFFFE
)

const (
	fmtBaseSize       = 16
	fmtExtensibleSize = 40
)

// subFormatSuffix is the tail shared by every KSDATAFORMAT_SUBTYPE GUID; the
// first two bytes carry the format tag.
var subFormatSuffix = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// FormatInfo is the decoded fmt chunk of a WAVE file.
type FormatInfo struct {
	// Tag is the format tag as stored, FormatExtensible included.
	Tag uint16
	// Encoding is the effective format tag: Tag, or the SubFormat of an
	// extensible fmt chunk.
	Encoding   uint16
	Channels   int
	SampleRate int
	BitDepth   int
}

// Float reports whether samples are IEEE floating point.
func (f FormatInfo) Float() bool { return f.Encoding == FormatIEEEFloat }

// ReadFormat decodes the fmt chunk of the WAVE file in r and returns it with
// the data chunk. A file without a data chunk is reported with a zero Chunk.
func ReadFormat(r io.ReadSeeker) (FormatInfo, Chunk, error) {
	chunks, err := ReadChunks(r)
	if err != nil {
		return FormatInfo{}, Chunk{}, err
	}

	var fmtChunk, data *Chunk
	for i := range chunks {
		switch chunks[i].ID {
		case "fmt ":
			if fmtChunk == nil {
				fmtChunk = &chunks[i]
			}
		case "data":
			if data == nil {
				data = &chunks[i]
			}
		}
	}

	if fmtChunk == nil {
		return FormatInfo{}, Chunk{}, fmt.Errorf("%w: no fmt chunk", ErrNotWavFile)
	}
	if fmtChunk.Size < fmtBaseSize {
		return FormatInfo{}, Chunk{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrTruncatedChunk, fmtChunk.Size)
	}

	if _, err := r.Seek(fmtChunk.Offset+chunkHeaderSize, io.SeekStart); err != nil {
		return FormatInfo{}, Chunk{}, fmt.Errorf("seeking fmt chunk: %w", err)
	}
	payload := make([]byte, min(fmtChunk.Size, fmtExtensibleSize))
	if _, err := io.ReadFull(r, payload); err != nil {
		return FormatInfo{}, Chunk{}, fmt.Errorf("reading fmt chunk: %w", err)
	}

	info, err := parseFormat(payload)
	if err != nil {
		return FormatInfo{}, Chunk{}, err
	}

	if data == nil {
		return info, Chunk{}, nil
	}
	return info, *data, nil
}

func parseFormat(b []byte) (FormatInfo, error) {
	le := binary.LittleEndian
	info := FormatInfo{
		Tag:        le.Uint16(b[0:2]),
		Channels:   int(le.Uint16(b[2:4])),
		SampleRate: int(le.Uint32(b[4:8])),
		BitDepth:   int(le.Uint16(b[14:16])),
	}
	info.Encoding = info.Tag

	if info.Tag != FormatExtensible {
		return info, nil
	}

	// cbSize must cover valid bits, channel mask and the SubFormat GUID
	if len(b) < fmtExtensibleSize || le.Uint16(b[16:18]) < 22 {
		return info, fmt.Errorf("%w: extensible fmt chunk without SubFormat", ErrUnsupportedEncoding)
	}

	guid := b[24:40]
	if !bytes.Equal(guid[2:], subFormatSuffix) {
		return info, fmt.Errorf("%w: SubFormat % x", ErrUnsupportedEncoding, guid)
	}
	info.Encoding = le.Uint16(guid[0:2])
	return info, nil
}
