// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
)

// Chunk is a top-level sub-chunk of a RIFF/WAVE file.
type Chunk struct {
	ID string
	// Offset of the chunk header from the start of the file.
	Offset int64
	// Size of the payload, without the pad byte of odd-sized chunks.
	Size uint32
	// ListType is the form type of LIST chunks ("INFO", "adtl", ...).
	ListType string
	// Info holds the entries of a LIST/INFO chunk.
	Info []InfoField
}

// InfoField is one entry of a LIST/INFO chunk.
type InfoField struct {
	ID    string
	Name  string
	Value string
}

// InfoNames maps LIST/INFO entry ids to readable names.
var InfoNames = map[string]string{
	"IARL": "ArchivalLocation",
	"IART": "Artist",
	"ICMS": "Commissioned",
	"ICMT": "Comment",
	"ICOP": "Copyright",
	"ICRD": "DateCreated",
	"IENG": "Engineer",
	"IGNR": "Genre",
	"IKEY": "Keywords",
	"IMED": "Medium",
	"INAM": "Title",
	"IPRD": "Product",
	"ISBJ": "Subject",
	"ISFT": "Software",
	"ISRC": "Source",
	"ISRF": "SourceForm",
	"ITCH": "Technician",
	"ITRK": "Track",
}

// ReadChunks lists the chunks of a WAVE file in file order. LIST/INFO
// payloads are decoded into Info; other payloads are skipped.
func ReadChunks(r io.ReadSeeker) ([]Chunk, error) {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("sizing wav: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding wav: %w", err)
	}

	header := make([]byte, riffHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrNotWavFile
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, ErrNotWavFile
	}

	var chunks []Chunk
	offset := int64(riffHeaderSize)
	hdr := make([]byte, chunkHeaderSize)

	for offset < end {
		if _, err := r.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking chunk at %d: %w", offset, err)
		}

		if _, err := io.ReadFull(r, hdr); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				// trailing junk shorter than a chunk header
				break
			}
			return nil, fmt.Errorf("reading chunk at %d: %w", offset, err)
		}

		c := Chunk{
			ID:     string(hdr[0:4]),
			Offset: offset,
			Size:   binary.LittleEndian.Uint32(hdr[4:8]),
		}

		if offset+chunkHeaderSize+int64(c.Size) > end {
			return nil, fmt.Errorf("%w: %q at %d", ErrTruncatedChunk, c.ID, offset)
		}

		if c.ID == "LIST" && c.Size >= 4 {
			payload := make([]byte, c.Size)
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, fmt.Errorf("reading LIST chunk: %w", err)
			}
			c.ListType = string(payload[0:4])
			if c.ListType == "INFO" {
				c.Info = parseInfo(payload[4:])
			}
		}

		chunks = append(chunks, c)
		offset += chunkHeaderSize + padded(c.Size)
	}

	return chunks, nil
}

// StripChunks copies the WAVE file in r to w, keeping only the chunks for
// which keep returns true, in their original order and byte for byte. It
// returns the chunks left out.
func StripChunks(r io.ReadSeeker, w io.Writer, keep func(id string) bool) ([]Chunk, error) {
	chunks, err := ReadChunks(r)
	if err != nil {
		return nil, err
	}

	var kept, dropped []Chunk
	riffSize := int64(4) // "WAVE"
	for _, c := range chunks {
		if keep(c.ID) {
			kept = append(kept, c)
			riffSize += chunkHeaderSize + padded(c.Size)
			continue
		}
		dropped = append(dropped, c)
	}

	header := make([]byte, riffHeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(riffSize))
	copy(header[8:12], "WAVE")

	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing riff header: %w", err)
	}

	for _, c := range kept {
		if _, err := r.Seek(c.Offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking chunk %q: %w", c.ID, err)
		}
		if _, err := io.CopyN(w, r, chunkHeaderSize+int64(c.Size)); err != nil {
			return nil, fmt.Errorf("copying chunk %q: %w", c.ID, err)
		}
		// the source may lack the pad byte of its last chunk
		if c.Size%2 != 0 {
			if _, err := w.Write([]byte{0}); err != nil {
				return nil, fmt.Errorf("padding chunk %q: %w", c.ID, err)
			}
		}
	}

	return dropped, nil
}

func parseInfo(b []byte) []InfoField {
	var fields []InfoField
	pos := 0
	for pos+chunkHeaderSize <= len(b) {
		id := string(b[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(b[pos+4 : pos+8]))
		pos += chunkHeaderSize
		if pos+size > len(b) {
			break
		}

		value := string(bytes.TrimRight(b[pos:pos+size], "\x00"))
		name := InfoNames[id]
		if name == "" {
			name = id
		}
		fields = append(fields, InfoField{ID: id, Name: name, Value: value})

		pos += size
		if size%2 != 0 {
			pos++
		}
	}
	return fields
}

func padded(size uint32) int64 {
	return int64(size) + int64(size%2)
}
