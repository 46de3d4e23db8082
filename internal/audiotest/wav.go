// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// RawChunk is an extra RIFF chunk written verbatim into a fixture.
type RawChunk struct {
	ID   string
	Data []byte
}

// WAV describes a PCM or IEEE float WAV fixture. Chunks are laid out as
// fmt, Extra..., LIST/INFO (when Info is set), data.
type WAV struct {
	SampleRate int
	BitDepth   int
	Channels   int
	Frames     int
	// Float stores samples as IEEE float; BitDepth must be 32 or 64.
	Float bool
	// Extensible writes a WAVE_FORMAT_EXTENSIBLE fmt chunk whose SubFormat
	// follows Float, or SubFormat when it is set.
	Extensible bool
	SubFormat  uint16
	// Waveform defaults to a 440 Hz sine at half scale.
	Waveform func(frame, channel int) float32
	// Info entries, keyed by INFO id ("INAM", "IART", ...).
	Info  map[string]string
	Extra []RawChunk
}

// Bytes renders the fixture.
func (w WAV) Bytes() []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	writeChunk(body, "fmt ", w.fmtPayload())

	for _, c := range w.Extra {
		writeChunk(body, c.ID, c.Data)
	}

	if len(w.Info) > 0 {
		writeChunk(body, "LIST", infoPayload(w.Info))
	}

	writeChunk(body, "data", w.PCM())

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	_ = binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func (w WAV) fmtPayload() []byte {
	encoding := uint16(1)
	if w.Float {
		encoding = 3
	}
	tag := encoding
	if w.Extensible {
		tag = 0xFFFE
		if w.SubFormat != 0 {
			encoding = w.SubFormat
		}
	}

	blockAlign := w.Channels * w.BitDepth / 8
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, tag)
	_ = binary.Write(buf, binary.LittleEndian, uint16(w.Channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(w.SampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(w.SampleRate*blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(w.BitDepth))

	if w.Extensible {
		_ = binary.Write(buf, binary.LittleEndian, uint16(22))         // cbSize
		_ = binary.Write(buf, binary.LittleEndian, uint16(w.BitDepth)) // valid bits
		_ = binary.Write(buf, binary.LittleEndian, uint32(0))          // channel mask
		_ = binary.Write(buf, binary.LittleEndian, encoding)
		buf.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	}
	return buf.Bytes()
}

// PCM renders only the data chunk payload.
func (w WAV) PCM() []byte {
	wave := w.Waveform
	if wave == nil {
		wave = Sine(w.SampleRate, 440, 0.5)
	}

	if w.Float {
		buf := new(bytes.Buffer)
		for frame := range w.Frames {
			for ch := range w.Channels {
				v := wave(frame, ch)
				if w.BitDepth == 64 {
					_ = binary.Write(buf, binary.LittleEndian, float64(v))
				} else {
					_ = binary.Write(buf, binary.LittleEndian, v)
				}
			}
		}
		return buf.Bytes()
	}

	scale := float64(int64(1) << (w.BitDepth - 1))
	buf := new(bytes.Buffer)
	for frame := range w.Frames {
		for ch := range w.Channels {
			v := int64(math.Round(float64(wave(frame, ch)) * scale))
			v = max(min(v, int64(scale)-1), -int64(scale))
			switch w.BitDepth {
			case 8:
				buf.WriteByte(byte(v + 128))
			case 16:
				_ = binary.Write(buf, binary.LittleEndian, int16(v))
			case 24:
				buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
			case 32:
				_ = binary.Write(buf, binary.LittleEndian, int32(v))
			}
		}
	}
	return buf.Bytes()
}

// Write stores the fixture at path, creating parent directories.
func (w WAV) Write(tb testing.TB, path string) string {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, w.Bytes(), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Touch creates an empty file at path, creating parent directories.
func Touch(tb testing.TB, path string) string {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 != 0 {
		buf.WriteByte(0)
	}
}

// infoPayload renders a LIST/INFO payload with NUL-terminated values padded
// to an even size, in a stable id order.
func infoPayload(info map[string]string) []byte {
	ids := make([]string, 0, len(info))
	for id := range info {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	buf := new(bytes.Buffer)
	buf.WriteString("INFO")
	for _, id := range ids {
		value := []byte(info[id] + "\x00")
		if len(value)%2 != 0 {
			value = append(value, 0)
		}
		writeChunk(buf, id, value)
	}
	return buf.Bytes()
}
