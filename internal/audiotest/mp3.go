// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// TaggedMP3 describes a file with ID3 tags around an opaque body. The body
// is not decodable audio; it only has to survive tag surgery unchanged.
type TaggedMP3 struct {
	// Frames are ID3v2.4 text frames keyed by frame id ("TIT2", "TPE1", ...).
	Frames map[string]string
	// V1Title, when set, appends an ID3v1 block carrying it.
	V1Title string
	Body    []byte
}

// DefaultBody is used when TaggedMP3.Body is empty.
var DefaultBody = bytes.Repeat([]byte{0x00, 0x11, 0x22, 0x33}, 64)

// Bytes renders the fixture.
func (m TaggedMP3) Bytes(tb testing.TB) []byte {
	tb.Helper()

	buf := new(bytes.Buffer)
	if len(m.Frames) > 0 {
		tag := id3v2.NewEmptyTag()
		ids := make([]string, 0, len(m.Frames))
		for id := range m.Frames {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			tag.AddTextFrame(id, tag.DefaultEncoding(), m.Frames[id])
		}
		if _, err := tag.WriteTo(buf); err != nil {
			tb.Fatalf("writing id3v2 tag: %v", err)
		}
	}

	buf.Write(m.body())

	if m.V1Title != "" {
		buf.Write(ID3v1Block(m.V1Title))
	}
	return buf.Bytes()
}

func (m TaggedMP3) body() []byte {
	if len(m.Body) == 0 {
		return DefaultBody
	}
	return m.Body
}

// Write stores the fixture at path, creating parent directories.
func (m TaggedMP3) Write(tb testing.TB, path string) string {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, m.Bytes(tb), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ID3v1Block renders a 128-byte ID3v1 tag with only a title.
func ID3v1Block(title string) []byte {
	b := make([]byte, 128)
	copy(b, "TAG")
	copy(b[3:33], title)
	b[127] = 0xFF // genre: none
	return b
}
