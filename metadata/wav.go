// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/ik5/sampleprep/formats/wav"
	"github.com/ik5/sampleprep/utils"
)

// DefaultKeep is the chunk allow-list for WAV files: the format, the
// samples and the sample count of compressed files.
var DefaultKeep = []string{"fmt ", "data", "fact"}

// WAVStripper drops every RIFF chunk not in its allow-list.
type WAVStripper struct {
	keep map[string]bool
}

// NewWAVStripper builds a stripper keeping the given chunk ids. Ids are
// padded with spaces to four characters, so "fmt" means "fmt ". With no
// ids DefaultKeep is used; fmt and data are always kept.
func NewWAVStripper(keep ...string) *WAVStripper {
	if len(keep) == 0 {
		keep = DefaultKeep
	}

	s := &WAVStripper{keep: map[string]bool{"fmt ": true, "data": true}}
	for _, id := range keep {
		s.keep[ChunkID(id)] = true
	}
	return s
}

// ChunkID normalizes a configured chunk id to its four-byte form.
func ChunkID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) < 4 {
		id += strings.Repeat(" ", 4-len(id))
	}
	return id
}

func (s *WAVStripper) keeps(id string) bool { return s.keep[id] }

func (s *WAVStripper) Inspect(path string) ([]Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chunks, err := wav.ReadChunks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var fields []Field
	for _, c := range chunks {
		if s.keeps(c.ID) {
			continue
		}

		switch {
		case c.ListType == "INFO" && len(c.Info) > 0:
			for _, info := range c.Info {
				fields = append(fields, Field{Key: info.Name, Value: info.Value})
			}
		case c.ListType != "":
			fields = append(fields, Field{Key: "LIST/" + strings.TrimSpace(c.ListType)})
		default:
			fields = append(fields, Field{Key: strings.TrimSpace(c.ID)})
		}
	}
	return fields, nil
}

func (s *WAVStripper) Strip(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	return utils.ReplaceFile(path, func(tmp *os.File) error {
		_, err := wav.StripChunks(src, tmp, s.keeps)
		return err
	})
}
