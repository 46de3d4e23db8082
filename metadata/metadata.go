// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/batch"
)

// maxValueLen caps how much of a tag value ends up in a plan line.
const maxValueLen = 40

// Field is one piece of embedded metadata. Value is empty for opaque blocks
// such as a bext chunk.
type Field struct {
	Key   string
	Value string
}

func (f Field) String() string {
	if f.Value == "" {
		return f.Key
	}
	v := []rune(f.Value)
	if len(v) > maxValueLen {
		return f.Key + "=" + string(v[:maxValueLen]) + "..."
	}
	return f.Key + "=" + f.Value
}

// Stripper inspects and removes the metadata of one file format.
type Stripper interface {
	// Inspect lists the metadata Strip would remove.
	Inspect(path string) ([]Field, error)
	// Strip rewrites path without its metadata.
	Strip(path string) error
}

// ForFormat returns the stripper for a format key ("wav", ".MP3", ...).
// keep is the WAV chunk allow-list; nil means DefaultKeep.
func ForFormat(format string, keep []string) (Stripper, error) {
	switch audio.FormatKey(format) {
	case "wav", "wave":
		return NewWAVStripper(keep...), nil
	case "mp3":
		return ID3Stripper{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Formats lists the format keys ForFormat accepts.
func Formats() []string {
	return []string{"mp3", "wav", "wave"}
}

// Commander plans a StripCommand for every file that carries metadata.
type Commander struct {
	Stripper Stripper
}

func (c Commander) Command(path string) (batch.Command, error) {
	fields, err := c.Stripper.Inspect(path)
	if err != nil {
		return nil, fmt.Errorf("inspecting metadata: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &StripCommand{Path: path, Fields: fields, Stripper: c.Stripper}, nil
}

// StripCommand removes the metadata found in one file.
type StripCommand struct {
	Path     string
	Fields   []Field
	Stripper Stripper
}

func (c *StripCommand) Description() string {
	items := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		items[i] = f.String()
	}
	return fmt.Sprintf("Delete metadata : [%s] (%s)", strings.Join(items, ", "), filepath.Base(c.Path))
}

func (c *StripCommand) Execute() error {
	if err := c.Stripper.Strip(c.Path); err != nil {
		return fmt.Errorf("stripping %s: %w", c.Path, err)
	}
	return nil
}
