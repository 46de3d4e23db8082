// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

const id3v1Size = 128

// ID3Stripper removes ID3v2 frames and a trailing ID3v1 block from MP3 files.
type ID3Stripper struct{}

func (ID3Stripper) Inspect(path string) ([]Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fields []Field

	m, err := tag.ReadFrom(f)
	switch {
	case errors.Is(err, tag.ErrNoTagsFound):
	case err != nil:
		return nil, fmt.Errorf("reading tags of %s: %w", path, err)
	default:
		raw := m.Raw()
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: fmt.Sprint(raw[k])})
		}
		if len(fields) == 0 {
			fields = append(fields, Field{Key: string(m.Format())})
		}
	}

	v1, err := hasID3v1(f)
	if err != nil {
		return nil, err
	}
	if v1 && (m == nil || m.Format() != tag.ID3v1) {
		fields = append(fields, Field{Key: string(tag.ID3v1)})
	}

	return fields, nil
}

func (ID3Stripper) Strip(path string) error {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening id3v2 tag: %w", err)
	}

	t.DeleteAllFrames()
	if err := t.Save(); err != nil {
		t.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := t.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return truncateID3v1(path)
}

func hasID3v1(f io.ReadSeeker) (bool, error) {
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return false, err
	}
	if end < id3v1Size {
		return false, nil
	}

	if _, err := f.Seek(-id3v1Size, io.SeekEnd); err != nil {
		return false, err
	}
	marker := make([]byte, 3)
	if _, err := io.ReadFull(f, marker); err != nil {
		return false, err
	}
	return string(marker) == "TAG", nil
}

func truncateID3v1(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	v1, err := hasID3v1(f)
	if err != nil || !v1 {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if err := f.Truncate(info.Size() - id3v1Size); err != nil {
		return fmt.Errorf("removing id3v1 block: %w", err)
	}
	return nil
}
