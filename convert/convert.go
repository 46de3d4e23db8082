// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/formats/aiff"
	"github.com/ik5/sampleprep/formats/mp3"
	"github.com/ik5/sampleprep/formats/vorbis"
	"github.com/ik5/sampleprep/formats/wav"
	"github.com/ik5/sampleprep/profile"
	"github.com/ik5/sampleprep/utils"
)

// EncodeFunc writes src to w at the given bit depth.
type EncodeFunc func(w io.WriteSeeker, src audio.Source, bitDepth int) error

var encoders = map[string]EncodeFunc{
	"wav": wav.Encode,
}

// DefaultDecoders returns a registry with every input format supported.
func DefaultDecoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

// Commander plans conversions towards one target.
type Commander struct {
	target   profile.Target
	decoders *audio.Registry
	encode   EncodeFunc

	// claimed maps planned destinations to the file converted into them.
	claimed map[string]string

	skip func(path string, err error)
}

// NewCommander validates target and builds a commander reading through
// decoders (DefaultDecoders when nil).
func NewCommander(target profile.Target, decoders *audio.Registry) (*Commander, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	encode, ok := encoders[audio.FormatKey(target.Format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEncoder, target.Format)
	}

	if decoders == nil {
		decoders = DefaultDecoders()
	}

	return &Commander{
		target:   target,
		decoders: decoders,
		encode:   encode,
		claimed:  make(map[string]string),
	}, nil
}

// OnSkip sets the function told about files left alone because their
// encoding cannot be decoded.
func (c *Commander) OnSkip(fn func(path string, err error)) {
	c.skip = fn
}

// Unsupported reports whether err comes from a decoder that recognized the
// container but not the encoding inside it.
func Unsupported(err error) bool {
	return errors.Is(err, wav.ErrUnsupportedEncoding) ||
		errors.Is(err, wav.ErrUnsupportedBitDepth) ||
		errors.Is(err, aiff.ErrUnsupportedBitDepth) ||
		errors.Is(err, aiff.ErrUnsupportedAiffLayout)
}

// Supports reports whether path can be read; it is the pass predicate.
func (c *Commander) Supports(path string) bool {
	return c.decoders.Supports(path)
}

func (c *Commander) Command(path string) (batch.Command, error) {
	dec, ok := c.decoders.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDecoder, filepath.Ext(path))
	}

	from, err := probe(path, dec)
	if Unsupported(err) {
		if c.skip != nil {
			c.skip(path, err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	scaling := NewScaling(from, c.target)
	if !scaling.NeedsConversion() {
		return nil, nil
	}

	dst := strings.TrimSuffix(path, filepath.Ext(path)) + c.target.Extension()
	if err := c.claim(path, dst); err != nil {
		return nil, err
	}

	return &ConvertCommand{
		Source:      path,
		Destination: dst,
		Scaling:     scaling,
		decoder:     dec,
		encode:      c.encode,
	}, nil
}

func (c *Commander) claim(src, dst string) error {
	if owner, ok := c.claimed[dst]; ok && owner != src {
		return fmt.Errorf("%w: %s is also the target of %s", ErrDestination, dst, owner)
	}

	if dst != src {
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%w: %s exists", ErrDestination, dst)
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	c.claimed[dst] = src
	return nil
}

func probe(path string, dec audio.Decoder) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Format{}, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return Format{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	return SourceFormat(filepath.Ext(path), src), nil
}

// ConvertCommand rewrites one file as described by its Scaling.
type ConvertCommand struct {
	Source      string
	Destination string
	Scaling     Scaling

	decoder audio.Decoder
	encode  EncodeFunc
}

func (c *ConvertCommand) Description() string {
	name := filepath.Base(c.Source)
	if c.Destination != c.Source {
		name += " -> " + filepath.Base(c.Destination)
	}
	return fmt.Sprintf("Convert audio : %s (%s)", c.Scaling, name)
}

func (c *ConvertCommand) Execute() error {
	err := utils.WriteFile(c.Source, c.Destination, c.write)
	if err != nil {
		return fmt.Errorf("converting %s: %w", c.Source, err)
	}

	if c.Destination != c.Source {
		if err := os.Remove(c.Source); err != nil {
			return fmt.Errorf("removing %s: %w", c.Source, err)
		}
	}
	return nil
}

func (c *ConvertCommand) write(out *os.File) error {
	in, err := os.Open(c.Source)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := c.decoder.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	chain, err := c.chain(src)
	if err != nil {
		src.Close()
		return err
	}
	defer chain.Close()

	return c.encode(out, chain, c.Scaling.To.BitDepth)
}

// chain stacks the resampler and downmixer on src as needed.
func (c *ConvertCommand) chain(src audio.Source) (audio.Source, error) {
	to := c.Scaling.To

	if src.SampleRate() != to.SampleRate {
		src = audio.NewResampler(src, to.SampleRate)
	}

	if src.Channels() != to.Channels {
		mixed, err := audio.NewDownmixer(src, to.Channels)
		if err != nil {
			return nil, fmt.Errorf("downmixing to %d channels: %w", to.Channels, err)
		}
		src = mixed
	}

	return src, nil
}
