// SPDX-License-Identifier: EPL-2.0

package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ik5/sampleprep/audio"
)

// Target describes what a sampler accepts. Converted files never exceed the
// Max* limits; material already below a limit keeps its own value.
type Target struct {
	Name string
	// Format is the container and file extension, without the dot.
	Format        string
	MaxSampleRate int // Hz
	MaxBitDepth   int // bits per sample
	MaxChannels   int // 0 keeps the source channel count
}

// AlesisStrikeMultipad is 16-bit WAV at up to 44.1 kHz, mono or stereo.
var AlesisStrikeMultipad = Target{
	Name:          "alesis-strike-multipad",
	Format:        "wav",
	MaxSampleRate: 44100,
	MaxBitDepth:   16,
	MaxChannels:   2,
}

// Default is the profile used when none is named.
var Default = AlesisStrikeMultipad

var builtin = []Target{
	AlesisStrikeMultipad,
	{
		Name:          "cd-wav",
		Format:        "wav",
		MaxSampleRate: 44100,
		MaxBitDepth:   16,
		MaxChannels:   2,
	},
	{
		Name:          "studio-wav",
		Format:        "wav",
		MaxSampleRate: 96000,
		MaxBitDepth:   24,
	},
	{
		Name:          "lofi-mono",
		Format:        "wav",
		MaxSampleRate: 22050,
		MaxBitDepth:   8,
		MaxChannels:   1,
	},
}

// encoders lists the formats converted files can be written in.
var encoders = []string{"wav"}

// All returns the built-in profiles sorted by name.
func All() []Target {
	out := slices.Clone(builtin)
	slices.SortFunc(out, func(a, b Target) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Lookup finds a built-in profile by name, ignoring case.
func Lookup(name string) (Target, error) {
	for _, t := range builtin {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Validate checks that converted files can actually be written for t.
func (t Target) Validate() error {
	format := audio.FormatKey(t.Format)
	if format == "" {
		return ErrEmptyFormat
	}
	if !slices.Contains(encoders, format) {
		return fmt.Errorf("%w: %q", ErrNoEncoder, t.Format)
	}

	switch t.MaxBitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidBitDepth, t.MaxBitDepth)
	}

	if t.MaxSampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, t.MaxSampleRate)
	}

	if t.MaxChannels < 0 || t.MaxChannels > 2 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, t.MaxChannels)
	}

	return nil
}

// Extension is the dotted, lowercase file extension of the target format.
func (t Target) Extension() string {
	return "." + audio.FormatKey(t.Format)
}

func (t Target) String() string {
	channels := "any"
	switch t.MaxChannels {
	case 1:
		channels = "mono"
	case 2:
		channels = "mono/stereo"
	}
	return fmt.Sprintf("%s: %s, %d-bit, <= %d Hz, %s",
		t.Name, strings.ToUpper(audio.FormatKey(t.Format)), t.MaxBitDepth, t.MaxSampleRate, channels)
}
