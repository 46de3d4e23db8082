// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"fmt"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/profile"
)

// Format is the encoded shape of an audio file.
type Format struct {
	Container  string
	SampleRate int
	BitDepth   int
	Channels   int
	// Float marks IEEE float samples; targets are always integer PCM.
	Float bool
}

// SourceFormat describes src as stored in the given container. Sources with
// a Float() bool method reporting true are float.
func SourceFormat(container string, src audio.Source) Format {
	f := Format{
		Container:  audio.FormatKey(container),
		SampleRate: src.SampleRate(),
		BitDepth:   src.BitDepth(),
		Channels:   src.Channels(),
	}
	if fs, ok := src.(interface{ Float() bool }); ok {
		f.Float = fs.Float()
	}
	return f
}

func (f Format) String() string {
	depth := fmt.Sprintf("%d-bit", f.BitDepth)
	if f.Float {
		depth += " float"
	}
	return fmt.Sprintf("%s|%dHz|%dch", depth, f.SampleRate, f.Channels)
}

// Scaling is the change needed to bring a file within a target.
type Scaling struct {
	From Format
	To   Format
}

// NewScaling caps every property of from at the target limits.
func NewScaling(from Format, target profile.Target) Scaling {
	to := Format{
		Container:  audio.FormatKey(target.Format),
		SampleRate: min(from.SampleRate, target.MaxSampleRate),
		BitDepth:   min(from.BitDepth, target.MaxBitDepth),
		Channels:   from.Channels,
	}
	if target.MaxChannels > 0 {
		to.Channels = min(from.Channels, target.MaxChannels)
	}
	return Scaling{From: from, To: to}
}

// NeedsConversion reports whether the file has to be rewritten.
func (s Scaling) NeedsConversion() bool {
	return s.From != s.To
}

func (s Scaling) String() string {
	return s.From.String() + " -> " + s.To.String()
}
