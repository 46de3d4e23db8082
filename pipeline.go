// SPDX-License-Identifier: EPL-2.0

package sampleprep

import (
	"fmt"
	"io"

	"github.com/ik5/sampleprep/audio"
	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/convert"
	"github.com/ik5/sampleprep/metadata"
	"github.com/ik5/sampleprep/naming"
	"github.com/ik5/sampleprep/profile"
)

// Pass names, as shown on progress bars and in results.
const (
	PassNormalize = "normalize"
	PassStrip     = "strip"
	PassConvert   = "convert"
)

// Options tunes the passes. The zero value renames with title casing,
// strips the default chunk set, asks nobody and prints nothing.
type Options struct {
	// Formatters build new file names; nil means naming.DefaultFormatters.
	Formatters []naming.Formatter
	// Keep lists the WAV chunks that survive stripping; nil means
	// metadata.DefaultKeep.
	Keep []string
	// StripFormat selects the files StripMetadata visits; empty means the
	// target format.
	StripFormat string
	// Decoders reads input files; nil means convert.DefaultDecoders.
	Decoders *audio.Registry
	// Skipped hears about files the convert pass leaves alone because their
	// encoding cannot be decoded.
	Skipped func(path string, err error)

	Out      io.Writer
	Confirm  batch.Confirmer
	DryRun   bool
	Progress io.Writer
}

func (o Options) batch() batch.Options {
	return batch.Options{
		Out:      o.Out,
		Confirm:  o.Confirm,
		DryRun:   o.DryRun,
		Progress: o.Progress,
	}
}

func (o Options) decoders() *audio.Registry {
	if o.Decoders == nil {
		return convert.DefaultDecoders()
	}
	return o.Decoders
}

// NormalizeFilenames renames every audio file under root. The target is not
// used for naming; it is accepted so all passes share one signature.
func NormalizeFilenames(root string, _ profile.Target, opts Options) (batch.Result, error) {
	decoders := opts.decoders()
	renamer := naming.NewRenamer(opts.Formatters...)

	return batch.Run(PassNormalize, root, decoders.Supports, renamer, opts.batch())
}

// StripMetadata removes embedded metadata from the files under root that
// are in the strip format.
func StripMetadata(root string, target profile.Target, opts Options) (batch.Result, error) {
	format := stripFormat(target, opts)
	stripper, err := metadata.ForFormat(format, opts.Keep)
	if err != nil {
		return batch.Result{Pass: PassStrip}, err
	}

	return batch.Run(PassStrip, root, batch.Extensions(format), metadata.Commander{Stripper: stripper}, opts.batch())
}

// ConvertFormat re-encodes the files under root that do not fit target.
func ConvertFormat(root string, target profile.Target, opts Options) (batch.Result, error) {
	c, err := convert.NewCommander(target, opts.decoders())
	if err != nil {
		return batch.Result{Pass: PassConvert}, fmt.Errorf("target %s: %w", target.Name, err)
	}
	c.OnSkip(opts.Skipped)

	return batch.Run(PassConvert, root, c.Supports, c, opts.batch())
}

type pass func(root string, target profile.Target, opts Options) (batch.Result, error)

// Run normalizes, strips and converts root in that order. It stops at the
// first pass that fails or is declined and returns the results so far.
func Run(root string, target profile.Target, opts Options) ([]batch.Result, error) {
	if err := batch.CheckRoot(root); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target %s: %w", target.Name, err)
	}
	if _, err := metadata.ForFormat(stripFormat(target, opts), opts.Keep); err != nil {
		return nil, err
	}

	passes := []pass{NormalizeFilenames, StripMetadata, ConvertFormat}

	results := make([]batch.Result, 0, len(passes))
	for _, p := range passes {
		res, err := p(root, target, opts)
		results = append(results, res)
		if err != nil {
			return results, err
		}
		if res.Status == batch.StatusAborted {
			break
		}
	}
	return results, nil
}

func stripFormat(target profile.Target, opts Options) string {
	if opts.StripFormat != "" {
		return opts.StripFormat
	}
	return target.Format
}
