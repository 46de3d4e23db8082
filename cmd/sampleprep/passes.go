// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/ik5/sampleprep"
	"github.com/ik5/sampleprep/batch"
	"github.com/ik5/sampleprep/profile"
)

type passFunc func(root string, target profile.Target, opts sampleprep.Options) (batch.Result, error)

// passCommand builds the command running one pass on a root directory.
func passCommand(use, short, long string, pass passFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <root>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			opts, err := a.options(cmd)
			if err != nil {
				return err
			}

			a.log.Debug("%s %s", use, args[0])
			res, err := pass(args[0], a.target, opts)
			a.report(res)
			return err
		},
	}
}

var normalizeCmd = passCommand("normalize",
	"Give every audio file a canonical name",
	`Normalize renames every audio file under root. By default the name is
title-cased with every run of symbols replaced by a space, and the
extension is lowercased: "kick_01-HARD.WAV" becomes "Kick 01 Hard.wav".
Regex rules from the config file run first. Clashing names get " 2",
" 3", ... appended.`,
	sampleprep.NormalizeFilenames)

var convertCmd = passCommand("convert",
	"Re-encode files that do not fit the target profile",
	`Convert decodes WAV, AIFF, MP3 and Ogg Vorbis files under root and
rewrites those exceeding the profile as WAV: higher sample rates are
resampled down, extra channels are mixed down and deeper samples are
requantized. Files in another container are replaced by a .wav file.`,
	sampleprep.ConvertFormat)

func init() {
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(convertCmd)
}
