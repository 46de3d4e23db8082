// SPDX-License-Identifier: EPL-2.0

// Package sampleprep prepares a directory of audio samples for a hardware
// sampler.
//
// Three passes work on a root directory in place:
//
//   - NormalizeFilenames gives every audio file a canonical name
//     ("kick_01-HARD.WAV" becomes "Kick 01 Hard.wav").
//   - StripMetadata removes embedded tags (RIFF LIST/INFO and friends, ID3).
//   - ConvertFormat re-encodes files that exceed a profile.Target, such as
//     the 16-bit, 44.1 kHz WAV the Alesis Strike MultiPad accepts.
//
// Run chains them in that order. Every pass walks the tree, prints what it
// is about to do, asks for confirmation and only then touches files:
//
//	opts := sampleprep.Options{Out: os.Stdout, Confirm: batch.AssumeYes}
//	results, err := sampleprep.Run("samples", profile.AlesisStrikeMultipad, opts)
//
// The passes are destructive. Use Options.DryRun to review a plan without
// changing anything.
package sampleprep
