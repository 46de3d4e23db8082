// SPDX-License-Identifier: EPL-2.0

// Package naming normalizes audio sample file names.
//
// A rename pass runs each file name through a chain of Formatters and
// resolves the result against the other names in the same directory, so two
// files never end up with the same name and a second pass plans nothing.
//
// Formatters:
//
//   - TitleCase: "kick_HARD--01.WAV" -> "Kick Hard 01.wav"
//   - RegexReplace: ordered pattern/replacement rules; "{count}" in a
//     replacement is bumped until the name is free
//
// Collisions left after the chain get a numeric suffix: "Kick.wav",
// "Kick 2.wav", "Kick 3.wav".
package naming
