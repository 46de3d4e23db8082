// SPDX-License-Identifier: EPL-2.0

// Package metadata finds and removes embedded tags from audio files.
//
// WAV files are rewritten keeping only an allow-list of RIFF chunks (fmt,
// data and fact by default), so LIST/INFO, id3, bext, iXML and similar
// chunks disappear while the sample data is copied byte for byte. MP3 files
// lose every ID3v2 frame and a trailing ID3v1 block.
//
// Rewrites go to a temporary file next to the original which then replaces
// it, so a failed strip leaves the original intact.
package metadata
