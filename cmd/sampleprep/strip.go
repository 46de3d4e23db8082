// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/sampleprep"
)

var stripCmd = passCommand("strip",
	"Remove embedded metadata",
	`Strip removes embedded metadata from the files under root that are in
the target format, or in --format. WAV files keep only the chunks listed
in metadata.keep (fmt, data and fact by default); MP3 files lose their
ID3v2 and ID3v1 tags. Sample data is not touched.`,
	sampleprep.StripMetadata)

func init() {
	stripCmd.Flags().String("format", "", "format to strip: wav or mp3 (default: the target format)")
	rootCmd.AddCommand(stripCmd)
}
