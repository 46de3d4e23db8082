// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through github.com/jfreymuth/oggvorbis.
//
// Vorbis has no integer sample width; sources report 32 bits so that any
// target depth counts as a reduction.
package vorbis
