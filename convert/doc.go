// SPDX-License-Identifier: EPL-2.0

// Package convert rewrites audio files so they fit a profile.Target.
//
// A file is converted only when its sample rate, bit depth or channel count
// exceed the target, or when it is in another container. Rates are
// resampled down with audio.Resampler, extra channels are folded with
// audio.Downmixer and the result is encoded as WAV at the target depth.
// Material already below a limit keeps its own value; nothing is upsampled.
package convert
