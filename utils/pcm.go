// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale is the magnitude of full scale for signed PCM of the given depth,
// e.g. 32768 for 16-bit.
func PCMScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// FloatToPCM rounds x in [-1,1] to a signed integer sample of bitDepth bits,
// clamping anything out of range.
func FloatToPCM(x float32, bitDepth int) int {
	scale := PCMScale(bitDepth)
	v := math.Round(float64(x) * scale)

	if v > scale-1 {
		v = scale - 1
	} else if v < -scale {
		v = -scale
	}

	return int(v)
}

// PCMToFloat maps a signed integer sample of bitDepth bits to [-1,1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / PCMScale(bitDepth))
}
