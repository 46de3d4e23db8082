// SPDX-License-Identifier: EPL-2.0

// Package profile defines target output descriptors: the container, maximum
// sample rate, maximum bit depth and channel limit a hardware sampler
// accepts. A Target is a plain value handed to each pass; nothing here is
// process-wide state.
package profile
