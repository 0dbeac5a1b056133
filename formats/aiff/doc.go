// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// It wraps github.com/go-audio/aiff and accepts uncompressed PCM at 8, 16,
// 24 and 32 bits. Non-seekable readers are buffered in memory because the
// underlying decoder walks the chunk list with Seek.
package aiff
