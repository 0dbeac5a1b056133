// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files through github.com/gopxl/beep/v2/flac.
//
// Mono and stereo files keep their channel count. Files with more than two
// channels are reduced to their first two by the underlying decoder.
package flac
