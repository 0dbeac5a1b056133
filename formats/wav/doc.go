// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav and accepts integer PCM at 8, 16,
// 24 and 32 bits, any channel count and any sample rate. The returned
// source declares its play length from the data chunk size, so players can
// show a total time without decoding the whole file.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // try another format
//	}
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44 byte
// header. It only needs an io.Writer, which makes it usable for pipes and
// in-memory buffers:
//
//	err := wav.WriteWAV16(out, 44100, 2, samples)
package wav
