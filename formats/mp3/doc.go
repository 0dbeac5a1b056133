// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. Output is always
// stereo float32 in [-1, 1] at the file's own sample rate; the audio
// package converts channel layout and rate for a device.
//
// Sources returned by Decoder report their total length and support
// frame-accurate seeking, both backed by go-mp3's frame index.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	d, _ := audio.SourceDuration(src)
package mp3
