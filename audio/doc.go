// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-stream primitives the player is built on.
//
// # Source Interface
//
// Everything that produces PCM implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 in [-1.0, 1.0]. A read returning io.EOF
// ends the stream. Decoders may additionally implement DurationReporter
// (container-declared length) and FrameSeeker (direct repositioning).
//
// # Format Registry
//
// A Registry maps format keys to decoders and can probe raw bytes:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("mp3", mp3.Decoder{})
//	format, src, err := registry.Probe(data)
//
// Probe fails with ErrUnsupportedFormat when nothing accepts the input.
//
// # Transforms
//
// Sources chain. The playback path of a track looks like:
//
//	decoder -> Periodic -> FadeIn -> Resampler -> ChannelMixer -> device
//
//   - Periodic calls back every interval of consumed source audio; the
//     player uses it to advance its elapsed-time counter.
//   - FadeIn ramps gain up from silence to avoid clicks on (re)start.
//   - Repeat restarts a track from the beginning when it ends.
//   - Resampler converts to the device rate with cubic interpolation and
//     applies the playback speed.
//   - ChannelMixer folds or spreads channels to the device layout.
//
// # Measuring
//
// SourceDuration returns the decoder-reported length when there is one;
// CountDuration drains a source and derives the length from the sample
// count. SkipFrames positions a source, seeking when it can and decoding
// otherwise.
package audio
