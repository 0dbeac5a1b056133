// SPDX-License-Identifier: EPL-2.0

// Package scrubber plays a sound file while keeping an accurate,
// queryable play position, for tools that scrub through recordings,
// mark spots in them and replay from those marks at variable speed.
//
// The audio device exposes no position of its own. The position is
// therefore tracked by the stream: every queued stream ticks a counter
// once per poll interval of source audio it hands to the device, and every
// seek stores the new start time in that counter before audio resumes.
// Playback speed is applied by the device's resampler, so the counter
// always measures time in the file, whatever the speed.
//
// # Quick Start
//
//	sp, _ := device.NewSpeaker(44100, 100*time.Millisecond)
//	p := scrubber.New(sp)
//	defer p.Close()
//
//	_ = p.Load("interview.mp3")
//	_ = p.ScrubTo(0.3)   // paused at 30%
//	_ = p.TogglePlay()   // playing
//	p.SetSpeed(scrubber.SpeedHalf)
//
//	total, _ := p.TotalTime()
//	fmt.Println(scrubber.FormatProgress(p.PlayTime(), total, true))
//
// # Packages
//
//   - sound: the raw file bytes and a byte cursor into them
//   - transport: one loaded sound on one sink; queue, pause, resume, stop
//   - device: sound card output (Speaker) and an offline device (Memory)
//     that only plays when told to, for tests and rendering
//   - audio: decoded streams and the transforms applied to them
//   - formats: WAV, AIFF, FLAC, Ogg Vorbis and MP3 decoders
//   - marks: bookmarks and next/previous navigation
//
// Offline devices make playback deterministic:
//
//	mem := device.NewMemory(8000, 1)
//	p := scrubber.New(mem)
//	_ = p.Load("clip.wav")
//	_ = p.TogglePlay()
//	mem.Advance(time.Second) // p.PlayTime() is now about one second
package scrubber
