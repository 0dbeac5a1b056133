// SPDX-License-Identifier: EPL-2.0

package scrubber_test

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ik5/scrubber"
	"github.com/ik5/scrubber/device"
	"github.com/ik5/scrubber/formats/wav"
	"github.com/ik5/scrubber/sound"
)

// Example_scrub loads a 10 second clip, jumps to 30% and plays one second.
func Example_scrub() {
	clip := new(bytes.Buffer)
	if err := wav.WriteWAV16(clip, 8000, 1, make([]int16, 80000)); err != nil {
		fmt.Println(err)
		return
	}

	mem := device.NewMemory(8000, 1)
	p := scrubber.New(mem)
	defer p.Close()

	if err := p.LoadData(sound.New(clip.Bytes())); err != nil {
		fmt.Println(err)
		return
	}

	total, _ := p.TotalTime()
	fmt.Println("total:", scrubber.FormatClock(total))

	_ = p.ScrubTo(0.3)
	fmt.Printf("position: %.2f\n", p.Position())

	_ = p.TogglePlay()
	mem.Advance(time.Second)
	fmt.Printf("position: %.2f\n", p.Position())
	fmt.Println("playing:", p.IsPlaying())

	// Output:
	// total: 00:00:10.00
	// position: 0.30
	// position: 0.40
	// playing: true
}
