// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/ik5/scrubber"
	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/formats"
	"github.com/ik5/scrubber/sound"
)

type ProbeParams struct {
	File string `pos:"true" required:"true" help:"Sound file to inspect."`
}

func probeCmd() *cobra.Command {
	return boa.CmdT[ProbeParams]{
		Use:         "probe",
		Short:       "Show the format and length of a sound file",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *ProbeParams, cmd *cobra.Command, args []string) {
			os.Exit(runProbe(params, os.Stdout, os.Stderr))
		},
	}.ToCobra()
}

func runProbe(params *ProbeParams, stdout, stderr io.Writer) int {
	data, err := sound.Load(params.File)
	if err != nil {
		fmt.Fprintf(stderr, "probe: %v\n", err)
		return 1
	}

	reg := formats.DefaultRegistry()
	name, src, err := data.Probe(reg)
	if err != nil {
		fmt.Fprintf(stderr, "probe: %s: %v\n", params.File, err)
		return 1
	}
	reported, known := audio.SourceDuration(src)
	fmt.Fprintf(stdout, "file:     %s\n", params.File)
	fmt.Fprintf(stdout, "format:   %s\n", name)
	fmt.Fprintf(stdout, "channels: %d\n", src.Channels())
	fmt.Fprintf(stdout, "rate:     %d Hz\n", src.SampleRate())
	_ = src.Close()

	if known {
		fmt.Fprintf(stdout, "reported: %s\n", scrubber.FormatClock(reported))
	} else {
		fmt.Fprintln(stdout, "reported: unknown")
	}

	// counting consumes the stream, so it gets its own decoder
	_, src, err = data.Probe(reg)
	if err != nil {
		fmt.Fprintf(stderr, "probe: %s: %v\n", params.File, err)
		return 1
	}
	defer src.Close()

	counted, err := audio.CountDuration(src)
	if err != nil {
		fmt.Fprintf(stderr, "probe: counting %s: %v\n", params.File, err)
		return 1
	}
	fmt.Fprintf(stdout, "counted:  %s\n", scrubber.FormatClock(counted))

	return 0
}
