// SPDX-License-Identifier: EPL-2.0

// Command scrubber inspects, renders and interactively plays sound files.
package main

import (
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/ik5/scrubber"
	"github.com/ik5/scrubber/internal/config"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "scrubber",
		Short:   "Scrub through sound files at variable speed",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			probeCmd(),
			renderCmd(),
			playCmd(),
		},
	}.Run()
}

func defaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// setup loads the configuration and builds a logger writing to stderr.
func setup(stderr io.Writer) (scrubber.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return scrubber.Config{}, nil, err
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	return cfg, log, nil
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-(no build info)"
	}

	if bi.Main.Version == "" {
		return "unknown-(no version)"
	}
	return bi.Main.Version
}
