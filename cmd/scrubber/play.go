// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ik5/scrubber"
	"github.com/ik5/scrubber/device"
)

type PlayParams struct {
	File  string `pos:"true" required:"true" help:"Sound file to play."`
	Watch bool   `short:"w" optional:"true" help:"Reload the file when it changes on disk." default:"false"`
}

func playCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:         "play",
		Short:       "Play a sound file with interactive transport controls",
		Long:        "play opens the sound card and reads commands from stdin, one per line. Enter h for the list of commands.",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			cfg, log, err := setup(os.Stderr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}

			sp, err := device.NewSpeaker(cfg.SampleRate, cfg.BufferDuration, device.WithLogger(log))
			if err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			os.Exit(runPlay(ctx, params, sp, cfg, log, os.Stdin, os.Stdout, os.Stderr))
		},
	}.ToCobra()
}

func runPlay(
	ctx context.Context,
	params *PlayParams,
	dev device.Context,
	cfg scrubber.Config,
	log *slog.Logger,
	stdin io.Reader,
	stdout, stderr io.Writer,
) int {
	p := scrubber.New(dev, scrubber.WithConfig(cfg), scrubber.WithLogger(log))
	defer p.Close()

	if err := p.Load(params.File); err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := newSession(p, stdout, log)

	if params.Watch {
		w, err := watchFile(params.File, func() {
			if err := s.reload(params.File); err != nil {
				log.Warn("reload failed", "file", params.File, "error", err)
			}
		}, log)
		if err != nil {
			fmt.Fprintf(stderr, "play: %v\n", err)
			return 1
		}
		defer w.Close()
		go w.run(ctx)
	}

	if err := p.TogglePlay(); err != nil {
		fmt.Fprintf(stderr, "play: %v\n", err)
		return 1
	}
	s.status()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return 0
		case line, ok := <-lines:
			if !ok {
				return 0
			}

			c, err := parseCommand(line)
			if err != nil {
				fmt.Fprintf(stderr, "%v (h for help)\n", err)
				continue
			}
			quit, err := s.exec(c)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
			}
			if quit {
				return 0
			}
		}
	}
}

// fileWatcher calls onChange whenever the watched file is written or
// replaced. The parent directory is watched since editors often save by
// renaming a new file over the old one.
type fileWatcher struct {
	w        *fsnotify.Watcher
	path     string
	onChange func()
	log      *slog.Logger
}

func watchFile(path string, onChange func(), log *slog.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	return &fileWatcher{w: w, path: abs, onChange: onChange, log: log}, nil
}

func (fw *fileWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.log.Debug("file changed", "file", event.Name, "op", event.Op.String())
				fw.onChange()
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watcher error", "error", err)
		}
	}
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
