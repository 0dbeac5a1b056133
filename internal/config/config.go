// SPDX-License-Identifier: EPL-2.0

// Package config loads player settings from the environment. An optional
// .env file is read first; variables already set in the process win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/ik5/scrubber"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvPollInterval = "SCRUBBER_POLL_INTERVAL"
	EnvFadeIn       = "SCRUBBER_FADE_IN"
	EnvSpeed        = "SCRUBBER_SPEED"
	EnvVolume       = "SCRUBBER_VOLUME"
	EnvRepeat       = "SCRUBBER_REPEAT"
	EnvSampleRate   = "SCRUBBER_SAMPLE_RATE"
	EnvBuffer       = "SCRUBBER_BUFFER"
	EnvLogLevel     = "SCRUBBER_LOG_LEVEL"
)

// ErrInvalid wraps every malformed value.
var ErrInvalid = errors.New("invalid configuration")

// Load reads the given .env files (".env" when none are named), then
// builds a config from the environment on top of scrubber.DefaultConfig.
// Missing .env files are not an error.
func Load(files ...string) (scrubber.Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return scrubber.Config{}, fmt.Errorf("reading env file: %w", err)
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds a config from getenv. Unset variables keep their
// defaults.
func FromEnv(getenv func(string) string) (scrubber.Config, error) {
	cfg := scrubber.DefaultConfig()

	var errs []error
	parse := func(key string, fn func(string) error) {
		v := getenv(key)
		if v == "" {
			return
		}
		if err := fn(v); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err))
		}
	}

	parse(EnvPollInterval, positiveDuration(&cfg.PollInterval))
	parse(EnvFadeIn, func(v string) (err error) {
		cfg.FadeIn, err = time.ParseDuration(v)
		return err
	})
	parse(EnvSpeed, func(v string) (err error) {
		cfg.Speed, err = finiteFloat(v)
		cfg.Speed = scrubber.ClampSpeed(cfg.Speed)
		return err
	})
	parse(EnvVolume, func(v string) (err error) {
		cfg.Volume, err = finiteFloat(v)
		if err == nil && cfg.Volume < 0 {
			return errors.New("negative volume")
		}
		return err
	})
	parse(EnvRepeat, func(v string) (err error) {
		cfg.Repeat, err = strconv.ParseBool(v)
		return err
	})
	parse(EnvSampleRate, func(v string) (err error) {
		cfg.SampleRate, err = strconv.Atoi(v)
		if err == nil && cfg.SampleRate <= 0 {
			return errors.New("sample rate must be positive")
		}
		return err
	})
	parse(EnvBuffer, positiveDuration(&cfg.BufferDuration))
	parse(EnvLogLevel, func(v string) error {
		return cfg.LogLevel.UnmarshalText([]byte(v))
	})

	if len(errs) > 0 {
		return scrubber.Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// finiteFloat parses v, refusing NaN and infinities which ParseFloat
// accepts.
func finiteFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}

func positiveDuration(dst *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		if d <= 0 {
			return errors.New("duration must be positive")
		}
		*dst = d
		return nil
	}
}
