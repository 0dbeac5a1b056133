// SPDX-License-Identifier: EPL-2.0

package scrubber

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/device"
	"github.com/ik5/scrubber/formats"
	"github.com/ik5/scrubber/sound"
	"github.com/ik5/scrubber/transport"
)

// Player plays at most one sound file at a time. Transport operations are
// no-ops while nothing is loaded. A Player is safe for concurrent use.
type Player struct {
	ctx device.Context
	reg *audio.Registry
	log *slog.Logger

	mtx    sync.Mutex
	cfg    Config
	source *transport.Source
}

// Option configures a Player.
type Option func(*Player)

func WithConfig(cfg Config) Option {
	return func(p *Player) { p.cfg = cfg }
}

func WithRegistry(reg *audio.Registry) Option {
	return func(p *Player) {
		if reg != nil {
			p.reg = reg
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates a player on ctx's output device.
func New(ctx device.Context, opts ...Option) *Player {
	p := &Player{
		ctx: ctx,
		reg: formats.DefaultRegistry(),
		log: slog.Default(),
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cfg.Speed = ClampSpeed(p.cfg.Speed)

	return p
}

// Load replaces the current sound with the file at path. On failure the
// current sound is kept as it was.
func (p *Player) Load(path string) error {
	data, err := sound.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	if err := p.LoadData(data); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	p.log.Info("sound loaded", "file", path, "total", p.totalOrZero())
	return nil
}

// LoadData replaces the current sound with data. On failure the current
// sound is kept as it was.
func (p *Player) LoadData(data *sound.Data) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	src, err := transport.New(p.ctx, data,
		transport.WithRegistry(p.reg),
		transport.WithLogger(p.log),
		transport.WithSpeed(p.cfg.Speed),
		transport.WithFadeIn(p.cfg.FadeIn),
		transport.WithPollInterval(p.cfg.PollInterval),
		transport.WithRepeat(p.cfg.Repeat),
	)
	if err != nil {
		return err
	}
	src.SetVolume(p.cfg.Volume)

	if p.source != nil {
		if err := p.source.Close(); err != nil {
			p.log.Debug("closing replaced source", "error", err)
		}
	}
	p.source = src

	return nil
}

// Loaded reports whether a sound is loaded.
func (p *Player) Loaded() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.source != nil
}

// Source exposes the loaded sound's transport, nil when nothing is loaded.
// Callers must not use it concurrently with the Player.
func (p *Player) Source() *transport.Source {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.source
}

func (p *Player) IsPlaying() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.source != nil && p.source.Playing()
}

// TogglePlay pauses while playing and resumes otherwise.
func (p *Player) TogglePlay() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.source == nil {
		return nil
	}
	if p.source.Playing() {
		p.source.Pause()
		return nil
	}

	return p.source.Resume()
}

// ScrubTo moves playback to fraction f of the file, f clamped to [0, 1].
// Playing continues from there; a paused or stopped player stays paused.
func (p *Player) ScrubTo(f float64) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.source == nil {
		return nil
	}
	return p.scrubLocked(f)
}

// scrubLocked flushes the old audio before queuing the new position, so
// none of the old position is heard after the jump. When the flush fails
// the old audio keeps playing and the cursor stays where it was.
func (p *Player) scrubLocked(f float64) error {
	cursor := p.source.State().Cursor()
	prev := cursor.Position()
	cursor.SetFraction(f)
	wasPlaying := p.source.Playing()

	if err := p.source.Stop(p.ctx, false); err != nil {
		cursor.SetPosition(prev)
		return fmt.Errorf("scrubbing: %w", err)
	}
	if err := p.source.Enqueue(wasPlaying); err != nil {
		return fmt.Errorf("scrubbing: %w", err)
	}

	return nil
}

// Stop halts playback and rewinds to the start.
func (p *Player) Stop() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.source == nil {
		return nil
	}

	cursor := p.source.State().Cursor()
	prev := cursor.Position()
	cursor.SetPosition(0)
	if err := p.source.Stop(p.ctx, true); err != nil {
		cursor.SetPosition(prev)
		return fmt.Errorf("stopping: %w", err)
	}
	return nil
}

// PlayTime is the estimated play position, zero when nothing is loaded.
func (p *Player) PlayTime() time.Duration {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.source == nil {
		return 0
	}
	return p.source.Elapsed()
}

// TotalTime is the play length of the loaded sound. ok is false when
// nothing is loaded.
func (p *Player) TotalTime() (time.Duration, bool) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.source == nil {
		return 0, false
	}
	return p.source.TotalLength(), true
}

func (p *Player) totalOrZero() time.Duration {
	d, _ := p.TotalTime()
	return d
}

// Position is PlayTime as a fraction of TotalTime, in [0, 1].
func (p *Player) Position() float64 {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.positionLocked()
}

func (p *Player) positionLocked() float64 {
	if p.source == nil {
		return 0
	}
	total := p.source.TotalLength()
	if total <= 0 {
		return 0
	}
	return min(max(float64(p.source.Elapsed())/float64(total), 0), 1)
}

func (p *Player) Speed() float64 {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.cfg.Speed
}

// SetSpeed sets the playback rate, clamped to [MinSpeed, MaxSpeed]. It
// applies immediately and to later loads.
func (p *Player) SetSpeed(s float64) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.cfg.Speed = ClampSpeed(s)
	if p.source != nil {
		p.source.SetSpeed(p.cfg.Speed)
	}
}

func (p *Player) Volume() float64 {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.cfg.Volume
}

// SetVolume sets the linear output volume, 1 being unchanged. NaN is
// ignored.
func (p *Player) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.cfg.Volume = max(v, 0)
	if p.source != nil {
		p.source.SetVolume(p.cfg.Volume)
	}
}

func (p *Player) Repeat() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.cfg.Repeat
}

// SetRepeat turns looping on or off. Queued audio is requeued at the
// current position so the change is immediate.
func (p *Player) SetRepeat(on bool) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.cfg.Repeat = on
	if p.source == nil {
		return nil
	}

	pos := p.positionLocked()
	p.source.State().SetRepeat(on)
	if p.source.Stopped() {
		return nil
	}
	return p.scrubLocked(pos)
}

// Close releases the loaded sound.
func (p *Player) Close() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.source == nil {
		return nil
	}
	err := p.source.Close()
	p.source = nil

	return err
}
