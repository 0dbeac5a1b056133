// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/scrubber"
	"github.com/ik5/scrubber/marks"
)

// markSlack absorbs the rounding of a scrub to a mark, which can land a
// hair before it. Without it Next would keep returning the same mark.
const markSlack = 1e-3

// session applies play loop commands to a player. File reloads arrive
// from the watcher goroutine, so everything goes through mtx.
type session struct {
	player *scrubber.Player
	marks  *marks.List
	out    io.Writer
	log    *slog.Logger

	mtx sync.Mutex
}

func newSession(p *scrubber.Player, out io.Writer, log *slog.Logger) *session {
	return &session{
		player: p,
		marks:  marks.New(),
		out:    out,
		log:    log,
	}
}

// exec runs c and prints the position afterwards. quit is true once the
// user asked to leave.
func (s *session) exec(c command) (quit bool, err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	switch c.op {
	case opQuit:
		return true, nil
	case opHelp:
		fmt.Fprintln(s.out, usage)
		return false, nil
	case opToggle:
		err = s.player.TogglePlay()
	case opScrub:
		err = s.player.ScrubTo(c.arg)
	case opMark:
		if !s.marks.Add(s.player.Position()) {
			fmt.Fprintln(s.out, "already marked")
		}
	case opNext:
		err = s.player.ScrubTo(s.marks.Next(s.player.Position() + markSlack))
	case opPrev:
		err = s.player.ScrubTo(s.marks.Prev(s.player.Position()-markSlack, s.player.IsPlaying()))
	case opJump:
		pos, ok := s.marks.Get(c.idx)
		if !ok {
			return false, fmt.Errorf("no mark %d", c.idx)
		}
		err = s.player.ScrubTo(pos)
	case opDelete:
		if !s.marks.Remove(c.idx) {
			return false, fmt.Errorf("no mark %d", c.idx)
		}
	case opList:
		s.listMarks()
	case opSpeed:
		s.player.SetSpeed(c.arg)
	case opVolume:
		s.player.SetVolume(c.arg)
	case opRepeat:
		err = s.player.SetRepeat(!s.player.Repeat())
	case opStop:
		err = s.player.Stop()
	}
	if err != nil {
		return false, err
	}

	s.status()
	return false, nil
}

func (s *session) listMarks() {
	if s.marks.Len() == 0 {
		fmt.Fprintln(s.out, "no marks")
		return
	}

	total, _ := s.player.TotalTime()
	for i, m := range s.marks.All() {
		at := scrubber.FormatClock(time.Duration(m * float64(total)))
		fmt.Fprintf(s.out, "%d: %.3f %s\n", i, m, at)
	}
}

func (s *session) status() {
	state := "paused"
	if s.player.IsPlaying() {
		state = "playing"
	}
	fmt.Fprintf(s.out, "%s [%s, x%.2f, vol %.2f, repeat %t]\n",
		progress(s.player), state, s.player.Speed(), s.player.Volume(), s.player.Repeat())
}

// reload loads path again and puts playback back where it was, in the same
// playing or paused state. Marks are kept since they are fractions.
func (s *session) reload(path string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	pos := s.player.Position()
	wasPlaying := s.player.IsPlaying()

	if err := s.player.Load(path); err != nil {
		return err
	}
	if err := s.player.ScrubTo(pos); err != nil {
		return err
	}
	if wasPlaying {
		if err := s.player.TogglePlay(); err != nil {
			return err
		}
	}

	s.log.Info("reloaded", "file", path, "position", pos)
	s.status()

	return nil
}
