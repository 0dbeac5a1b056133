// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownCommand is returned for input the play loop does not know.
var ErrUnknownCommand = errors.New("unknown command")

type op int

const (
	opStatus op = iota
	opToggle
	opScrub
	opMark
	opNext
	opPrev
	opJump
	opDelete
	opList
	opSpeed
	opVolume
	opRepeat
	opStop
	opHelp
	opQuit
)

type command struct {
	op  op
	arg float64
	idx int
}

const usage = `commands:
  <space>, p   play / pause
  s F          scrub to fraction F (0 to 1)
  m            mark the current position
  n, b         next / previous mark
  j I          jump to mark I
  d I          delete mark I
  l            list marks
  x R          speed R (0.5 to 3)
  v V          volume V (1 is unchanged)
  r            toggle repeat
  0            stop and rewind
  h, ?         this help
  q            quit
  <enter>      show position`

// parseCommand reads one line of play loop input. A line of only blanks
// toggles playback; an empty line asks for the position.
func parseCommand(line string) (command, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		if line != "" {
			return command{op: opToggle}, nil
		}
		return command{op: opStatus}, nil
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "p":
		return noArgs(opToggle, args)
	case "m":
		return noArgs(opMark, args)
	case "n":
		return noArgs(opNext, args)
	case "b":
		return noArgs(opPrev, args)
	case "l":
		return noArgs(opList, args)
	case "r":
		return noArgs(opRepeat, args)
	case "0":
		return noArgs(opStop, args)
	case "h", "?":
		return noArgs(opHelp, args)
	case "q":
		return noArgs(opQuit, args)
	case "s":
		return floatArg(opScrub, args)
	case "x":
		return floatArg(opSpeed, args)
	case "v":
		return floatArg(opVolume, args)
	case "j":
		return intArg(opJump, args)
	case "d":
		return intArg(opDelete, args)
	}

	return command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

func noArgs(o op, args []string) (command, error) {
	if len(args) != 0 {
		return command{}, fmt.Errorf("unexpected argument %q", args[0])
	}
	return command{op: o}, nil
}

func floatArg(o op, args []string) (command, error) {
	if len(args) != 1 {
		return command{}, errors.New("expected one number")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return command{}, fmt.Errorf("bad number %q", args[0])
	}
	return command{op: o, arg: v}, nil
}

func intArg(o op, args []string) (command, error) {
	if len(args) != 1 {
		return command{}, errors.New("expected a mark index")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return command{}, fmt.Errorf("bad mark index %q", args[0])
	}
	return command{op: o, idx: i}, nil
}
