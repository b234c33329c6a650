// Package command implements the line protocol spoken over the websocket
// and by the terminal client. Every line is one intent:
//
//	g            no-op, returns the current estimate
//	o ROW COL    reveal
//	s ROW COL    secondary action (flag cycle or chord); "f" is an alias
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Kind uint8

const (
	Noop Kind = iota
	Reveal
	Secondary
)

type Command struct {
	Kind     Kind
	Row, Col int
}

func (c Command) String() string {
	switch c.Kind {
	case Reveal:
		return fmt.Sprintf("o %d %d", c.Row, c.Col)
	case Secondary:
		return fmt.Sprintf("s %d %d", c.Row, c.Col)
	default:
		return "g"
	}
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
)

var commandKinds = map[string]Kind{
	"g": Noop,
	"o": Reveal,
	"s": Secondary,
	"f": Secondary,
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}

	kind, ok := commandKinds[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	nargs := 2
	if kind == Noop {
		nargs = 0
	}
	if nargs != len(parts)-1 {
		return Command{}, ErrBadArgs
	}

	c := Command{Kind: kind}
	if kind == Noop {
		return c, nil
	}
	var err error
	if c.Row, err = strconv.Atoi(parts[1]); err != nil {
		return Command{}, fmt.Errorf("row must be an int")
	}
	if c.Col, err = strconv.Atoi(parts[2]); err != nil {
		return Command{}, fmt.Errorf("col must be an int")
	}
	return c, nil
}

// Lines splits a message into its newline-separated pieces.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func Execute(b *mines.Board, c Command) (mines.Update, error) {
	switch c.Kind {
	case Reveal:
		return b.Reveal(c.Row, c.Col)
	case Secondary:
		return b.SecondaryAction(c.Row, c.Col)
	default:
		return mines.Update{MinesRemaining: b.MinesRemaining()}, nil
	}
}

// Run executes every non-empty line of text in order and merges the
// resulting updates. Lines after the one that ends the game are ignored.
func Run(b *mines.Board, text string) (mines.Update, error) {
	merged := mines.Update{
		Changes:        []mines.Change{},
		MinesRemaining: b.MinesRemaining(),
	}
	for _, line := range Lines(strings.TrimSpace(text)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c, err := Parse(line)
		if err != nil {
			return merged, err
		}
		u, err := Execute(b, c)
		if err != nil {
			return merged, err
		}
		merged.Changes = append(merged.Changes, u.Changes...)
		merged.MinesRemaining = u.MinesRemaining
		if u.Terminal() {
			merged.Outcome = u.Outcome
			break
		}
	}
	return merged, nil
}
