package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
	Questioned
	/*
	 * Detonated is never reached during play: it marks the mines that
	 * were not flagged when the game was lost.
	 */
	Detonated
)

var cellStateNames = [...]string{
	Hidden:     "hidden",
	Revealed:   "revealed",
	Flagged:    "flagged",
	Questioned: "questioned",
	Detonated:  "detonated",
}

func (s CellState) String() string {
	if s < 0 || int(s) >= len(cellStateNames) {
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
	return cellStateNames[s]
}

// [CellState] implements [encoding.TextMarshaler]
func (s CellState) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(cellStateNames) {
		return nil, fmt.Errorf("invalid cell state %d", s)
	}
	return []byte(cellStateNames[s]), nil
}

func (s *CellState) UnmarshalText(text []byte) error {
	for i, name := range cellStateNames {
		if name == string(text) {
			*s = CellState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", text)
}

// Cell is the player-visible part of a square. Adjacent is only
// meaningful for revealed cells.
type Cell struct {
	State    CellState `json:"state"`
	Adjacent int       `json:"adjacent,omitempty"`
}

func (c Cell) String() string {
	switch c.State {
	case Hidden:
		return "#"
	case Flagged:
		return "*"
	case Questioned:
		return "?"
	case Detonated:
		return "!"
	case Revealed:
		if c.Adjacent == 0 {
			return "."
		}
		return strconv.Itoa(c.Adjacent)
	default:
		return " "
	}
}

// Grid is a row-major snapshot of a board.
type Grid []Cell

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
