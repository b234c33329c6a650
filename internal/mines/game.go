package mines

import (
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

// Outcome is the terminal result of a game. Ongoing until the board
// either explodes or every safe cell has been revealed.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// [Outcome] implements [encoding.TextMarshaler]
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type Change struct {
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	State    CellState `json:"state"`
	Adjacent int       `json:"adjacent,omitempty"`
}

// Update is what a single intent did to the board. Outcome is only set on
// the call that ended the game.
type Update struct {
	Changes        []Change `json:"changes"`
	Outcome        Outcome  `json:"outcome"`
	MinesRemaining int      `json:"mines_remaining"`
}

func (u Update) Terminal() bool {
	return u.Outcome != Ongoing
}

type square struct {
	mine     bool
	state    CellState
	adjacent int
}

// Board is not safe for concurrent use. Callers that receive intents from
// several sources must serialize them.
type Board struct {
	rows, cols     int
	mineTotal      int
	squares        []square
	minesGenerated bool
	gameOver       bool
	outcome        Outcome
	minesRemaining int
	revealed       int

	rnd *rand.Rand
	log *slog.Logger
}

type Option func(*Board)

// WithRand sets the source used to place mines. Boards built with equally
// seeded sources and given the same first click get the same layout.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		b.rnd = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		b.log = logger
	}
}

// ValidateParams reports whether a board of rows x cols can hold mineCount
// mines while leaving the first click and its neighbours free.
func ValidateParams(rows, cols, mineCount int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: dimensions must be positive (rows = %d, cols = %d)",
			ErrInvalidConfiguration, rows, cols)
	}
	if mineCount <= 0 || mineCount > rows*cols-9 {
		return fmt.Errorf("%w: mine count must be between 1 and %d (have %d)",
			ErrInvalidConfiguration, rows*cols-9, mineCount)
	}
	return nil
}

func New(rows, cols, mineCount int, opts ...Option) (*Board, error) {
	if err := ValidateParams(rows, cols, mineCount); err != nil {
		return nil, err
	}
	b := &Board{
		rows:           rows,
		cols:           cols,
		mineTotal:      mineCount,
		squares:        make([]square, rows*cols),
		minesRemaining: mineCount,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rnd == nil {
		b.rnd = newRand()
	}
	if b.log == nil {
		b.log = Log
	}
	return b, nil
}

func (b *Board) Rows() int           { return b.rows }
func (b *Board) Cols() int           { return b.cols }
func (b *Board) MineTotal() int      { return b.mineTotal }
func (b *Board) MinesRemaining() int { return b.minesRemaining }
func (b *Board) IsGameOver() bool    { return b.gameOver }
func (b *Board) Outcome() Outcome    { return b.outcome }

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

func (b *Board) locate(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) on a %dx%d board",
			ErrOutOfBounds, row, col, b.rows, b.cols)
	}
	return row*b.cols + col, nil
}

func (b *Board) CellState(row, col int) (CellState, error) {
	i, err := b.locate(row, col)
	if err != nil {
		return Hidden, err
	}
	return b.squares[i].state, nil
}

func (b *Board) AdjacentMineCount(row, col int) (int, error) {
	i, err := b.locate(row, col)
	if err != nil {
		return 0, err
	}
	if b.squares[i].state != Revealed {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrNotRevealed, row, col)
	}
	return b.squares[i].adjacent, nil
}

func (b *Board) Grid() Grid {
	grid := make(Grid, len(b.squares))
	for i, sq := range b.squares {
		grid[i] = b.cell(sq)
	}
	return grid
}

func (b *Board) String() string {
	return b.Grid().ToString(b.cols)
}

func (b *Board) cell(sq square) Cell {
	c := Cell{State: sq.state}
	if sq.state == Revealed {
		c.Adjacent = sq.adjacent
	}
	return c
}

func (b *Board) neighbours(i int) iter.Seq[int] {
	row, col := i/b.cols, i%b.cols
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if (dr != 0 || dc != 0) && b.InBounds(r, c) {
					if !yield(r*b.cols + c) {
						return
					}
				}
			}
		}
	}
}

func (b *Board) countMines(i int) (n int) {
	for j := range b.neighbours(i) {
		if b.squares[j].mine {
			n++
		}
	}
	return
}

// update packs the cells recorded in changes. A nil change set means the
// intent was a no-op.
func (b *Board) update(changes *changeSet) Update {
	u := Update{MinesRemaining: b.minesRemaining}
	if changes == nil {
		return u
	}
	u.Changes = make([]Change, 0, len(changes.order))
	for _, i := range changes.order {
		c := b.cell(b.squares[i])
		u.Changes = append(u.Changes, Change{
			Row:      i / b.cols,
			Col:      i % b.cols,
			State:    c.State,
			Adjacent: c.Adjacent,
		})
	}
	if b.gameOver {
		u.Outcome = b.outcome
	}
	return u
}
