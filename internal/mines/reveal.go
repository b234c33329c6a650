package mines

import (
	"log/slog"

	"github.com/gammazero/deque"
)

// Reveal opens the cell at row, col. Revealed and flagged cells are left
// alone, as is every cell once the game is over. The first reveal on a
// board places the mines.
func (b *Board) Reveal(row, col int) (Update, error) {
	i, err := b.locate(row, col)
	if err != nil {
		return Update{}, err
	}
	if b.gameOver {
		return b.update(nil), nil
	}
	switch b.squares[i].state {
	case Revealed, Flagged:
		return b.update(nil), nil
	}

	if !b.minesGenerated {
		b.generate(i)
	}

	var changes changeSet
	b.flood(&changes, false, i)
	return b.update(&changes), nil
}

// flood reveals seeds breadth-first, spreading through cells with no
// adjacent mines. In chord mode flagged cells are trusted and skipped.
func (b *Board) flood(changes *changeSet, chord bool, seeds ...int) {
	var queue deque.Deque[int]
	visited := make([]bool, len(b.squares))
	for _, i := range seeds {
		queue.PushBack(i)
	}

	for queue.Len() > 0 {
		i := queue.PopFront()
		if visited[i] {
			continue
		}
		sq := &b.squares[i]
		if chord && sq.state == Flagged {
			continue
		}
		if sq.mine {
			b.lose(changes, i)
			return
		}

		visited[i] = true
		b.open(changes, i)
		if sq.adjacent > 0 {
			continue
		}

		for j := range b.neighbours(i) {
			if b.squares[j].state == Flagged {
				b.minesRemaining++
			}
			b.open(changes, j)
			if !visited[j] {
				queue.PushBack(j)
			}
		}
	}

	if b.revealed == len(b.squares)-b.mineTotal {
		b.gameOver = true
		b.outcome = Won
		b.log.Debug("game won", slog.Int("revealed", b.revealed))
	}
}

// open marks a safe cell as revealed, clearing any flag or question mark.
func (b *Board) open(changes *changeSet, i int) {
	sq := &b.squares[i]
	if sq.state == Revealed {
		return
	}
	sq.state = Revealed
	sq.adjacent = b.countMines(i)
	b.revealed++
	changes.mark(i)
}

func (b *Board) lose(changes *changeSet, hit int) {
	b.gameOver = true
	b.outcome = Lost
	for i := range b.squares {
		sq := &b.squares[i]
		if sq.mine && sq.state != Flagged {
			sq.state = Detonated
			changes.mark(i)
		}
	}
	b.log.Debug("game lost",
		slog.Int("row", hit/b.cols),
		slog.Int("col", hit%b.cols),
		slog.Int("revealed", b.revealed),
	)
}

// SecondaryAction cycles the marker on a covered cell
// (hidden -> flagged -> questioned -> hidden) or chords a revealed number
// whose flagged neighbours match its count.
func (b *Board) SecondaryAction(row, col int) (Update, error) {
	i, err := b.locate(row, col)
	if err != nil {
		return Update{}, err
	}
	if b.gameOver {
		return b.update(nil), nil
	}

	sq := &b.squares[i]
	switch sq.state {
	case Revealed:
		return b.chord(i), nil
	case Hidden:
		sq.state = Flagged
		b.minesRemaining--
	case Flagged:
		sq.state = Questioned
		b.minesRemaining++
	case Questioned:
		sq.state = Hidden
	default:
		return b.update(nil), nil
	}

	var changes changeSet
	changes.mark(i)
	return b.update(&changes), nil
}

func (b *Board) chord(i int) Update {
	want := b.squares[i].adjacent
	if want == 0 {
		return b.update(nil)
	}

	flagged := 0
	seeds := make([]int, 0, 8)
	for j := range b.neighbours(i) {
		switch b.squares[j].state {
		case Flagged:
			flagged++
		case Hidden, Questioned:
			seeds = append(seeds, j)
		}
	}
	if flagged != want || len(seeds) == 0 {
		return b.update(nil)
	}

	var changes changeSet
	b.flood(&changes, true, seeds...)
	return b.update(&changes)
}
