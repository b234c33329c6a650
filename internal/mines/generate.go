package mines

import "log/slog"

// generate places the board's mines, none of which is at safe or within
// one square of it.
func (b *Board) generate(safe int) {
	sr, sc := safe/b.cols, safe%b.cols

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, len(b.squares))
	for i := range b.squares {
		if absDiff(sr, i/b.cols) > 1 || absDiff(sc, i%b.cols) > 1 {
			candidates = append(candidates, i)
		}
	}

	/*
	 * Now pick mineTotal off the list at random.
	 */
	k := len(candidates)
	for range b.mineTotal {
		j := b.rnd.IntN(k)
		b.squares[candidates[j]].mine = true
		k--
		candidates[j] = candidates[k]
	}

	b.minesGenerated = true
	b.log.Debug("mines generated",
		slog.Int("rows", b.rows),
		slog.Int("cols", b.cols),
		slog.Int("mines", b.mineTotal),
		slog.Int("safeRow", sr),
		slog.Int("safeCol", sc),
	)
}
