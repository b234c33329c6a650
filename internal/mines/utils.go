package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

func absDiff(x, y int) int {
	if x < y {
		return y - x
	}
	return x - y
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// changeSet remembers which cells changed during one intent, in the order
// they first changed.
type changeSet struct {
	order []int
	seen  map[int]struct{}
}

func (c *changeSet) mark(i int) {
	if c.seen == nil {
		c.seen = make(map[int]struct{})
	}
	if _, ok := c.seen[i]; ok {
		return
	}
	c.seen[i] = struct{}{}
	c.order = append(c.order, i)
}
