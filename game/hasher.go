package game

import "golang.org/x/exp/rand"

// Hasher holds one random 64-bit vector per (cell, color) pair. It is built
// once per Board and never written afterwards, so every state derived from
// the same board shares it.
type Hasher struct {
	size  int
	table [][2]Hash // indexed by x + size*y, then color-1
}

func NewHasher(size int, src rand.Source) *Hasher {
	r := rand.New(src)
	table := make([][2]Hash, size*size)
	for i := range table {
		table[i][0] = Hash(r.Uint64())
		table[i][1] = Hash(r.Uint64())
	}
	return &Hasher{size: size, table: table}
}

// Initial is the hash of the empty board.
func (h *Hasher) Initial() Hash {
	return 0
}

// Combine merges the entry for (x, y, color) into hash. Applying it twice
// with the same arguments restores the original value.
func (h *Hasher) Combine(hash Hash, x, y int, color Color) Hash {
	if color != Black && color != White {
		return hash
	}
	return hash ^ h.table[x+h.size*y][color-1]
}
