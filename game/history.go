package game

import "pigo/utils"

// History is the ordered list of position hashes of a game, one per ply.
// It is owned by the caller and passed into every legality and termination
// query.
type History []Hash

func (h History) Contains(hash Hash) bool {
	return utils.FindIndex(h, hash) >= 0
}

// Repeated reports whether the last n hashes are identical.
func (h History) Repeated(n int) bool {
	tail := utils.Tail(h, n)
	if n <= 0 || tail == nil {
		return false
	}
	for _, hash := range tail[1:] {
		if hash != tail[0] {
			return false
		}
	}
	return true
}

// Copy returns a history that can be appended to without aliasing h.
func (h History) Copy() History {
	c := make(History, len(h), len(h)+16)
	copy(c, h)
	return c
}
