package searcher

import "math"

// ucb1 scores the children of one parent. It caches ln(N) for the parent's
// total plays so that each child costs one square root.
type ucb1 struct {
	c    float64
	logN float64
}

func newUCB1(c float64, N int) ucb1 {
	return ucb1{c: c, logN: math.Log(float64(N))}
}

// evaluate returns wins/plays + c*sqrt(ln(N)/plays). A child without plays
// scores +Inf so that it is tried first.
func (u ucb1) evaluate(wins, plays int) float64 {
	if plays == 0 {
		return math.Inf(1)
	}
	n := float64(plays)
	return float64(wins)/n + u.c*math.Sqrt(u.logN/n)
}
