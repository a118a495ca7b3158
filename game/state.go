package game

import (
	"sort"
	"strings"
)

// group is the incremental bookkeeping for one connected set of stones.
type group struct {
	stones    []int            // cell indices
	liberties map[int]struct{} // empty cell indices adjacent to any stone
}

func (g *group) copy() *group {
	stones := make([]int, len(g.stones))
	copy(stones, g.stones)
	liberties := make(map[int]struct{}, len(g.liberties))
	for p := range g.liberties {
		liberties[p] = struct{}{}
	}
	return &group{stones: stones, liberties: liberties}
}

// onlyLiberty reports whether p is the group's single remaining liberty.
func (g *group) onlyLiberty(p int) bool {
	if len(g.liberties) != 1 {
		return false
	}
	_, ok := g.liberties[p]
	return ok
}

// BoardState is a mutable snapshot of one position. Callers that need to
// explore a continuation without disturbing it must work on a Copy.
type BoardState struct {
	size     int
	komi     float64
	hasher   *Hasher        // shared, read-only
	cells    []Color        // indexed by x*size + y
	ids      []int          // group id per cell, 0 for empty cells
	groups   map[int]*group // live group id -> bookkeeping
	nextID   int            // next provisional group id
	captures [3]int         // stones captured, indexed by the capturing Color
	player   Color          // side to move
	hash     Hash
	turn     int
}

func newBoardState(size int, komi float64, hasher *Hasher) *BoardState {
	return &BoardState{
		size:   size,
		komi:   komi,
		hasher: hasher,
		cells:  make([]Color, size*size),
		ids:    make([]int, size*size),
		groups: make(map[int]*group),
		nextID: 1,
		player: Black,
		hash:   hasher.Initial(),
	}
}

// Copy returns an independent deep copy. Only the hasher is shared.
func (s *BoardState) Copy() *BoardState {
	cells := make([]Color, len(s.cells))
	copy(cells, s.cells)
	ids := make([]int, len(s.ids))
	copy(ids, s.ids)
	groups := make(map[int]*group, len(s.groups))
	for id, g := range s.groups {
		groups[id] = g.copy()
	}
	return &BoardState{
		size:     s.size,
		komi:     s.komi,
		hasher:   s.hasher,
		cells:    cells,
		ids:      ids,
		groups:   groups,
		nextID:   s.nextID,
		captures: s.captures,
		player:   s.player,
		hash:     s.hash,
		turn:     s.turn,
	}
}

func (s *BoardState) Size() int     { return s.size }
func (s *BoardState) Komi() float64 { return s.komi }
func (s *BoardState) Player() Color { return s.player }
func (s *BoardState) Hash() Hash    { return s.hash }
func (s *BoardState) Turn() int     { return s.turn }

// At returns the content of (x, y).
func (s *BoardState) At(x, y int) Color {
	return s.cells[s.index(x, y)]
}

// Captures returns the number of opposing stones removed by player.
func (s *BoardState) Captures(player Color) int {
	if player != Black && player != White {
		return 0
	}
	return s.captures[player]
}

// GroupID returns the incremental group label of the stone at (x, y), or 0
// for an empty cell.
func (s *BoardState) GroupID(x, y int) int {
	return s.ids[s.index(x, y)]
}

// Liberties returns the incrementally maintained liberty set of the group
// at (x, y), sorted by coordinate. It is nil for an empty cell.
func (s *BoardState) Liberties(x, y int) []Move {
	g, ok := s.groups[s.ids[s.index(x, y)]]
	if !ok {
		return nil
	}
	points := make([]int, 0, len(g.liberties))
	for p := range g.liberties {
		points = append(points, p)
	}
	return s.moves(points)
}

func (s *BoardState) index(x, y int) int {
	return x*s.size + y
}

func (s *BoardState) coords(p int) (int, int) {
	return p / s.size, p % s.size
}

// moves converts cell indices into sorted coordinates.
func (s *BoardState) moves(points []int) []Move {
	sort.Ints(points)
	moves := make([]Move, len(points))
	for i, p := range points {
		x, y := s.coords(p)
		moves[i] = Move{X: x, Y: y}
	}
	return moves
}

// neighbors appends the orthogonal neighbors of p to buf.
func (s *BoardState) neighbors(p int, buf []int) []int {
	x, y := s.coords(p)
	if x > 0 {
		buf = append(buf, p-s.size)
	}
	if x < s.size-1 {
		buf = append(buf, p+s.size)
	}
	if y > 0 {
		buf = append(buf, p-1)
	}
	if y < s.size-1 {
		buf = append(buf, p+1)
	}
	return buf
}

// mutate sets a cell and keeps the hash in step with it.
func (s *BoardState) mutate(p int, color Color) {
	x, y := s.coords(p)
	if prev := s.cells[p]; prev != Empty {
		s.hash = s.hasher.Combine(s.hash, x, y, prev)
	}
	s.cells[p] = color
	if color != Empty {
		s.hash = s.hasher.Combine(s.hash, x, y, color)
	}
}

// placement describes what putting a stone on a cell would do.
type placement struct {
	captured []int // opposing group ids left without liberties
	stones   int   // total stones in captured groups
	suicide  bool
}

// effects evaluates a placement of color at p without mutating the board.
func (s *BoardState) effects(p int, color Color) placement {
	var result placement
	var buf [4]int
	empty := 0
	safe := false // some friendly neighbor keeps a liberty other than p
	for _, n := range s.neighbors(p, buf[:0]) {
		switch s.cells[n] {
		case Empty:
			empty++
		case color:
			if !s.groups[s.ids[n]].onlyLiberty(p) {
				safe = true
			}
		default:
			id := s.ids[n]
			g := s.groups[id]
			if g.onlyLiberty(p) && !containsID(result.captured, id) {
				result.captured = append(result.captured, id)
				result.stones += len(g.stones)
			}
		}
	}
	result.suicide = len(result.captured) == 0 && empty == 0 && !safe
	return result
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Place puts a stone of color at (x, y) and resolves captures. The cell must
// be on the board and empty. A suicidal placement leaves the state untouched
// and reports false.
func (s *BoardState) Place(x, y int, color Color) bool {
	p := s.index(x, y)
	effects := s.effects(p, color)
	if effects.suicide {
		return false
	}

	var buf [4]int
	for _, id := range effects.captured {
		s.removeGroup(id)
	}
	s.captures[color] += effects.stones

	s.mutate(p, color)
	id := s.nextID
	s.nextID++
	placed := &group{stones: []int{p}, liberties: make(map[int]struct{}, 4)}
	s.ids[p] = id
	s.groups[id] = placed

	neighbors := s.neighbors(p, buf[:0])
	for _, n := range neighbors {
		if s.cells[n] == Empty {
			placed.liberties[n] = struct{}{}
		}
	}
	for _, n := range neighbors {
		switch s.cells[n] {
		case Empty:
		case color:
			if other := s.ids[n]; other != id {
				id = s.merge(id, other)
			}
		default:
			delete(s.groups[s.ids[n]].liberties, p)
		}
	}
	delete(s.groups[id].liberties, p)
	return true
}

// removeGroup clears every stone of a captured group and hands the freed
// cells back to the surviving neighbors as liberties.
func (s *BoardState) removeGroup(id int) {
	g := s.groups[id]
	delete(s.groups, id)
	for _, p := range g.stones {
		s.mutate(p, Empty)
		s.ids[p] = 0
	}
	var buf [4]int
	for _, p := range g.stones {
		for _, n := range s.neighbors(p, buf[:0]) {
			if s.cells[n] == Empty {
				continue
			}
			s.groups[s.ids[n]].liberties[p] = struct{}{}
		}
	}
}

// merge joins two groups under the smaller id and returns it.
func (s *BoardState) merge(a, b int) int {
	keep, drop := a, b
	if drop < keep {
		keep, drop = drop, keep
	}
	kept, dropped := s.groups[keep], s.groups[drop]
	for _, p := range dropped.stones {
		s.ids[p] = keep
	}
	kept.stones = append(kept.stones, dropped.stones...)
	for p := range dropped.liberties {
		kept.liberties[p] = struct{}{}
	}
	delete(s.groups, drop)
	return keep
}

// Region is the result of a full flood fill from one cell.
type Region struct {
	Color     Color  // color of the starting cell
	Points    []Move // connected cells of that color
	Liberties []Move // empty cells adjacent to the region
	Borders   ColorSet
}

// ColorSet is a small set of cell colors.
type ColorSet uint8

func (c ColorSet) Has(color Color) bool {
	return c&(1<<color) != 0
}

func (c ColorSet) add(color Color) ColorSet {
	return c | 1<<color
}

// Only returns the single stone color in the set, or Empty if the set holds
// no stone color or both.
func (c ColorSet) Only() Color {
	black, white := c.Has(Black), c.Has(White)
	switch {
	case black && !white:
		return Black
	case white && !black:
		return White
	default:
		return Empty
	}
}

// FindGroup recomputes the region containing (x, y) from scratch, ignoring
// the incremental tables. Borders holds every other color adjacent to the
// region; for an empty region that is the set of enclosing stone colors.
func (s *BoardState) FindGroup(x, y int) Region {
	points, liberties, borders := s.flood(s.index(x, y), nil)
	return Region{
		Color:     s.cells[s.index(x, y)],
		Points:    s.moves(points),
		Liberties: s.moves(liberties),
		Borders:   borders,
	}
}

// flood collects the same-color component of start. Cells touched by the
// walk are marked in seen when it is non-nil.
func (s *BoardState) flood(start int, seen []bool) (points, liberties []int, borders ColorSet) {
	color := s.cells[start]
	visited := make(map[int]bool)
	visited[start] = true
	stack := []int{start}
	libs := make(map[int]bool)
	var buf [4]int
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		points = append(points, p)
		if seen != nil {
			seen[p] = true
		}
		for _, n := range s.neighbors(p, buf[:0]) {
			c := s.cells[n]
			if c == color {
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
				continue
			}
			borders = borders.add(c)
			if c == Empty {
				libs[n] = true
			}
		}
	}
	for p := range libs {
		liberties = append(liberties, p)
	}
	return points, liberties, borders
}

// CalculateScore returns the area score: empty regions enclosed by a single
// color count for that color, plus the capture difference, minus komi.
// Positive means Black is ahead.
func (s *BoardState) CalculateScore() float64 {
	seen := make([]bool, len(s.cells))
	territory := 0
	for p, c := range s.cells {
		if c != Empty || seen[p] {
			continue
		}
		points, _, borders := s.flood(p, seen)
		switch borders.Only() {
		case Black:
			territory += len(points)
		case White:
			territory -= len(points)
		}
	}
	captures := s.captures[Black] - s.captures[White]
	return float64(territory+captures) - s.komi
}

func (s *BoardState) String() string {
	lookup := [...]string{"-", "@", "O"}
	var b strings.Builder
	for x := 0; x < s.size; x++ {
		if x > 0 {
			b.WriteByte('\n')
		}
		for y := 0; y < s.size; y++ {
			b.WriteString(lookup[s.cells[s.index(x, y)]])
		}
	}
	return b.String()
}
