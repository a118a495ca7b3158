package searcher

import (
	"math"
	"pigo/experiments/metrics"
	"pigo/game"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(m *MCTS)

// MCTS chooses moves for one game session. Its statistics table persists
// across GetPlay calls and only grows.
type MCTS struct {
	board       *game.Board
	states      []*game.BoardState
	duration    time.Duration
	simulations int
	maxMoves    int
	c           float64
	clock       Clock
	rng         *rand.Rand
	metrics     metrics.Collector
	table       map[key]*record
	last        metrics.SearchMetric
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithSimulations runs a fixed number of simulations per move instead of
// searching until the time budget runs out.
func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithMaxMoves(maxMoves int) Option {
	return func(m *MCTS) {
		if maxMoves > 0 {
			m.maxMoves = maxMoves
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.c = c
		}
	}
}

func WithClock(clock Clock) Option {
	return func(m *MCTS) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(board *game.Board, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		board:    board,
		duration: DefaultDuration,
		maxMoves: DefaultMaxMoves,
		c:        DefaultExploration,
		clock:    systemClock{},
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:  metrics.NewDummyCollector(),
		table:    make(map[key]*record),
	}
	for _, option := range options {
		option(m)
	}
	if board == nil {
		panic("MCTS needs a board")
	}
	return m
}

// Update appends a state to the tracked game history.
func (m *MCTS) Update(state *game.BoardState) {
	m.states = append(m.states, state)
}

// LastSearch returns the metrics of the latest search. It is only filled in
// when the searcher was built WithMetrics.
func (m *MCTS) LastSearch() metrics.SearchMetric {
	return m.last
}

func (m *MCTS) history() game.History {
	history := make(game.History, len(m.states), len(m.states)+m.maxMoves)
	for i, state := range m.states {
		history[i] = state.Hash()
	}
	return history
}

type candidate struct {
	move  game.Move
	rate  float64
	wins  int
	plays int
}

// GetPlay searches from the last tracked state and returns the move with the
// best empirical win rate. It reports false when there is nothing to play.
func (m *MCTS) GetPlay() (game.Move, bool) {
	m.last = metrics.SearchMetric{}
	if len(m.states) == 0 {
		return game.Pass, false
	}
	state := m.states[len(m.states)-1]
	player := m.board.CurrentPlayer(state)
	legal := m.board.LegalPlays(state, m.history())

	if len(legal) == 0 {
		return game.Pass, false
	}
	if len(legal) == 1 {
		return legal[0], true
	}

	m.metrics.Start(m.maxMoves)
	var episodes int
	begin := m.clock.Now()
	if m.simulations > 0 {
		episodes = m.iterate()
	} else {
		episodes = m.countdown(begin)
	}
	m.last = m.metrics.Complete(len(m.table))

	candidates := make([]candidate, len(legal))
	best := 0
	for i, move := range legal {
		child := m.board.NextState(state, move)
		c := candidate{move: move, plays: 1}
		if r, ok := m.table[key{player, child.Hash()}]; ok && r.plays > 0 {
			c.wins, c.plays = r.wins, r.plays
		}
		c.rate = float64(c.wins) / float64(c.plays)
		candidates[i] = c
		if c.rate > candidates[best].rate {
			best = i
		}
	}

	if e := log.Debug(); e.Enabled() {
		sorted := make([]candidate, len(candidates))
		copy(sorted, candidates)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].rate > sorted[j].rate })
		for _, c := range sorted {
			log.Debug().Str("move", c.move.String()).Int("wins", c.wins).Int("plays", c.plays).
				Msgf("%.2f%%", 100*c.rate)
		}
		e.Int("simulations", episodes).
			Int("max_depth", m.last.MaxDepth).
			Int("table_size", len(m.table)).
			Str("player", player.String()).
			Str("move", candidates[best].move.String()).
			Msg("search complete")
	}

	return candidates[best].move, true
}

func (m *MCTS) iterate() int {
	for i := 0; i < m.simulations; i++ {
		m.RunSimulation()
	}
	return m.simulations
}

// countdown runs simulations until the clock says the budget is spent. A
// simulation in flight always completes.
func (m *MCTS) countdown(begin time.Time) int {
	episodes := 0
	for m.clock.Now().Sub(begin) < m.duration {
		m.RunSimulation()
		episodes++
	}
	return episodes
}

// RunSimulation plays one game out from the last tracked state, expanding at
// most one new statistics entry, and backs the result up through every
// tracked position it visited.
func (m *MCTS) RunSimulation() {
	if len(m.states) == 0 {
		return
	}
	visited := make(map[key]struct{})
	history := m.history()
	state := m.states[len(m.states)-1]
	player := m.board.CurrentPlayer(state)

	expand := true
	winner := game.Empty
	for t := 0; t < m.maxMoves; t++ {
		legal := m.board.LegalPlays(state, history)
		children := make([]*game.BoardState, len(legal))
		for i, move := range legal {
			children[i] = m.board.NextState(state, move)
		}
		state = m.choose(player, children)
		history = append(history, state.Hash())

		k := key{player, state.Hash()}
		if _, ok := m.table[k]; expand && !ok {
			expand = false
			m.table[k] = &record{}
			m.metrics.ObserveDepth(t)
		}
		visited[k] = struct{}{}

		player = m.board.CurrentPlayer(state)
		if winner = m.board.Winner(state, history); winner != game.Empty {
			m.metrics.AddFullPlayout()
			break
		}
	}
	if winner == game.Empty {
		winner = m.board.ProjectedWinner(state)
	}

	for k := range visited {
		r, ok := m.table[k]
		if !ok {
			continue
		}
		r.plays++
		if k.player == winner {
			r.wins++
		}
	}
	m.metrics.AddEpisode()
}

// choose picks the child to descend into: UCB1 when every child has
// statistics, otherwise a random child without them.
func (m *MCTS) choose(player game.Color, children []*game.BoardState) *game.BoardState {
	unseen := make([]*game.BoardState, 0, len(children))
	total := 0
	for _, child := range children {
		r, ok := m.table[key{player, child.Hash()}]
		if !ok {
			unseen = append(unseen, child)
			continue
		}
		total += r.plays
	}
	if len(unseen) > 0 {
		return unseen[m.rng.Intn(len(unseen))]
	}

	policy := newUCB1(m.c, total)
	var best *game.BoardState
	bestScore := math.Inf(-1)
	for _, child := range children {
		r := m.table[key{player, child.Hash()}]
		if score := policy.evaluate(r.wins, r.plays); best == nil || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}
