package metrics

import (
	"pigo/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	MaxMoves     int
	Episodes     int // completed simulations
	FullPlayouts int // simulations that ended on the repetition rule rather than the ply cap
	MaxDepth     int // deepest ply at which a node was expanded
	TableSize    int // tracked (player, position) entries after the search
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	Winner     game.Color
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(maxMoves int)
	AddEpisode()
	AddFullPlayout()
	ObserveDepth(depth int)
	Complete(tableSize int) SearchMetric
}

type collector struct {
	maxMoves     int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	maxDepth     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxMoves int) {
	m.startTime = time.Now()
	m.maxMoves = maxMoves
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) ObserveDepth(depth int) {
	if int32(depth) > m.maxDepth.Load() {
		m.maxDepth.Store(int32(depth))
	}
}

func (m *collector) Complete(tableSize int) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		MaxMoves:     m.maxMoves,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
		TableSize:    tableSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxMoves int)                  {}
func (m *dummyCollector) AddEpisode()                         {}
func (m *dummyCollector) AddFullPlayout()                     {}
func (m *dummyCollector) ObserveDepth(depth int)              {}
func (m *dummyCollector) Complete(tableSize int) SearchMetric { return SearchMetric{} }
