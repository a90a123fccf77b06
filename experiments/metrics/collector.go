package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes a single search, i.e. one decision
type SearchMetric struct {
	Duration       time.Duration
	Episodes       int
	Rollouts       int // Random playouts that made at least one move
	RolloutDepth   int // Total moves played across all rollouts
	TerminalHits   int // Playouts that started on a terminal state
	Transpositions int // Expansions that reused an existing node
	TreeSize       int
}

// AvgRolloutDepth returns the mean number of moves per rollout
func (m SearchMetric) AvgRolloutDepth() float64 {
	if m.Rollouts == 0 {
		return 0
	}
	return float64(m.RolloutDepth) / float64(m.Rollouts)
}

type MoveMetric struct {
	Step   int
	Player int // Seat index of the agent that moved
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string // Empty when the game is drawn or stopped
	Payoff         float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddEpisode()
	AddRollout(depth int)
	AddTerminalHit()
	AddTransposition()
	Complete(treeSize int) SearchMetric
}

type collector struct {
	startTime      time.Time
	episodes       atomic.Int32
	rollouts       atomic.Int32
	rolloutDepth   atomic.Int64
	terminalHits   atomic.Int32
	transpositions atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddRollout(depth int) {
	if depth == 0 {
		return
	}
	m.rollouts.Add(1)
	m.rolloutDepth.Add(int64(depth))
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddTransposition() {
	m.transpositions.Add(1)
}

func (m *collector) Complete(treeSize int) SearchMetric {
	return SearchMetric{
		Duration:       time.Since(m.startTime),
		Episodes:       int(m.episodes.Load()),
		Rollouts:       int(m.rollouts.Load()),
		RolloutDepth:   int(m.rolloutDepth.Load()),
		TerminalHits:   int(m.terminalHits.Load()),
		Transpositions: int(m.transpositions.Load()),
		TreeSize:       treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                             {}
func (m *dummyCollector) AddEpisode()                        {}
func (m *dummyCollector) AddRollout(depth int)               {}
func (m *dummyCollector) AddTerminalHit()                    {}
func (m *dummyCollector) AddTransposition()                  {}
func (m *dummyCollector) Complete(treeSize int) SearchMetric { return SearchMetric{} }
