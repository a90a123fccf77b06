package searcher

import (
	"context"
	"fmt"
	"math"
	"time"

	"treesearch/experiments/metrics"
	"treesearch/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(o *options)

type options struct {
	duration       time.Duration
	episodes       int
	seed           uint64
	seeded         bool
	transpositions bool
	decision       Decision
	cSquared       float64
	metrics        bool
}

func WithDuration(duration time.Duration) Option {
	return func(o *options) {
		if duration > 0 {
			o.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(o *options) {
		if episodes > 0 {
			o.episodes = episodes
		}
	}
}

// WithSeed makes every search replay the same random choices
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithTranspositions shares one node between all paths reaching the same state hash
func WithTranspositions() Option {
	return func(o *options) {
		o.transpositions = true
	}
}

func WithDecision(decision Decision) Option {
	return func(o *options) {
		o.decision = decision
	}
}

// WithExplorationConstant sets c^2 in the UCB1 exploration term, 0 searches greedily
func WithExplorationConstant(cSquared float64) Option {
	return func(o *options) {
		if cSquared >= 0 {
			o.cSquared = cSquared
		}
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

// MCTS searches a fresh tree on every call, nothing is kept between searches. A
// single MCTS may be shared since every search owns its tree and random source.
type MCTS[A comparable] struct {
	options
}

// Result is the outcome of one search
type Result[A comparable] struct {
	Action   A
	Episodes int
	Actions  []ActionStats[A] // Root edges in legal action order
	Metric   metrics.SearchMetric
}

func NewMCTS[A comparable](opts ...Option) (*MCTS[A], error) {
	m := &MCTS[A]{options{ // Default values
		decision: BestAverage,
		cSquared: CSquared,
	}}
	for _, option := range opts {
		option(&m.options)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		return nil, ErrInvalidBudget
	}
	return m, nil
}

// Search returns the best action for the actor to move in state
func (m *MCTS[A]) Search(ctx context.Context, state game.State[A]) (A, error) {
	result, err := m.Analyze(ctx, state)
	return result.Action, err
}

// Analyze runs a search and reports the chosen action along with root statistics.
// The search stops on the first exhausted budget or when ctx is done, after at
// least one episode.
func (m *MCTS[A]) Analyze(ctx context.Context, state game.State[A]) (Result[A], error) {
	if state.IsTerminal() {
		return Result[A]{}, ErrTerminalState
	}

	collector := metrics.NewDummyCollector()
	if m.metrics {
		collector = metrics.NewCollector()
	}
	collector.Start()

	t, episodes, err := m.build(ctx, state, collector)
	if err != nil {
		return Result[A]{}, err
	}

	action, ok := t.decide(m.decision)
	if !ok {
		return Result[A]{}, fmt.Errorf("%w: no root action was visited", ErrContractViolation)
	}
	metric := collector.Complete(t.size())

	log.Debug().
		Int("episodes", episodes).
		Int("nodes", t.size()).
		Stringer("decision", m.decision).
		Msgf("selected %v", action)

	return Result[A]{
		Action:   action,
		Episodes: episodes,
		Actions:  t.stats(),
		Metric:   metric,
	}, nil
}

// build grows a tree from an eagerly expanded root until the budget runs out
func (m *MCTS[A]) build(ctx context.Context, state game.State[A], collector metrics.Collector) (*tree[A], int, error) {
	t := newTree(state, m.cSquared, m.transpositions)
	if _, err := t.expand(rootID); err != nil {
		return nil, 0, err
	}
	episodes, err := m.iterate(ctx, t, collector)
	return t, episodes, err
}

func (m *MCTS[A]) iterate(ctx context.Context, t *tree[A], collector metrics.Collector) (int, error) {
	rng := rand.New(rand.NewSource(m.nextSeed()))
	start := time.Now()
	path := make([]edgeRef, 0, 64)

	episodes := 0
	for {
		var err error
		if path, err = m.simulate(t, rng, path[:0], collector); err != nil {
			return episodes, err
		}
		episodes++
		collector.AddEpisode()

		if m.exhausted(ctx, start, episodes) {
			return episodes, nil
		}
	}
}

func (o *options) exhausted(ctx context.Context, start time.Time, episodes int) bool {
	if o.episodes > 0 && episodes >= o.episodes {
		return true
	}
	if o.duration > 0 && time.Since(start) >= o.duration {
		return true
	}
	return ctx.Err() != nil
}

func (o *options) nextSeed() uint64 {
	if o.seeded {
		return o.seed
	}
	return uint64(time.Now().UnixNano())
}

// simulate runs one episode: select, expand a leaf that was visited before, roll
// out and back up
func (m *MCTS[A]) simulate(t *tree[A], rng *rand.Rand, path []edgeRef, collector metrics.Collector) ([]edgeRef, error) {
	path, leaf, err := t.descend(path)
	if err != nil {
		return path, err
	}

	// A leaf is simulated directly on its first visit
	if n := t.nodes[leaf]; n.visits > 0 && !n.state.IsTerminal() {
		shared, err := t.expand(leaf)
		if err != nil {
			return path, err
		}
		for i := 0; i < shared; i++ {
			collector.AddTransposition()
		}
		i := rng.Intn(len(n.edges))
		path = append(path, edgeRef{node: leaf, index: i})
		leaf = n.edges[i].child
	}

	reward, depth, err := rollout(t.nodes[leaf].state, rng)
	if err != nil {
		return path, err
	}
	if depth == 0 {
		collector.AddTerminalHit()
	} else {
		collector.AddRollout(depth)
	}

	t.backup(leaf, path, reward)
	return path, nil
}

// rollout plays uniformly random actions until the game ends and returns the
// terminal payoff with the number of actions played
func rollout[A comparable](state game.State[A], rng *rand.Rand) (float64, int, error) {
	depth := 0
	for !state.IsTerminal() {
		actions := state.LegalActions()
		if len(actions) == 0 {
			return 0, depth, fmt.Errorf("%w: non-terminal state has no legal actions", ErrContractViolation)
		}
		state = state.Play(actions[rng.Intn(len(actions))]) // Random rollout policy
		depth++
	}

	payoff := state.Payoff()
	if math.IsNaN(payoff) || math.IsInf(payoff, 0) {
		return 0, depth, fmt.Errorf("%w: payoff %v is not finite", ErrContractViolation, payoff)
	}
	return payoff, depth, nil
}
