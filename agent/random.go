package agent

import (
	"context"
	"fmt"
	"time"

	"treesearch/experiments/metrics"
	"treesearch/game"
	"treesearch/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent[A comparable] struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal
// actions. It is not safe for concurrent use.
func NewRandomAgent[A comparable](seed uint64) Agent[A] {
	return &randomAgent[A]{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[A]) FindMove(_ context.Context, state game.State[A]) (A, metrics.SearchMetric, error) {
	var zero A
	if state.IsTerminal() {
		return zero, metrics.SearchMetric{}, searcher.ErrTerminalState
	}

	start := time.Now()
	actions := state.LegalActions()
	if len(actions) == 0 {
		return zero, metrics.SearchMetric{}, fmt.Errorf("%w: non-terminal state has no legal actions", searcher.ErrContractViolation)
	}
	action := actions[a.rng.Intn(len(actions))]
	return action, metrics.SearchMetric{Duration: time.Since(start)}, nil
}
