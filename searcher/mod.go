// Package searcher implements Monte Carlo tree search with UCB1 selection and
// uniformly random rollouts for two-player zero-sum games.
package searcher

import (
	"context"
	"fmt"
	"time"

	"treesearch/game"
)

// Search runs a time-bounded search from state and returns the chosen action
func Search[A comparable](state game.State[A], duration time.Duration, opts ...Option) (A, error) {
	search, err := Policy[A](duration, opts...)
	if err != nil {
		var zero A
		return zero, err
	}
	return search(state)
}

// Policy returns a move function that runs a fresh search of the given duration
// on every call
func Policy[A comparable](duration time.Duration, opts ...Option) (func(game.State[A]) (A, error), error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration %v", ErrInvalidBudget, duration)
	}

	m, err := NewMCTS[A](append([]Option{WithDuration(duration)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return func(state game.State[A]) (A, error) {
		return m.Search(context.Background(), state)
	}, nil
}
