package agent

import (
	"context"

	"treesearch/experiments/metrics"
	"treesearch/game"
)

type Agent[A comparable] interface {
	// FindMove returns an action and performance metrics (if collected) from the move finding process
	FindMove(ctx context.Context, state game.State[A]) (A, metrics.SearchMetric, error)
}
