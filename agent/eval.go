package agent

import (
	"context"

	"treesearch/experiments/metrics"
	"treesearch/game"
	"treesearch/searcher"
)

type evaluationAgent[A comparable] struct {
	mcts *searcher.MCTS[A]
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent[A comparable](mcts *searcher.MCTS[A]) Agent[A] {
	return evaluationAgent[A]{mcts: mcts}
}

func (a evaluationAgent[A]) FindMove(ctx context.Context, state game.State[A]) (A, metrics.SearchMetric, error) {
	result, err := a.mcts.Analyze(ctx, state)
	if err != nil {
		var zero A
		return zero, metrics.SearchMetric{}, err
	}
	return result.Action, result.Metric, nil
}
