package engine

import (
	"context"
	"errors"

	"treesearch/experiments/metrics"
)

const MaxMoves = 10000

var ErrIllegalAction = errors.New("agent chose an illegal action")

type Engine interface {
	// Run plays a game till it ends or a max number of moves is reached
	Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error)
}
