package engine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"treesearch/agent"
	"treesearch/experiments/metrics"
	"treesearch/game"

	"github.com/rs/zerolog/log"
)

// Seat 0 always plays the maximizer
var players = [2]string{"Player1", "Player2"}

type LocalEngine[A comparable] struct {
	State    game.State[A]
	Agents   [2]agent.Agent[A] // Indexed by seat
	MaxMoves int
}

func NewLocalEngine[A comparable](state game.State[A], maximizer, minimizer agent.Agent[A]) *LocalEngine[A] {
	return &LocalEngine[A]{
		State:    state,
		Agents:   [2]agent.Agent[A]{maximizer, minimizer},
		MaxMoves: MaxMoves,
	}
}

// Run executes the entire game loop until the game ends. State holds the last
// position afterwards.
func (e *LocalEngine[A]) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	state := e.State
	gameMetric := metrics.GameMetric{
		StartingPlayer: seat(state.Actor()) + 1,
		StartTime:      time.Now(),
	}

	log.Info().Msgf("%s is starting", players[seat(state.Actor())])

	var moveMetrics []metrics.MoveMetric
	for step := 1; !state.IsTerminal(); step++ {
		if step > e.MaxMoves {
			log.Warn().Msgf("stopped after %d moves without a result", e.MaxMoves)
			break
		}
		if err := ctx.Err(); err != nil {
			return gameMetric, moveMetrics, err
		}

		s := seat(state.Actor())
		action, searchMetric, err := e.Agents[s].FindMove(ctx, state)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s failed to move at step %d: %w", players[s], step, err)
		}
		if !slices.Contains(state.LegalActions(), action) {
			return gameMetric, moveMetrics, fmt.Errorf("%w: %s played %v at step %d", ErrIllegalAction, players[s], action, step)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       s + 1,
			Action:       fmt.Sprint(action),
			SearchMetric: searchMetric,
		})
		state = state.Play(action)
	}
	e.State = state

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	if state.IsTerminal() {
		gameMetric.Payoff = state.Payoff()
		gameMetric.Winner = winner(gameMetric.Payoff)
	}

	return gameMetric, moveMetrics, nil
}

func seat(actor game.Actor) int {
	if actor == game.Maximizer {
		return 0
	}
	return 1
}

func winner(payoff float64) string {
	switch {
	case payoff > 0:
		return players[0]
	case payoff < 0:
		return players[1]
	default:
		return ""
	}
}
