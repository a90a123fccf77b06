package experiments

import (
	"context"
	"fmt"
	"time"

	"treesearch/agent"
	"treesearch/engine"
	"treesearch/experiments/metrics"
	"treesearch/game"
	"treesearch/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const NumGames = 30 // Per match up, unless the experiment sets Games

type Experiment[A comparable] struct {
	Name        string
	NewState    func() game.State[A]
	Configs     []metrics.AgentConfig
	MatchUps    [][2]metrics.AgentConfig
	Games       int // Per match up, seats alternate between games
	Parallelism int // Games played at once, each game owns its trees
	OutputDir   string
}

type Summary struct {
	RunID string
	Dir   string
	Games int
	Wins  map[int]int // By AgentConfig.ID
	Draws int
}

// AgainstBaseline pairs the first config against every other config, a single
// config plays itself
func AgainstBaseline(configs []metrics.AgentConfig) [][2]metrics.AgentConfig {
	if len(configs) == 1 {
		return [][2]metrics.AgentConfig{{configs[0], configs[0]}}
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{configs[0], config})
	}
	return matchUps
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// Run plays every match up and stores agent configs, game records and move records
// under <OutputDir>/<Name>/<run id>
func Run[A comparable](ctx context.Context, e Experiment[A]) (Summary, error) {
	games := e.Games
	if games <= 0 {
		games = NumGames
	}

	log.Info().Msgf("starting %s experiment...", e.Name)

	// Results are indexed by game so records keep match up order
	results := make([]gameResult, len(e.MatchUps)*games)
	g, ctx := errgroup.WithContext(ctx)
	if e.Parallelism > 0 {
		g.SetLimit(e.Parallelism)
	}

	for mi, matchUp := range e.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < games; i++ {
			index := mi*games + i
			first, second := matchUp[0], matchUp[1]
			if i%2 == 1 {
				first, second = second, first
			}

			g.Go(func() error {
				record, moves, err := runGame(ctx, e.NewState(), first, second, index)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				record.ID = index + 1
				results[index] = gameResult{record: record, moves: moves}

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(e.MatchUps), i+1, record.Winner)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", e.Name)

	return store(e, results)
}

func store[A comparable](e Experiment[A], results []gameResult) (Summary, error) {
	writer, err := metrics.NewWriter(e.OutputDir, e.Name)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return Summary{}, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	summary := Summary{
		RunID: writer.RunID().String(),
		Dir:   writer.Dir(),
		Games: len(results),
		Wins:  map[int]int{},
	}
	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, result := range results {
		gameRecords = append(gameRecords, result.record)
		for _, mm := range result.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       result.record.ID,
				MoveMetric: mm,
			})
		}

		switch {
		case result.record.Payoff > 0:
			summary.Wins[result.record.Agent1]++
		case result.record.Payoff < 0:
			summary.Wins[result.record.Agent2]++
		default:
			summary.Draws++
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return Summary{}, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return Summary{}, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return summary, nil
}

// runGame plays a single game, config1 moves for the maximizer
func runGame[A comparable](ctx context.Context, state game.State[A], config1, config2 metrics.AgentConfig, index int) (metrics.GameRecord, []metrics.MoveMetric, error) {
	agent1, err := createAgent[A](config1, index)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	agent2, err := createAgent[A](config2, index)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	e := engine.NewLocalEngine(state, agent1, agent2)
	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	return metrics.GameRecord{
		Agent1:     config1.ID,
		Agent2:     config2.ID,
		GameMetric: gameMetric,
	}, moveMetrics, nil
}

// createAgent builds a fresh agent per game. Seeded configs derive a per game seed
// so parallel games differ but replay identically.
func createAgent[A comparable](config metrics.AgentConfig, index int) (agent.Agent[A], error) {
	seed := uint64(time.Now().UnixNano())
	if config.Seed != 0 {
		seed = config.Seed + uint64(index)
	}

	switch config.Kind {
	case metrics.AgentRandom:
		return agent.NewRandomAgent[A](seed), nil
	case metrics.AgentMCTS, "":
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}

	decision, err := searcher.ParseDecision(config.Decision)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{searcher.WithDecision(decision)}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Transpositions {
		options = append(options, searcher.WithTranspositions())
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExplorationConstant(config.Exploration))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}

	options = append(options, searcher.WithMetrics())
	mcts, err := searcher.NewMCTS[A](options...)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	return agent.NewEvaluationAgent(mcts), nil
}
