package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"treesearch/config"
	"treesearch/experiments"
	"treesearch/game"
	"treesearch/game/nim"
	"treesearch/game/tictactoe"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "path to an experiment config file")
	gameName := flag.String("game", "", "game to play, nim or tictactoe")
	games := flag.Int("games", 0, "games per match up")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *gameName != "" {
		cfg.Game = *gameName
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var summary experiments.Summary
	switch cfg.Game {
	case config.GameNim:
		summary, err = run(ctx, cfg, func() game.State[nim.Take] {
			return nim.New(cfg.Nim.Heaps, cfg.Nim.MaxTake)
		})
	case config.GameTicTacToe:
		summary, err = run(ctx, cfg, func() game.State[tictactoe.Cell] {
			return tictactoe.New()
		})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	log.Info().
		Str("run", summary.RunID).
		Str("dir", summary.Dir).
		Int("games", summary.Games).
		Int("draws", summary.Draws).
		Interface("wins", summary.Wins).
		Msg("experiment results")
}

func run[A comparable](ctx context.Context, cfg *config.Config, newState func() game.State[A]) (experiments.Summary, error) {
	return experiments.Run(ctx, experiments.Experiment[A]{
		Name:        cfg.Name,
		NewState:    newState,
		Configs:     cfg.Agents,
		MatchUps:    experiments.AgainstBaseline(cfg.Agents),
		Games:       cfg.Games,
		Parallelism: cfg.Parallelism,
		OutputDir:   cfg.OutputDir,
	})
}
