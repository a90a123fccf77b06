package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"treesearch/experiments/metrics"

	"github.com/spf13/viper"
)

const (
	GameNim       = "nim"
	GameTicTacToe = "tictactoe"
)

type Config struct {
	Name        string                `mapstructure:"name"`
	Game        string                `mapstructure:"game"`
	Games       int                   `mapstructure:"games"` // Per match up
	Parallelism int                   `mapstructure:"parallelism"`
	OutputDir   string                `mapstructure:"output_dir"`
	LogLevel    string                `mapstructure:"log_level"`
	Nim         NimConfig             `mapstructure:"nim"`
	Agents      []metrics.AgentConfig `mapstructure:"agents"` // The first agent is the baseline
}

type NimConfig struct {
	Heaps   []int `mapstructure:"heaps"`
	MaxTake int   `mapstructure:"max_take"`
}

// DefaultAgents pits a 50ms MCTS agent against the random baseline
func DefaultAgents() []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 0, Kind: metrics.AgentRandom},
		{ID: 1, Kind: metrics.AgentMCTS, Duration: 50 * time.Millisecond, Decision: "average"},
	}
}

// Load reads the config file at path, if any, with MCTS_ environment overrides,
// e.g. MCTS_GAMES=10 or MCTS_NIM_MAX_TAKE=3
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("name", "baseline")
	v.SetDefault("game", GameTicTacToe)
	v.SetDefault("games", 10)
	v.SetDefault("parallelism", 4)
	v.SetDefault("output_dir", "results")
	v.SetDefault("log_level", "info")
	v.SetDefault("nim.heaps", []int{3, 4, 5})
	v.SetDefault("nim.max_take", 0)

	v.SetEnvPrefix("MCTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = DefaultAgents()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Game {
	case GameNim:
		if len(c.Nim.Heaps) == 0 {
			return errors.New("nim needs at least one heap")
		}
	case GameTicTacToe:
	default:
		return fmt.Errorf("unknown game %q", c.Game)
	}

	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}

	ids := map[int]bool{}
	for _, agent := range c.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		ids[agent.ID] = true
	}
	return nil
}
