package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts search events", func(t *testing.T) {
		c := NewCollector()
		c.Start()

		c.AddEpisode()
		c.AddEpisode()
		c.AddRollout(3)
		c.AddRollout(0) // Short-circuited rollout
		c.AddRollout(5)
		c.AddTerminalHit()
		c.AddTransposition()

		got := c.Complete(42)

		require.Equal(t, 2, got.Episodes)
		require.Equal(t, 2, got.Rollouts, "Zero-depth rollouts should not count")
		require.Equal(t, 8, got.RolloutDepth)
		require.Equal(t, 4.0, got.AvgRolloutDepth())
		require.Equal(t, 1, got.TerminalHits)
		require.Equal(t, 1, got.Transpositions)
		require.Equal(t, 42, got.TreeSize)
		require.GreaterOrEqual(t, got.Duration, time.Duration(0))
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddEpisode()
		c.AddRollout(3)

		require.Equal(t, SearchMetric{}, c.Complete(10))
	})

	t.Run("average depth without rollouts", func(t *testing.T) {
		require.Equal(t, 0.0, SearchMetric{}.AvgRolloutDepth())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()

	writer, err := NewWriter(root, "unit")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "unit", writer.RunID().String()), writer.Dir(), "Run directory should be named by run id")

	other, err := NewWriter(root, "unit")
	require.NoError(t, err)
	require.NotEqual(t, writer.Dir(), other.Dir(), "Each writer should get its own run directory")

	t.Run("agent configs", func(t *testing.T) {
		err := writer.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Kind: AgentMCTS, Duration: 10 * time.Millisecond, Decision: "average", Exploration: 2},
			{ID: 2, Kind: AgentRandom},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(writer.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "Header plus one row per config")
		require.Equal(t, []string{"1", "mcts", "10ms", "0", "false", "average", "2", "0"}, rows[1])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := writer.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 1, Agent2: 2,
			GameMetric: GameMetric{
				Winner: "Player1", Payoff: 1, StartTime: start, EndTime: start.Add(time.Second),
				Duration: time.Second, TotalMoves: 7,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(writer.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, writer.RunID().String(), rows[1][0], "Rows should carry the run id")
		require.Equal(t, "Player1", rows[1][5])
		require.Equal(t, "7", rows[1][10])
	})

	t.Run("move records", func(t *testing.T) {
		err := writer.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{
				Step: 1, Player: 0, Action: "4",
				SearchMetric: SearchMetric{Episodes: 10, Rollouts: 4, RolloutDepth: 10, TreeSize: 20},
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(writer.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "2.50", rows[1][8], "Should write the average rollout depth")
		require.Equal(t, "20", rows[1][11])
	})
}
