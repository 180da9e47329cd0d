package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 10, 3)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddEpisode()
			c.AddFullPlayout()
		}()
	}
	wg.Wait()
	c.AddEpisode()

	metric := c.Complete(10, 5)
	require.Equal(t, SearchMetric{
		Goroutines:   4,
		Duration:     metric.Duration,
		SampleCap:    10,
		Cutoff:       3,
		Candidates:   10,
		Rollouts:     5,
		Episodes:     51,
		FullPlayouts: 50,
	}, metric)

	c.Start(1, 1, 0)
	require.Equal(t, 0, c.Complete(1, 1).Episodes, "Start resets the counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete(3, 3))
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "unit")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Strategy: "rollout", Goroutines: 2, Duration: time.Second}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{ID: 1, Agent0: 1, Agent1: 1, GameMetric: GameMetric{Winner: 1, TotalMoves: 12}}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Attempts: 1}}}))

	configs, err := os.ReadFile(filepath.Join(w.Dir(), "agent_configs.csv"))
	require.NoError(t, err)
	require.Equal(t, "id,strategy,goroutines,duration,rollouts,sample_cap,cutoff,table\n1,rollout,2,1s,0,0,0,\n", string(configs))

	games, err := os.ReadFile(filepath.Join(w.Dir(), "game_records.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(games)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "1,1,1,0,1,"))

	_, err = os.Stat(filepath.Join(w.Dir(), "move_records.csv"))
	require.NoError(t, err)
}
