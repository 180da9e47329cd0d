package experiments

import (
	"time"

	"quixo/experiments/metrics"

	"github.com/pkg/errors"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Strategy: RolloutStrategy, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Strategy: RolloutStrategy, Goroutines: 2, Duration: TimeBudget},
	{ID: 3, Strategy: RolloutStrategy, Goroutines: 4, Duration: TimeBudget},
	{ID: 4, Strategy: RolloutStrategy, Goroutines: 8, Duration: TimeBudget},
	{ID: 5, Strategy: RolloutStrategy, Goroutines: 16, Duration: TimeBudget},
}

// Match pits agent0 against agent1. games <= 0 plays a single game.
func Match(root string, agent0, agent1 metrics.AgentConfig, games int, seed uint64) Experiment {
	if games <= 0 {
		games = 1
	}
	return Experiment{
		Name:     "match",
		Root:     root,
		Configs:  []metrics.AgentConfig{agent0, agent1},
		MatchUps: [][2]metrics.AgentConfig{{agent0, agent1}},
		Games:    games,
		Seed:     seed,
	}
}

// Suite returns a named experiment. games <= 0 uses NumGames.
func Suite(name, root string, games int, seed uint64) (Experiment, error) {
	if games <= 0 {
		games = NumGames
	}
	x := Experiment{Name: name, Root: root, Games: games, Seed: seed}
	switch name {
	case "throughput":
		// Same config for both players for the same playing strength and
		// similar game length
		x.Configs = parallelConfigs
		for _, config := range parallelConfigs {
			x.MatchUps = append(x.MatchUps, [2]metrics.AgentConfig{config, config})
		}
	case "parallelization":
		// Each matchup pairs an agent against the sequential baseline
		baseline := metrics.AgentConfig{ID: 0, Strategy: RolloutStrategy, Goroutines: 1, Duration: TimeBudget}
		x.Configs = append([]metrics.AgentConfig{baseline}, parallelConfigs...)
		for _, config := range parallelConfigs {
			x.MatchUps = append(x.MatchUps, [2]metrics.AgentConfig{baseline, config})
		}
	case "cutoff":
		baseline := metrics.AgentConfig{ID: 0, Strategy: RolloutStrategy, Goroutines: 8, Duration: TimeBudget} // Full playouts
		x.Configs = []metrics.AgentConfig{baseline}
		for i, cutoff := range []int{5, 10, 20, 40} {
			config := baseline
			config.ID = i + 1
			config.Cutoff = cutoff
			x.Configs = append(x.Configs, config)
			x.MatchUps = append(x.MatchUps, [2]metrics.AgentConfig{baseline, config})
		}
	case "baseline":
		// Rollout strength against uniform random play
		random := metrics.AgentConfig{ID: 0, Strategy: RandomStrategy}
		x.Configs = []metrics.AgentConfig{random}
		for i, rollouts := range []int{10, 50, 100} {
			config := metrics.AgentConfig{ID: i + 1, Strategy: RolloutStrategy, Rollouts: rollouts}
			x.Configs = append(x.Configs, config)
			x.MatchUps = append(x.MatchUps, [2]metrics.AgentConfig{config, random})
		}
	default:
		return Experiment{}, errors.Errorf("unknown experiment %q", name)
	}
	return x, nil
}
