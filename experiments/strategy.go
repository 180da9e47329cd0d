package experiments

import (
	"quixo/agent"
	"quixo/experiments/metrics"
	"quixo/searcher"

	"github.com/pkg/errors"
)

const (
	RandomStrategy  = "random"
	RolloutStrategy = "rollout"
	TableStrategy   = "table"
)

// NewStrategy builds the strategy a config describes. Rollout strategies
// always collect search metrics.
func NewStrategy(config metrics.AgentConfig, seed uint64) (agent.Strategy, error) {
	switch config.Strategy {
	case RandomStrategy:
		return agent.NewRandom(seed), nil
	case RolloutStrategy, "":
		return agent.NewRollout(createRollout(config, seed)), nil
	case TableStrategy:
		if config.TablePath == "" {
			return nil, errors.Errorf("agent %d: table strategy needs a table path", config.ID)
		}
		table, err := agent.LoadTableFile(config.TablePath, seed)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d", config.ID)
		}
		return table, nil
	default:
		return nil, errors.Errorf("agent %d: unknown strategy %q", config.ID, config.Strategy)
	}
}

func createRollout(config metrics.AgentConfig, seed uint64) *searcher.Rollout {
	options := []searcher.Option{searcher.WithSeed(seed)}

	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Rollouts > 0 {
		options = append(options, searcher.WithRollouts(config.Rollouts))
	}
	if config.SampleCap > 0 {
		options = append(options, searcher.WithSampleCap(config.SampleCap))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics(metrics.NewCollector()))
	return searcher.NewRollout(options...)
}
