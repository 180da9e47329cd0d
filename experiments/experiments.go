package experiments

import (
	"context"

	"quixo/agent"
	"quixo/engine"
	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Experiment plays Games games per matchup. The first config of a matchup
// plays Player0 and the starting player alternates from game to game.
type Experiment struct {
	Name     string
	Root     string // Output directory root
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int
	Seed     uint64
	MaxTurns int // Per game, 0 for unbounded
}

type Summary struct {
	Dir        string
	Games      int
	Wins       map[int]int // AgentConfig.ID to games won
	Unfinished int
}

func (x Experiment) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Wins: map[int]int{}}
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		config0, config1 := matchup[0], matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent0=%+v and agent1=%+v...", mi+1, len(x.MatchUps), config0, config1)

		for i := 0; i < x.Games; i++ {
			count++
			starting := game.Players[i%2]

			result, err := x.runGame(ctx, count, config0, config1, starting)
			switch {
			case errors.Is(err, engine.ErrStrategyFailed), errors.Is(err, engine.ErrTurnLimit):
				summary.Unfinished++
				log.Warn().Err(err).Msgf("matchup %d of %d game %d did not finish", mi+1, len(x.MatchUps), i+1)
			case err != nil:
				return summary, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}

			summary.Games++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent0:     config0.ID,
				Agent1:     config1.ID,
				GameMetric: result.GameMetric,
			})
			for _, mm := range result.MoveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			switch result.Winner {
			case game.Player0:
				summary.Wins[config0.ID]++
			case game.Player1:
				summary.Wins[config1.ID]++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(x.MatchUps), i+1, result.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(x.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	dir, err := x.store(gameRecords, moveRecords)
	summary.Dir = dir
	return summary, err
}

func (x Experiment) runGame(ctx context.Context, id int, config0, config1 metrics.AgentConfig, starting game.Player) (engine.Result, error) {
	strategy0, err := NewStrategy(config0, utils.Mix(x.Seed, uint64(id), 0))
	if err != nil {
		return engine.Result{}, err
	}
	strategy1, err := NewStrategy(config1, utils.Mix(x.Seed, uint64(id), 1))
	if err != nil {
		return engine.Result{}, err
	}

	options := []engine.Option{engine.WithStartingPlayer(starting)}
	if x.MaxTurns > 0 {
		options = append(options, engine.WithMaxTurns(x.MaxTurns))
	}
	e := engine.New([2]agent.Strategy{strategy0, strategy1}, options...)
	return e.Run(ctx)
}

func (x Experiment) store(gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(x.Root, x.Name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}

	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return writer.Dir(), err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return writer.Dir(), err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return writer.Dir(), err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
