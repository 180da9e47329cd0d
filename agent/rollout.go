package agent

import (
	"context"

	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/searcher"

	"github.com/rs/zerolog/log"
)

// Rollout picks the legal move with the best random playout score.
type Rollout struct {
	search *searcher.Rollout
	last   metrics.SearchMetric
}

func NewRollout(search *searcher.Rollout) *Rollout {
	return &Rollout{search: search}
}

func (a *Rollout) Decide(ctx context.Context, state game.GameState) (game.Move, error) {
	moves, err := legalMoves(ctx, state)
	if err != nil {
		return game.Move{}, err
	}
	move, metric, err := a.search.FindMove(ctx, state, moves)
	a.last = metric
	if err != nil {
		return game.Move{}, err
	}
	log.Debug().Msgf("%s chose %s from %d candidates (%d rollouts each, %d full playouts) in %s",
		state.Player(), move, metric.Candidates, metric.Rollouts, metric.FullPlayouts, metric.Duration)
	return move, nil
}

func (a *Rollout) LastMetric() metrics.SearchMetric {
	return a.last
}
