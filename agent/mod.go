package agent

import (
	"context"

	"quixo/experiments/metrics"
	"quixo/game"

	"github.com/pkg/errors"
)

var ErrNoMoves = errors.New("no legal moves")

type Strategy interface {
	// Decide returns a move for the side to move in state. The move is not
	// guaranteed to be legal; the caller validates it.
	Decide(ctx context.Context, state game.GameState) (game.Move, error)
}

// Reporter is implemented by strategies that measure their decisions.
type Reporter interface {
	LastMetric() metrics.SearchMetric
}

func legalMoves(ctx context.Context, state game.GameState) ([]game.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, errors.Wrapf(ErrNoMoves, "%s to move", state.Player())
	}
	return moves, nil
}
