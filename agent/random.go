package agent

import (
	"context"
	"sync"

	"quixo/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Decide(ctx context.Context, state game.GameState) (game.Move, error) {
	moves, err := legalMoves(ctx, state)
	if err != nil {
		return game.Move{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return moves[r.rng.Intn(len(moves))], nil
}
