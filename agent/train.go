package agent

import (
	"context"

	"quixo/game"
	"quixo/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MaxEpisodeMoves ends a training game without a winner.
const MaxEpisodeMoves = 10000

type TrainerOption func(t *Trainer)

// Trainer learns a Table for one side by Q-learning against an opponent.
// After each game every recorded (board, move) pair of the trained side is
// moved towards the game reward, which is discounted once per recorded move.
type Trainer struct {
	player         game.Player
	table          *Table
	opponent       Strategy
	learningRate   float64
	discount       float64
	exploration    float64
	explorationMin float64
	decay          float64
	rng            *rand.Rand
}

type TrainingStats struct {
	Games       int
	Wins        int
	Losses      int
	Draws       int
	Exploration float64
}

type step struct {
	board game.Board
	move  game.Move
}

func WithLearningRate(rate float64) TrainerOption {
	return func(t *Trainer) {
		t.learningRate = rate
	}
}

func WithDiscount(discount float64) TrainerOption {
	return func(t *Trainer) {
		t.discount = discount
	}
}

// WithExploration sets the starting exploration rate, its floor and the
// factor applied before every game while it is above the floor.
func WithExploration(start, floor, decay float64) TrainerOption {
	return func(t *Trainer) {
		t.exploration = start
		t.explorationMin = floor
		t.decay = decay
	}
}

func WithOpponent(opponent Strategy) TrainerOption {
	return func(t *Trainer) {
		if opponent != nil {
			t.opponent = opponent
		}
	}
}

func WithTrainerSeed(seed uint64) TrainerOption {
	return func(t *Trainer) {
		t.rng = rand.New(rand.NewSource(seed))
	}
}

func NewTrainer(player game.Player, table *Table, options ...TrainerOption) *Trainer {
	t := &Trainer{ // Default values
		player:         player,
		table:          table,
		learningRate:   meta.LEARNING_RATE,
		discount:       meta.DISCOUNT,
		exploration:    meta.EXPLORATION,
		explorationMin: meta.EXPLORATION_MIN,
		decay:          meta.EXPLORATION_DECAY,
	}
	for _, option := range options {
		option(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(1))
	}
	if t.opponent == nil {
		t.opponent = NewRandom(t.rng.Uint64())
	}
	return t
}

func (t *Trainer) Table() *Table {
	return t.table
}

// Train plays games games, Player0 always moving first.
func (t *Trainer) Train(ctx context.Context, games int) (TrainingStats, error) {
	if !t.player.Valid() {
		return TrainingStats{}, errors.Wrap(game.ErrInvalidPlayer, "trainer")
	}
	stats := TrainingStats{}
	report := max(games/10, 1)

	for i := 0; i < games; i++ {
		if t.exploration > t.explorationMin {
			t.exploration *= t.decay
		}
		winner, trajectory, err := t.episode(ctx)
		if err != nil {
			return stats, errors.Wrapf(err, "training game %d", i+1)
		}

		reward := 0.0
		switch winner {
		case t.player:
			reward = 1
			stats.Wins++
		case t.player.Other():
			reward = -1
			stats.Losses++
		default:
			stats.Draws++
		}
		for _, s := range trajectory {
			t.table.update(s.board, s.move, reward, t.learningRate)
			reward *= t.discount
		}
		stats.Games++
		stats.Exploration = t.exploration

		if (i+1)%report == 0 {
			log.Info().Msgf("trained %s for %d of %d games: %d wins, %d losses, %d draws, exploration %.4f, %d table entries",
				t.player, i+1, games, stats.Wins, stats.Losses, stats.Draws, t.exploration, t.table.Len())
		}
	}
	return stats, nil
}

func (t *Trainer) episode(ctx context.Context) (game.Player, []step, error) {
	state := game.NewGameState()
	state.Current = game.Player0
	trajectory := []step{}

	for {
		if winner, ok := state.Winner(); ok {
			return winner, trajectory, nil
		}
		if state.Moves >= MaxEpisodeMoves {
			break
		}
		moves := state.LegalMoves()
		if len(moves) == 0 {
			break
		}

		var move game.Move
		if state.Player() == t.player {
			move = t.choose(state.Board, moves)
			trajectory = append(trajectory, step{board: state.Board, move: move})
		} else {
			var err error
			move, err = t.opponent.Decide(ctx, state)
			if err != nil {
				return game.NoPlayer, nil, err
			}
		}
		if err := state.Execute(move, state.Player()); err != nil {
			return game.NoPlayer, nil, err
		}
	}
	return game.NoPlayer, trajectory, nil
}

// choose explores with the current exploration rate, otherwise plays greedily.
func (t *Trainer) choose(b game.Board, moves []game.Move) game.Move {
	if t.rng.Float64() < t.exploration {
		return moves[t.rng.Intn(len(moves))]
	}
	return t.table.greedy(b, moves)
}
