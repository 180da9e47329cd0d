package engine

import (
	"context"
	"time"

	"quixo/agent"
	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// Engine runs one game between two strategies. A rejected move leaves the
// board untouched and asks the same strategy again.
type Engine struct {
	strategies  [2]agent.Strategy
	starting    game.Player
	maxAttempts int
	maxTurns    int
	observer    func(Event)

	state game.GameState
	phase Phase
}

func WithStartingPlayer(p game.Player) Option {
	return func(e *Engine) {
		if p.Valid() {
			e.starting = p
		}
	}
}

func WithMaxAttempts(attempts int) Option {
	return func(e *Engine) {
		if attempts > 0 {
			e.maxAttempts = attempts
		}
	}
}

// WithMaxTurns ends the game with ErrTurnLimit after turns applied moves.
// 0 means unbounded.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns >= 0 {
			e.maxTurns = turns
		}
	}
}

func WithObserver(observer func(Event)) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

func New(strategies [2]agent.Strategy, options ...Option) *Engine {
	for i, s := range strategies {
		if s == nil {
			panic(errors.Errorf("no strategy for %s", game.Player(i)))
		}
	}
	e := &Engine{ // Default values
		strategies:  strategies,
		starting:    game.Player0,
		maxAttempts: meta.MAX_ATTEMPTS,
	}
	for _, option := range options {
		option(e)
	}
	e.state = game.NewGameState()
	e.state.Current = e.starting
	e.phase = AwaitingMove
	return e
}

func (e *Engine) State() game.GameState {
	return e.state
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Run plays a fresh game until a line is completed. On error the partial
// result is still returned.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.state = game.NewGameState()
	e.state.Current = e.starting
	result := Result{Winner: game.NoPlayer, Line: game.Line{Owner: game.NoPlayer}}
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.starting),
		Winner:         int(game.NoPlayer),
		StartTime:      time.Now(),
	}

	log.Info().Msgf("%s is starting", e.starting)

	var err error
	for {
		e.emit(Event{Phase: CheckTerminal, Player: e.state.Player()})
		if line, ok := game.FindLine(e.state.Board); ok {
			result.Winner = line.Owner
			result.Line = line
			e.emit(Event{Phase: GameOver, Player: line.Owner})
			log.Info().Msgf("%s wins with %s %d after %d moves\n%s", line.Owner, line.Kind, line.Index, e.state.Moves, e.state.Board)
			break
		}
		if e.maxTurns > 0 && e.state.Moves >= e.maxTurns {
			err = errors.Wrapf(ErrTurnLimit, "no winner after %d moves", e.state.Moves)
			break
		}

		moveMetric, rejected, turnErr := e.turn(ctx)
		gameMetric.RejectedMoves += rejected
		if turnErr != nil {
			err = turnErr
			break
		}
		result.MoveMetrics = append(result.MoveMetrics, moveMetric)
	}

	gameMetric.Winner = int(result.Winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.state.Moves
	result.GameMetric = gameMetric
	result.State = e.state
	if err != nil {
		log.Warn().Err(err).Msgf("game stopped after %d moves", e.state.Moves)
	}
	return result, err
}

// turn asks the side to move for moves until one is applied or the attempt
// bound is reached.
func (e *Engine) turn(ctx context.Context) (metrics.MoveMetric, int, error) {
	player := e.state.Player()
	strategy := e.strategies[player]
	start := time.Now()
	rejected := 0

	var last error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return metrics.MoveMetric{}, rejected, errors.Wrap(err, "game interrupted")
		}
		e.emit(Event{Phase: AwaitingMove, Player: player, Attempt: attempt})

		move, err := strategy.Decide(ctx, e.state)
		if err == nil {
			e.emit(Event{Phase: Validating, Player: player, Attempt: attempt, Move: move})
			err = e.state.Execute(move, player)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return metrics.MoveMetric{}, rejected, errors.Wrap(ctxErr, "game interrupted")
			}
			last = err
			rejected++
			log.Warn().Err(err).Msgf("%s attempt %d of %d rejected", player, attempt, e.maxAttempts)
			e.emit(Event{Phase: Rejected, Player: player, Attempt: attempt, Move: move, Err: err})
			continue
		}

		e.emit(Event{Phase: Applied, Player: player, Attempt: attempt, Move: move})
		log.Debug().Msgf("move %d: %s played %s\n%s", e.state.Moves, player, move, e.state.Board)

		moveMetric := metrics.MoveMetric{
			Step:     e.state.Moves,
			Player:   int(player),
			Attempts: attempt,
			Duration: time.Since(start),
		}
		if reporter, ok := strategy.(agent.Reporter); ok {
			moveMetric.SearchMetric = reporter.LastMetric()
		}
		return moveMetric, rejected, nil
	}
	return metrics.MoveMetric{}, rejected, &StrategyFailedError{Player: player, Attempts: e.maxAttempts, Last: last}
}

func (e *Engine) emit(event Event) {
	e.phase = event.Phase
	if e.observer == nil {
		return
	}
	event.State = e.state
	e.observer(event)
}
