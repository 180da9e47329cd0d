package engine

import (
	"fmt"

	"quixo/experiments/metrics"
	"quixo/game"

	"github.com/pkg/errors"
)

var (
	ErrStrategyFailed = errors.New("strategy failed to produce a legal move")
	ErrTurnLimit      = errors.New("turn limit reached")
)

// Phase is the turn controller's position in a turn.
type Phase int8

const (
	AwaitingMove Phase = iota
	Validating
	Applied
	Rejected
	CheckTerminal
	GameOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingMove:
		return "AwaitingMove"
	case Validating:
		return "Validating"
	case Applied:
		return "Applied"
	case Rejected:
		return "Rejected"
	case CheckTerminal:
		return "CheckTerminal"
	case GameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Phase(%d)", int8(p))
	}
}

// StrategyFailedError is returned when a strategy exhausts its attempts for a
// single turn.
type StrategyFailedError struct {
	Player   game.Player
	Attempts int
	Last     error // Last rejection
}

func (e *StrategyFailedError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts: %v", ErrStrategyFailed, e.Player, e.Attempts, e.Last)
}

func (e *StrategyFailedError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrStrategyFailed}
	}
	return []error{ErrStrategyFailed, e.Last}
}

// Event is emitted to the observer on every phase change.
type Event struct {
	Phase   Phase
	Player  game.Player
	Attempt int
	Move    game.Move
	Err     error
	State   game.GameState
}

type Result struct {
	Winner      game.Player
	Line        game.Line
	State       game.GameState
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}
