package searcher

import (
	"context"
	"runtime"
	"sync"
	"time"

	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/meta"
	"quixo/utils"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(r *Rollout)

// Score is the summed playout outcome of one candidate over Trials playouts.
type Score struct {
	Move   game.Move
	Total  int
	Trials int
}

// Rollout scores candidate moves by uniformly random playouts to a win.
type Rollout struct {
	goroutines int
	rollouts   int
	sampleCap  int
	duration   time.Duration
	cutoff     int
	metrics    metrics.Collector

	mu  sync.Mutex
	rng *rand.Rand
}

func WithGoroutines(goroutines int) Option {
	return func(r *Rollout) {
		if goroutines > 0 {
			r.goroutines = goroutines
		}
	}
}

func WithRollouts(rollouts int) Option {
	return func(r *Rollout) {
		if rollouts > 0 {
			r.rollouts = rollouts
		}
	}
}

func WithSampleCap(sampleCap int) Option {
	return func(r *Rollout) {
		if sampleCap > 0 {
			r.sampleCap = sampleCap
		}
	}
}

// WithDuration bounds the time spent per decision. At least one playout per
// candidate is always run.
func WithDuration(duration time.Duration) Option {
	return func(r *Rollout) {
		if duration > 0 {
			r.duration = duration
		}
	}
}

// WithCutoff stops a playout after depth random moves and scores it as a draw.
func WithCutoff(depth int) Option {
	return func(r *Rollout) {
		if depth > 0 {
			r.cutoff = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(r *Rollout) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(r *Rollout) {
		if collector != nil {
			r.metrics = collector
		}
	}
}

func NewRollout(options ...Option) *Rollout {
	r := &Rollout{ // Default values
		goroutines: runtime.NumCPU(),
		rollouts:   meta.ROLLOUTS,
		sampleCap:  meta.SAMPLE_CAP,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(utils.NewSeed()))
	}
	return r
}

// FindMove returns the sampled candidate with the strictly highest total
// score, ties going to the first one sampled.
func (r *Rollout) FindMove(ctx context.Context, state game.GameState, candidates []game.Move) (game.Move, metrics.SearchMetric, error) {
	scores, metric, err := r.Evaluate(ctx, state, candidates)
	if err != nil {
		return game.Move{}, metric, err
	}
	best := utils.FirstMax(scores, func(s Score) int { return s.Total })
	return scores[best].Move, metric, nil
}

// Evaluate samples at most sampleCap candidates and scores each one for the
// side to move in state. Every candidate ends up with the same trial count.
// It panics when candidates is empty.
func (r *Rollout) Evaluate(ctx context.Context, state game.GameState, candidates []game.Move) ([]Score, metrics.SearchMetric, error) {
	if len(candidates) == 0 {
		panic("searcher: no candidate moves to evaluate")
	}
	acting := state.Player()
	if !acting.Valid() {
		return nil, metrics.SearchMetric{}, errors.Wrap(game.ErrInvalidPlayer, "no side to move")
	}
	if state.IsTerminal() {
		return nil, metrics.SearchMetric{}, game.ErrGameOver
	}
	for _, move := range candidates {
		if !game.IsLegalMove(state.Board, move, acting) {
			return nil, metrics.SearchMetric{}, errors.Errorf("candidate %s is not legal for %s", move, acting)
		}
	}

	seed, sampled := r.prepare(candidates)
	r.metrics.Start(r.goroutines, r.sampleCap, r.cutoff)

	n := len(sampled)
	budget := ctx
	if r.duration > 0 {
		var cancel context.CancelFunc
		budget, cancel = context.WithTimeout(ctx, r.duration)
		defer cancel()
	}

	// Trials are scheduled round by round so an expired budget leaves whole
	// rounds behind. A round's slots are allocated when it is scheduled.
	var rounds []*round
	var g errgroup.Group
	g.SetLimit(r.goroutines)
schedule:
	for trial := 0; trial < r.rollouts; trial++ {
		if ctx.Err() != nil || (trial > 0 && budget.Err() != nil) {
			break
		}
		rd := newRound(n)
		rounds = append(rounds, rd)
		for i := 0; i < n; i++ {
			if ctx.Err() != nil || (trial > 0 && budget.Err() != nil) {
				break schedule
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if trial > 0 && budget.Err() != nil {
					return nil
				}
				rng := rand.New(rand.NewSource(utils.Mix(seed, uint64(i), uint64(trial))))
				outcome, full := playout(state, sampled[i], acting, r.cutoff, rng)
				r.metrics.AddEpisode()
				if full {
					r.metrics.AddFullPlayout()
				}
				rd.outcomes[i] = outcome
				rd.played[i] = true
				return nil
			})
		}
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, r.metrics.Complete(n, 0), errors.Wrap(err, "rollout search interrupted")
	}

	completed := completedRounds(rounds)
	scores := make([]Score, n)
	for i, move := range sampled {
		scores[i] = Score{Move: move, Trials: completed}
		for _, rd := range rounds[:completed] {
			scores[i].Total += int(rd.outcomes[i])
		}
	}
	return scores, r.metrics.Complete(n, completed), nil
}

// prepare draws the decision seed and the candidate sample from the engine's
// generator. Later randomness derives from the seed only, so results do not
// depend on goroutine scheduling.
func (r *Rollout) prepare(candidates []game.Move) (uint64, []game.Move) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seed := r.rng.Uint64()
	return seed, utils.Sample(r.rng, candidates, r.sampleCap)
}

// round holds one trial of every sampled candidate.
type round struct {
	outcomes []int8
	played   []bool
}

func newRound(n int) *round {
	return &round{outcomes: make([]int8, n), played: make([]bool, n)}
}

func (rd *round) complete() bool {
	for _, ok := range rd.played {
		if !ok {
			return false
		}
	}
	return true
}

// completedRounds counts the leading rounds in which every candidate was played.
func completedRounds(rounds []*round) int {
	for i, rd := range rounds {
		if !rd.complete() {
			return i
		}
	}
	return len(rounds)
}

// playout applies move for acting on a private copy of state, then plays
// uniformly random legal moves for both sides until a line is completed.
// full reports whether the playout reached a winner.
func playout(state game.GameState, move game.Move, acting game.Player, cutoff int, rng *rand.Rand) (outcome int8, full bool) {
	if err := state.Execute(move, acting); err != nil {
		panic(err)
	}
	for depth := 0; ; depth++ {
		if winner, ok := state.Winner(); ok {
			return reward(winner, acting), true
		}
		if cutoff > 0 && depth >= cutoff {
			return DRAW, false
		}
		moves := state.LegalMoves()
		if len(moves) == 0 {
			return DRAW, false
		}
		if err := state.Execute(moves[rng.Intn(len(moves))], state.Player()); err != nil {
			panic(err)
		}
	}
}

func reward(winner, acting game.Player) int8 {
	switch winner {
	case acting:
		return WIN
	case acting.Other():
		return LOSS
	default:
		return DRAW
	}
}
