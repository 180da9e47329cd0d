// meta/meta.go
package meta

// ROLLOUTS defines the number of playouts per candidate move.
const ROLLOUTS = 500

// SAMPLE_CAP defines the number of candidate moves scored per decision.
const SAMPLE_CAP = 40

// MAX_ATTEMPTS defines how many consecutive illegal moves a player may submit.
const MAX_ATTEMPTS = 10

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// Q-learning defaults for training a table strategy.
const (
	LEARNING_RATE     = 0.5
	DISCOUNT          = 0.95
	EXPLORATION       = 1.0
	EXPLORATION_MIN   = 0.15
	EXPLORATION_DECAY = 0.9999
)
