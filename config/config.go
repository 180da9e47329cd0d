package config

import (
	"time"

	"quixo/experiments/metrics"
	"quixo/meta"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config holds the command line settings. Environment variables provide the
// defaults and flags override them.
type Config struct {
	P0         string        `env:"QUIXO_P0" envDefault:"rollout"`
	P1         string        `env:"QUIXO_P1" envDefault:"random"`
	Games      int           `env:"QUIXO_GAMES"` // 0 uses the experiment default
	Rollouts   int           `env:"QUIXO_ROLLOUTS"`
	SampleCap  int           `env:"QUIXO_SAMPLE_CAP"`
	Goroutines int           `env:"QUIXO_GOROUTINES"`
	Duration   time.Duration `env:"QUIXO_DURATION"`
	Cutoff     int           `env:"QUIXO_CUTOFF"`
	MaxTurns   int           `env:"QUIXO_MAX_TURNS"`
	Seed       uint64        `env:"QUIXO_SEED"` // 0 draws a fresh seed
	Table      string        `env:"QUIXO_TABLE"`
	Train      int           `env:"QUIXO_TRAIN"` // Training games, 0 to skip
	Experiment string        `env:"QUIXO_EXPERIMENT"`
	Out        string        `env:"QUIXO_OUT" envDefault:"out"`
	LogLevel   string        `env:"QUIXO_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

var strategies = map[string]bool{"random": true, "rollout": true, "table": true}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if !strategies[c.P0] {
		result = multierror.Append(result, errors.Errorf("p0: unknown strategy %q", c.P0))
	}
	if !strategies[c.P1] {
		result = multierror.Append(result, errors.Errorf("p1: unknown strategy %q", c.P1))
	}
	if (c.P0 == "table" || c.P1 == "table" || c.Train > 0) && c.Table == "" {
		result = multierror.Append(result, errors.New("table: path required for table strategies and training"))
	}
	if c.Train > 0 && c.P0 == "table" && c.P1 == "table" {
		// Training learns one side only.
		result = multierror.Append(result, errors.New("train: cannot train a table for both p0 and p1"))
	}
	for _, field := range []struct {
		name  string
		value int
	}{
		{"games", c.Games},
		{"rollouts", c.Rollouts},
		{"sample", c.SampleCap},
		{"goroutines", c.Goroutines},
		{"cutoff", c.Cutoff},
		{"max-turns", c.MaxTurns},
		{"train", c.Train},
	} {
		if field.value < 0 {
			result = multierror.Append(result, errors.Errorf("%s: must not be negative, got %d", field.name, field.value))
		}
	}
	if c.Duration < 0 {
		result = multierror.Append(result, errors.Errorf("duration: must not be negative, got %s", c.Duration))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "log-level"))
	}
	if result != nil {
		result.ErrorFormat = listFormat
	}
	return result.ErrorOrNil()
}

// AgentConfig describes the agent playing kind with the shared search settings.
func (c Config) AgentConfig(id int, kind string) metrics.AgentConfig {
	config := metrics.AgentConfig{
		ID:         id,
		Strategy:   kind,
		Goroutines: c.Goroutines,
		Duration:   c.Duration,
		Rollouts:   c.Rollouts,
		SampleCap:  c.SampleCap,
		Cutoff:     c.Cutoff,
		TablePath:  c.Table,
	}
	if config.Goroutines == 0 {
		config.Goroutines = meta.GO_ROUTINES
	}
	return config
}

func listFormat(errs []error) string {
	msg := "invalid configuration:"
	for _, err := range errs {
		msg += "\n\t" + err.Error()
	}
	return msg
}
