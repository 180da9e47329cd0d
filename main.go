package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"quixo/agent"
	"quixo/config"
	"quixo/experiments"
	"quixo/game"
	"quixo/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	flag.StringVar(&cfg.P0, "p0", cfg.P0, "Strategy of Player0: random, rollout or table")
	flag.StringVar(&cfg.P1, "p1", cfg.P1, "Strategy of Player1: random, rollout or table")
	flag.IntVar(&cfg.Games, "games", cfg.Games, "Number of games per match up, 0 for the default")
	flag.IntVar(&cfg.Rollouts, "rollouts", cfg.Rollouts, "Playouts per candidate move")
	flag.IntVar(&cfg.SampleCap, "sample", cfg.SampleCap, "Candidate moves scored per decision")
	flag.IntVar(&cfg.Goroutines, "goroutines", cfg.Goroutines, "Number of goroutines for parallel playouts")
	flag.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Time budget per move, 0 for none")
	flag.IntVar(&cfg.Cutoff, "cutoff", cfg.Cutoff, "Playout depth scored as a draw, 0 to play to a win")
	flag.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "Moves per game before giving up, 0 for unbounded")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 for a fresh one")
	flag.StringVar(&cfg.Table, "table", cfg.Table, "Learned table file")
	flag.IntVar(&cfg.Train, "train", cfg.Train, "Training games for the table before playing")
	flag.StringVar(&cfg.Experiment, "experiment", cfg.Experiment, "Run a named experiment: throughput, parallelization, cutoff or baseline")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "Directory for experiment records")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	seed := cfg.Seed
	if seed == 0 {
		seed = utils.NewSeed()
	}
	log.Info().Msgf("seed %d", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Train > 0 {
		if err := train(ctx, cfg, seed); err != nil {
			log.Fatal().Err(err).Msg("training failed")
		}
	}

	x, err := experiment(cfg, seed)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid experiment")
	}
	summary, err := x.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().Msgf("played %d games (%d unfinished), wins by agent: %v, records in %s",
		summary.Games, summary.Unfinished, summary.Wins, summary.Dir)
}

// train learns a table for the side that plays it, Player0 by default.
func train(ctx context.Context, cfg config.Config, seed uint64) error {
	player := game.Player0
	if cfg.P0 != experiments.TableStrategy && cfg.P1 == experiments.TableStrategy {
		player = game.Player1
	}
	trainer := agent.NewTrainer(player, agent.NewTable(seed), agent.WithTrainerSeed(seed))

	log.Info().Msgf("training %s for %d games...", player, cfg.Train)
	stats, err := trainer.Train(ctx, cfg.Train)
	if err != nil {
		return err
	}
	if err := trainer.Table().SaveFile(cfg.Table); err != nil {
		return err
	}
	log.Info().Msgf("stored %d table entries in %s (%d wins, %d losses, %d draws)",
		trainer.Table().Len(), cfg.Table, stats.Wins, stats.Losses, stats.Draws)
	return nil
}

func experiment(cfg config.Config, seed uint64) (experiments.Experiment, error) {
	if cfg.Experiment != "" {
		x, err := experiments.Suite(cfg.Experiment, cfg.Out, cfg.Games, seed)
		x.MaxTurns = cfg.MaxTurns
		return x, err
	}
	x := experiments.Match(cfg.Out, cfg.AgentConfig(0, cfg.P0), cfg.AgentConfig(1, cfg.P1), cfg.Games, seed)
	x.MaxTurns = cfg.MaxTurns
	return x, nil
}
