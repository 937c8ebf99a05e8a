package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/indianpoker/cmd/indianpoker/shared"
	"github.com/lox/indianpoker/internal/game"
	"github.com/lox/indianpoker/internal/report"
	"github.com/lox/indianpoker/internal/scenario"
	"github.com/lox/indianpoker/internal/simulator"
)

// RunCmd runs a headless batch of games and reports on it.
type RunCmd struct {
	Players    int    `kong:"default='10',env='INDIANPOKER_PLAYERS',help='Players per game'"`
	Rounds     int    `kong:"default='50',env='INDIANPOKER_ROUNDS',help='Rounds per game'"`
	Games      int    `kong:"default='30',env='INDIANPOKER_GAMES',help='Independent games in the batch'"`
	Seed       *int64 `kong:"env='INDIANPOKER_SEED',help='Deterministic RNG seed (optional)'"`
	Workers    int    `kong:"default='0',env='INDIANPOKER_WORKERS',help='Parallel games; 0 uses all CPUs'"`
	Scenario   string `kong:"type='existingfile',env='INDIANPOKER_SCENARIO',help='HCL scenario file; its game block overrides the batch flags'"`
	Output     string `kong:"default='summary',enum='summary,json,both',env='INDIANPOKER_OUTPUT',help='Report format'"`
	OutputFile string `kong:"help='Write the report to a file instead of stdout'"`
	Debug      bool   `kong:"env='INDIANPOKER_DEBUG',help='Enable debug logging'"`
}

func (c *RunCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := c.simulatorConfig(logger)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	result, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	rep := report.Build(result)

	writer := io.Writer(os.Stdout)
	if c.OutputFile != "" {
		f, err := os.Create(c.OutputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	reporter := report.NewReporter(writer, logger)
	switch c.Output {
	case "json":
		return reporter.WriteJSON(rep)
	case "both":
		if err := reporter.WriteSummary(rep); err != nil {
			return err
		}
		return reporter.WriteJSON(rep)
	default:
		return reporter.WriteSummary(rep)
	}
}

// simulatorConfig merges batch flags with the scenario file. The
// scenario's game block wins where both are given; per-seat overrides
// only ever come from the scenario.
func (c *RunCmd) simulatorConfig(logger zerolog.Logger) (simulator.Config, error) {
	cfg := simulator.Config{
		Players:          c.Players,
		Rounds:           c.Rounds,
		Games:            c.Games,
		Workers:          c.Workers,
		Scoring:          game.DefaultScoring(),
		Logger:           logger,
		ProgressInterval: 5 * time.Second,
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}

	if c.Scenario != "" {
		scn, err := scenario.Load(c.Scenario)
		if err != nil {
			return simulator.Config{}, err
		}
		cfg.Players = scn.Game.Players
		cfg.Rounds = scn.Game.Rounds
		cfg.Games = scn.Game.Games
		if scn.Game.Seed != 0 {
			cfg.Seed = scn.Game.Seed
		}
		cfg.Scoring = scn.Payoffs()
		cfg.Honesty = scn.HonestyOverrides()
		cfg.Policies = scn.PolicyOverrides()
		logger.Info().
			Str("scenario", c.Scenario).
			Int("players", cfg.Players).
			Int("rounds", cfg.Rounds).
			Int("games", cfg.Games).
			Msg("loaded scenario")
	}

	return cfg, nil
}
