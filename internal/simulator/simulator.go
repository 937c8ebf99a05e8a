// Package simulator runs batches of independent sessions and collects
// every seat's final score for reporting.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/indianpoker/internal/game"
	"github.com/lox/indianpoker/internal/randutil"
	"github.com/lox/indianpoker/internal/sessionid"
)

// Config holds configuration for a simulation batch.
type Config struct {
	Players int
	Rounds  int
	Games   int   // independent sessions
	Seed    int64 // 0 derives a seed from the clock
	Workers int   // parallel sessions; 0 uses GOMAXPROCS

	Scoring  game.Scoring
	Honesty  map[int]float64         // per-seat honesty pins
	Policies map[int]game.PolicyKind // per-seat policy pins

	Logger           zerolog.Logger
	Clock            quartz.Clock
	ProgressInterval time.Duration // 0 disables the progress ticker
	OnProgress       func(completed, total int)
}

// Validate checks the batch dimensions and scoring.
func (c Config) Validate() error {
	if c.Players < 2 {
		return fmt.Errorf("simulator: players must be at least 2, got %d", c.Players)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("simulator: rounds must be positive, got %d", c.Rounds)
	}
	if c.Games < 1 {
		return fmt.Errorf("simulator: games must be positive, got %d", c.Games)
	}
	return c.Scoring.Validate()
}

// PlayerResult is one seat's outcome across one whole session.
type PlayerResult struct {
	Game    int
	Seat    int
	Policy  game.PolicyKind
	Honesty float64
	Score   int
}

// Result is the outcome of a batch.
type Result struct {
	ID       string // run identifier carried into logs and reports
	Players  int
	Rounds   int
	Games    int
	Seed     int64
	Seats    []PlayerResult // every seat of every game, in game order
	Duration time.Duration
}

// Simulator runs independent sessions concurrently. Each game derives
// its own RNG stream from the batch seed, so results are reproducible
// and uncorrelated regardless of scheduling or worker count.
type Simulator struct {
	config Config
}

// New creates a simulator, filling config defaults.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Scoring == (game.Scoring{}) {
		config.Scoring = game.DefaultScoring()
	}
	return &Simulator{config: config}
}

// Run executes the batch and returns the merged results.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Clock.Now().UnixNano()
	}

	runID := sessionid.New()
	logger := cfg.Logger.With().Str("run", runID).Logger()
	logger.Info().
		Int("players", cfg.Players).
		Int("rounds", cfg.Rounds).
		Int("games", cfg.Games).
		Int64("seed", seed).
		Int("workers", cfg.Workers).
		Msg("starting simulation")

	start := cfg.Clock.Now()

	var completed atomic.Int64
	tickerCtx, stopTicker := context.WithCancel(ctx)
	defer stopTicker()
	if cfg.ProgressInterval > 0 {
		cfg.Clock.TickerFunc(tickerCtx, cfg.ProgressInterval, func() error {
			done := int(completed.Load())
			if cfg.OnProgress != nil {
				cfg.OnProgress(done, cfg.Games)
			} else {
				logger.Info().Int("completed", done).Int("games", cfg.Games).Msg("progress")
			}
			return nil
		}, "progress")
	}

	perGame := make([][]PlayerResult, cfg.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seats, err := s.playGame(seed, i)
			if err != nil {
				return err
			}
			perGame[i] = seats
			completed.Add(1)
			logger.Debug().Int("game", i).Msg("session complete")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stopTicker()

	result := &Result{
		ID:       runID,
		Players:  cfg.Players,
		Rounds:   cfg.Rounds,
		Games:    cfg.Games,
		Seed:     seed,
		Seats:    make([]PlayerResult, 0, cfg.Games*cfg.Players),
		Duration: cfg.Clock.Since(start),
	}
	for _, seats := range perGame {
		result.Seats = append(result.Seats, seats...)
	}

	if cfg.OnProgress != nil {
		cfg.OnProgress(cfg.Games, cfg.Games)
	}
	logger.Info().
		Dur("duration", result.Duration).
		Int("seats", len(result.Seats)).
		Msg("simulation complete")

	return result, nil
}

// playGame runs the n-th session on its own derived RNG stream.
// Overrides apply before the first round, after the session has drawn
// its random honesty values, so pinned and unpinned seats coexist.
func (s *Simulator) playGame(seed int64, n int) ([]PlayerResult, error) {
	cfg := s.config

	sess, err := game.NewSession(cfg.Players,
		game.WithRNG(randutil.Stream(seed, n)),
		game.WithScoring(cfg.Scoring),
		game.WithRounds(cfg.Rounds),
	)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", n, err)
	}

	for seat, honesty := range cfg.Honesty {
		h := honesty
		if err := sess.OverrideSeat(seat, &h, nil); err != nil {
			return nil, fmt.Errorf("game %d: %w", n, err)
		}
	}
	for seat, kind := range cfg.Policies {
		k := kind
		if err := sess.OverrideSeat(seat, nil, &k); err != nil {
			return nil, fmt.Errorf("game %d: %w", n, err)
		}
	}

	if err := sess.Run(cfg.Rounds); err != nil {
		return nil, fmt.Errorf("game %d: %w", n, err)
	}

	seats := make([]PlayerResult, 0, cfg.Players)
	for _, p := range sess.Players() {
		seats = append(seats, PlayerResult{
			Game:    n,
			Seat:    p.Seat(),
			Policy:  p.Policy().Kind(),
			Honesty: p.Honesty(),
			Score:   p.Score(),
		})
	}
	return seats, nil
}
