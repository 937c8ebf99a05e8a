// Package scenario loads batch configuration from HCL files.
//
// A scenario names the table size, round and game counts, optional
// payoff overrides, and optional per-seat pins:
//
//	game {
//	  players = 40
//	  rounds  = 1000
//	  games   = 30
//	  seed    = 42
//	}
//
//	scoring {
//	  win       = 5
//	  lose_fold = -1
//	  lose_call = -2
//	}
//
//	player "2" {
//	  honesty = 0.9
//	  policy  = "random"
//	}
package scenario

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/indianpoker/internal/game"
)

// Defaults for a scenario that doesn't size itself.
const (
	DefaultPlayers = 10
	DefaultRounds  = 50
	DefaultGames   = 30
)

// Scenario is a complete batch configuration.
type Scenario struct {
	Game    *GameSettings    `hcl:"game,block"`
	Scoring *ScoringSettings `hcl:"scoring,block"`
	Players []PlayerOverride `hcl:"player,block"`
}

// GameSettings sizes the batch. A zero seed means derive one from the
// clock at run time.
type GameSettings struct {
	Players int   `hcl:"players,optional"`
	Rounds  int   `hcl:"rounds,optional"`
	Games   int   `hcl:"games,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// ScoringSettings overrides individual payoffs; absent fields keep
// their defaults.
type ScoringSettings struct {
	Win      *int `hcl:"win,optional"`
	LoseFold *int `hcl:"lose_fold,optional"`
	LoseCall *int `hcl:"lose_call,optional"`
}

// PlayerOverride pins one seat's honesty or policy on top of the
// construction-time defaults.
type PlayerOverride struct {
	Seat    string   `hcl:"seat,label"`
	Honesty *float64 `hcl:"honesty,optional"`
	Policy  string   `hcl:"policy,optional"`
}

// SeatNumber parses the block label into a seat index.
func (p PlayerOverride) SeatNumber() (int, error) {
	seat, err := strconv.Atoi(p.Seat)
	if err != nil {
		return 0, fmt.Errorf("scenario: player label %q is not a seat number", p.Seat)
	}
	return seat, nil
}

// Default returns the scenario used when no file is given.
func Default() *Scenario {
	return &Scenario{
		Game: &GameSettings{
			Players: DefaultPlayers,
			Rounds:  DefaultRounds,
			Games:   DefaultGames,
		},
	}
}

// Load reads and validates a scenario file.
func Load(filename string) (*Scenario, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes scenario source and validates it. Missing settings
// take defaults before validation.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scenario: parse %s: %s", filename, diags.Error())
	}

	var s Scenario
	if diags := gohcl.DecodeBody(file.Body, nil, &s); diags.HasErrors() {
		return nil, fmt.Errorf("scenario: decode %s: %s", filename, diags.Error())
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Game == nil {
		s.Game = &GameSettings{}
	}
	if s.Game.Players == 0 {
		s.Game.Players = DefaultPlayers
	}
	if s.Game.Rounds == 0 {
		s.Game.Rounds = DefaultRounds
	}
	if s.Game.Games == 0 {
		s.Game.Games = DefaultGames
	}
}

// Validate checks sizes, payoffs, and per-seat overrides.
func (s *Scenario) Validate() error {
	if s.Game.Players < 2 {
		return fmt.Errorf("scenario: players must be at least 2, got %d", s.Game.Players)
	}
	if s.Game.Rounds < 1 {
		return fmt.Errorf("scenario: rounds must be positive, got %d", s.Game.Rounds)
	}
	if s.Game.Games < 1 {
		return fmt.Errorf("scenario: games must be positive, got %d", s.Game.Games)
	}
	if err := s.Payoffs().Validate(); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}

	seen := make(map[int]bool)
	for _, p := range s.Players {
		seat, err := p.SeatNumber()
		if err != nil {
			return err
		}
		if seat < 0 || seat >= s.Game.Players {
			return fmt.Errorf("scenario: player %q is not a seat in a %d-player game", p.Seat, s.Game.Players)
		}
		if seen[seat] {
			return fmt.Errorf("scenario: duplicate player block for seat %d", seat)
		}
		seen[seat] = true

		if p.Honesty != nil && (*p.Honesty < 0 || *p.Honesty > 1) {
			return fmt.Errorf("scenario: honesty for seat %d out of range: %v", seat, *p.Honesty)
		}
		if p.Policy != "" {
			if _, err := game.ParsePolicyKind(p.Policy); err != nil {
				return fmt.Errorf("scenario: seat %d: %w", seat, err)
			}
		}
	}
	return nil
}

// Payoffs returns the scoring with any overrides applied over the
// defaults.
func (s *Scenario) Payoffs() game.Scoring {
	scoring := game.DefaultScoring()
	if s.Scoring == nil {
		return scoring
	}
	if s.Scoring.Win != nil {
		scoring.Win = *s.Scoring.Win
	}
	if s.Scoring.LoseFold != nil {
		scoring.LoseFold = *s.Scoring.LoseFold
	}
	if s.Scoring.LoseCall != nil {
		scoring.LoseCall = *s.Scoring.LoseCall
	}
	return scoring
}

// HonestyOverrides returns the per-seat honesty pins. Call only after
// Validate has passed.
func (s *Scenario) HonestyOverrides() map[int]float64 {
	out := make(map[int]float64)
	for _, p := range s.Players {
		if p.Honesty == nil {
			continue
		}
		if seat, err := p.SeatNumber(); err == nil {
			out[seat] = *p.Honesty
		}
	}
	return out
}

// PolicyOverrides returns the per-seat policy pins. Call only after
// Validate has passed.
func (s *Scenario) PolicyOverrides() map[int]game.PolicyKind {
	out := make(map[int]game.PolicyKind)
	for _, p := range s.Players {
		if p.Policy == "" {
			continue
		}
		kind, err := game.ParsePolicyKind(p.Policy)
		if err != nil {
			continue
		}
		if seat, err := p.SeatNumber(); err == nil {
			out[seat] = kind
		}
	}
	return out
}
