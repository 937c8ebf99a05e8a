package game

import "fmt"

// Scoring holds the per-outcome score deltas applied at resolution.
type Scoring struct {
	Win      int // called holding the winning rank
	LoseFold int // folded the round
	LoseCall int // called below the winning rank
}

// DefaultScoring returns the canonical payoffs. Prior runs used these
// values, so comparisons against them require the defaults.
func DefaultScoring() Scoring {
	return Scoring{Win: 5, LoseFold: -1, LoseCall: -2}
}

// Validate rejects payoff signs that break the call/fold tradeoff.
func (s Scoring) Validate() error {
	if s.Win <= 0 {
		return fmt.Errorf("scoring: win must be positive, got %d", s.Win)
	}
	if s.LoseFold >= 0 {
		return fmt.Errorf("scoring: lose_fold must be negative, got %d", s.LoseFold)
	}
	if s.LoseCall >= 0 {
		return fmt.Errorf("scoring: lose_call must be negative, got %d", s.LoseCall)
	}
	return nil
}
