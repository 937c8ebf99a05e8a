package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/indianpoker/internal/deck"
)

// PolicyKind identifies a decision policy variant.
type PolicyKind int

const (
	Rational PolicyKind = iota
	Random
)

func (k PolicyKind) String() string {
	switch k {
	case Rational:
		return "rational"
	case Random:
		return "random"
	}
	return fmt.Sprintf("PolicyKind(%d)", int(k))
}

// ParsePolicyKind parses the string form used in scenario files.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch s {
	case "rational":
		return Rational, nil
	case "random":
		return Random, nil
	}
	return 0, fmt.Errorf("unknown policy %q", s)
}

// Decision is a player's action for the round.
type Decision int

const (
	Fold Decision = iota
	Call
)

func (d Decision) String() string {
	switch d {
	case Fold:
		return "fold"
	case Call:
		return "call"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// Claim is one received signal: a speaker's assertion about whether the
// listener holds the top card, weighted by the speaker's honesty.
type Claim struct {
	Speaker int
	IsMax   bool
	Honesty float64
}

// DecisionContext is everything a seat may observe before acting. The
// seat's own card is deliberately absent.
type DecisionContext struct {
	Seat         int
	VisibleRanks []deck.Rank // opponents' cards, seat order with self skipped
	Claims       []Claim     // claims received about this seat, one per opponent
	Scoring      Scoring
}

// DecisionPolicy decides Call or Fold from what a seat can see. All
// decisions in a round happen before any is revealed, so Decide never
// observes another seat's action.
type DecisionPolicy interface {
	Kind() PolicyKind
	Decide(ctx DecisionContext) Decision
}

// RandomPolicy flips a fair coin each round, ignoring the context.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

func (p *RandomPolicy) Kind() PolicyKind { return Random }

func (p *RandomPolicy) Decide(DecisionContext) Decision {
	if p.rng.Float64() < 0.5 {
		return Call
	}
	return Fold
}

// RationalPolicy weighs the claims it received about itself by each
// speaker's honesty and calls when the expected value of calling is
// positive. Each claim is treated as independent evidence; there is no
// correction for opponents lying strategically.
type RationalPolicy struct{}

func NewRationalPolicy() *RationalPolicy { return &RationalPolicy{} }

func (p *RationalPolicy) Kind() PolicyKind { return Rational }

func (p *RationalPolicy) Decide(ctx DecisionContext) Decision {
	if len(ctx.Claims) == 0 {
		return Fold
	}

	var weight float64
	for _, c := range ctx.Claims {
		if c.IsMax {
			weight += c.Honesty
		}
	}
	belief := weight / float64(len(ctx.Claims))

	ev := belief*float64(ctx.Scoring.Win) + (1-belief)*float64(ctx.Scoring.LoseCall)
	if ev > 0 {
		return Call
	}
	return Fold
}
