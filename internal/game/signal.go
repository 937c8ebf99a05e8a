package game

import (
	rand "math/rand/v2"

	"github.com/lox/indianpoker/internal/deck"
)

// Signaler turns ground truth into claims, flipping each one against
// the speaker's honesty.
type Signaler struct {
	rng *rand.Rand
}

func NewSignaler(rng *rand.Rand) *Signaler {
	return &Signaler{rng: rng}
}

// TellTruth returns truth with probability honesty and its negation
// otherwise. Every call is an independent trial; there is no
// correlation across listeners or rounds.
func (s *Signaler) TellTruth(truth bool, honesty float64) bool {
	if s.rng.Float64() < honesty {
		return truth
	}
	return !truth
}

// ClaimIsMax produces a speaker's claim that the listener holds the top
// card. Ground truth is listenerRank == peerMax, where peerMax is the
// highest rank among every seat except the listener (the speaker's own
// card included; the engine computes it, since the speaker cannot see
// its own card). The truth then passes through TellTruth with the
// speaker's honesty.
func (s *Signaler) ClaimIsMax(speakerHonesty float64, listenerRank, peerMax deck.Rank) bool {
	return s.TellTruth(listenerRank == peerMax, speakerHonesty)
}
