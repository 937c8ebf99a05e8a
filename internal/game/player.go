package game

import (
	"fmt"

	"github.com/lox/indianpoker/internal/deck"
)

// Player is one seat in a session. Honesty and policy are fixed at
// construction; the held card and the score change only through the
// round engine.
type Player struct {
	seat    int
	honesty float64
	policy  DecisionPolicy
	card    deck.Rank
	score   int
}

// Seat returns the player's stable arena index.
func (p *Player) Seat() int { return p.seat }

// Honesty returns the probability the player tells the truth when
// signaling, fixed for the session.
func (p *Player) Honesty() float64 { return p.honesty }

// Policy returns the player's decision policy.
func (p *Player) Policy() DecisionPolicy { return p.policy }

// Card returns the rank held in the current round.
func (p *Player) Card() deck.Rank { return p.card }

// Score returns the cumulative score across all resolved rounds.
func (p *Player) Score() int { return p.score }

func (p *Player) String() string {
	return fmt.Sprintf("player %d (%s, honesty %.2f)", p.seat, p.policy.Kind(), p.honesty)
}
