package game

import (
	"fmt"

	"github.com/lox/indianpoker/internal/deck"
)

// SeatResult is one seat's outcome for a round.
type SeatResult struct {
	Seat     int
	Rank     deck.Rank
	Decision Decision
	Delta    int
}

// RoundResult is the observable outcome of one resolved round.
type RoundResult struct {
	Round       int
	Seats       []SeatResult
	WinningRank deck.Rank // zero when nobody called
	Callers     int
}

// HasWinner reports whether any caller contested the round.
func (r RoundResult) HasWinner() bool { return r.Callers > 0 }

// RoundObserver receives every resolved round, in order.
type RoundObserver interface {
	RoundResolved(result RoundResult)
}

// RoundObserverFunc adapts a function to the RoundObserver interface.
type RoundObserverFunc func(result RoundResult)

func (f RoundObserverFunc) RoundResolved(result RoundResult) { f(result) }

// RoundEngine plays single rounds over a shared arena of players.
//
// A round moves through four strictly ordered phases: deal, signal,
// decide, resolve. All claims are collected before any decision is
// made, and all decisions before any payoff, which is what makes the
// moves simultaneous.
type RoundEngine struct {
	deck     *deck.Deck
	signaler *Signaler
	players  []*Player
	scoring  Scoring
}

func NewRoundEngine(d *deck.Deck, signaler *Signaler, players []*Player, scoring Scoring) *RoundEngine {
	return &RoundEngine{deck: d, signaler: signaler, players: players, scoring: scoring}
}

// Play runs one full round and applies score deltas to the players.
func (e *RoundEngine) Play(round int) (RoundResult, error) {
	if err := e.deal(); err != nil {
		return RoundResult{}, fmt.Errorf("round %d: %w", round, err)
	}
	claims := e.signal()
	decisions := e.decide(claims)
	return e.resolve(round, decisions), nil
}

func (e *RoundEngine) deal() error {
	e.deck.Shuffle()
	for _, p := range e.players {
		card, err := e.deck.Draw()
		if err != nil {
			return err
		}
		p.card = card
	}
	return nil
}

// signal collects one claim per ordered (speaker, listener) pair,
// grouped by listener. The listener's peer group is every seat except
// the listener itself.
func (e *RoundEngine) signal() [][]Claim {
	claims := make([][]Claim, len(e.players))
	for li, listener := range e.players {
		peerMax := e.peerMax(li)
		claims[li] = make([]Claim, 0, len(e.players)-1)
		for si, speaker := range e.players {
			if si == li {
				continue
			}
			claims[li] = append(claims[li], Claim{
				Speaker: si,
				IsMax:   e.signaler.ClaimIsMax(speaker.honesty, listener.card, peerMax),
				Honesty: speaker.honesty,
			})
		}
	}
	return claims
}

// peerMax returns the top rank among all seats except seat.
func (e *RoundEngine) peerMax(seat int) deck.Rank {
	var max deck.Rank
	for i, p := range e.players {
		if i == seat {
			continue
		}
		if p.card.Beats(max) {
			max = p.card
		}
	}
	return max
}

func (e *RoundEngine) decide(claims [][]Claim) []Decision {
	decisions := make([]Decision, len(e.players))
	for i, p := range e.players {
		decisions[i] = p.policy.Decide(DecisionContext{
			Seat:         i,
			VisibleRanks: e.visibleRanks(i),
			Claims:       claims[i],
			Scoring:      e.scoring,
		})
	}
	return decisions
}

// visibleRanks returns every held rank except seat's own, the view a
// player actually has at the table.
func (e *RoundEngine) visibleRanks(seat int) []deck.Rank {
	ranks := make([]deck.Rank, 0, len(e.players)-1)
	for i, p := range e.players {
		if i == seat {
			continue
		}
		ranks = append(ranks, p.card)
	}
	return ranks
}

// resolve finds the winning rank among callers and applies payoffs. An
// empty caller set means no winner and no call payoffs; folders still
// pay the fold penalty.
func (e *RoundEngine) resolve(round int, decisions []Decision) RoundResult {
	var winning deck.Rank
	callers := 0
	for i, p := range e.players {
		if decisions[i] != Call {
			continue
		}
		callers++
		if p.card.Beats(winning) {
			winning = p.card
		}
	}

	result := RoundResult{
		Round:       round,
		Seats:       make([]SeatResult, len(e.players)),
		WinningRank: winning,
		Callers:     callers,
	}
	for i, p := range e.players {
		var delta int
		switch {
		case decisions[i] == Fold:
			delta = e.scoring.LoseFold
		case p.card == winning:
			// Ties at the winning rank all win.
			delta = e.scoring.Win
		default:
			delta = e.scoring.LoseCall
		}
		p.score += delta
		result.Seats[i] = SeatResult{Seat: i, Rank: p.card, Decision: decisions[i], Delta: delta}
	}
	return result
}
