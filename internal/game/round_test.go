package game

import (
	"testing"

	"github.com/lox/indianpoker/internal/deck"
	"github.com/lox/indianpoker/internal/randutil"
)

// stubPolicy always returns the same decision.
type stubPolicy struct {
	kind     PolicyKind
	decision Decision
}

func (s stubPolicy) Kind() PolicyKind                { return s.kind }
func (s stubPolicy) Decide(DecisionContext) Decision { return s.decision }

func playersWithCards(t *testing.T, cards []deck.Rank, honesty []float64, policies []DecisionPolicy) []*Player {
	t.Helper()
	players := make([]*Player, len(cards))
	for i := range cards {
		players[i] = &Player{seat: i, honesty: honesty[i], policy: policies[i], card: cards[i]}
	}
	return players
}

func TestSignalPeerGroups(t *testing.T) {
	// Three fully honest seats holding K, Q, 2. Each listener's peer
	// group is everyone else, so ground truths are:
	//   seat 0 (K): peers hold Q,2 -> max Q, K != Q  -> false
	//   seat 1 (Q): peers hold K,2 -> max K, Q != K  -> false
	//   seat 2 (2): peers hold K,Q -> max K, 2 != K  -> false
	players := playersWithCards(t,
		[]deck.Rank{deck.King, deck.Queen, deck.Two},
		[]float64{1, 1, 1},
		[]DecisionPolicy{NewRationalPolicy(), NewRationalPolicy(), NewRationalPolicy()},
	)
	e := NewRoundEngine(nil, NewSignaler(randutil.New(1)), players, DefaultScoring())

	claims := e.signal()
	for seat, received := range claims {
		if len(received) != 2 {
			t.Fatalf("seat %d received %d claims, want 2", seat, len(received))
		}
		for _, c := range received {
			if c.Speaker == seat {
				t.Errorf("seat %d received a claim from itself", seat)
			}
			if c.IsMax {
				t.Errorf("seat %d received claim true from %d, want false", seat, c.Speaker)
			}
		}
	}
}

func TestSignalTieAtPeerMax(t *testing.T) {
	// Seat 0 ties the best of its peers, so honest claims about it are
	// true.
	players := playersWithCards(t,
		[]deck.Rank{deck.King, deck.King, deck.Two},
		[]float64{1, 1, 1},
		[]DecisionPolicy{NewRationalPolicy(), NewRationalPolicy(), NewRationalPolicy()},
	)
	e := NewRoundEngine(nil, NewSignaler(randutil.New(1)), players, DefaultScoring())

	claims := e.signal()
	for _, c := range claims[0] {
		if !c.IsMax {
			t.Errorf("claim about seat 0 from %d = false, want true", c.Speaker)
		}
	}
	for _, c := range claims[2] {
		if c.IsMax {
			t.Errorf("claim about seat 2 from %d = true, want false", c.Speaker)
		}
	}
}

func TestVisibleRanksExcludeSelf(t *testing.T) {
	players := playersWithCards(t,
		[]deck.Rank{deck.Ace, deck.Five, deck.Nine},
		[]float64{0.5, 0.5, 0.5},
		[]DecisionPolicy{NewRationalPolicy(), NewRationalPolicy(), NewRationalPolicy()},
	)
	e := NewRoundEngine(nil, NewSignaler(randutil.New(1)), players, DefaultScoring())

	got := e.visibleRanks(1)
	want := []deck.Rank{deck.Ace, deck.Nine}
	if len(got) != len(want) {
		t.Fatalf("visibleRanks(1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visibleRanks(1)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResolveTiedCallersAllWin(t *testing.T) {
	always := stubPolicy{kind: Rational, decision: Call}
	players := playersWithCards(t,
		[]deck.Rank{deck.King, deck.King, deck.Two},
		[]float64{0.5, 0.5, 0.5},
		[]DecisionPolicy{always, always, always},
	)
	e := NewRoundEngine(nil, NewSignaler(randutil.New(1)), players, DefaultScoring())

	result := e.resolve(1, []Decision{Call, Call, Call})
	if result.WinningRank != deck.King {
		t.Fatalf("winning rank = %v, want K", result.WinningRank)
	}
	if result.Callers != 3 {
		t.Fatalf("callers = %d, want 3", result.Callers)
	}

	wantDeltas := []int{5, 5, -2}
	for i, seat := range result.Seats {
		if seat.Delta != wantDeltas[i] {
			t.Errorf("seat %d delta = %d, want %d", i, seat.Delta, wantDeltas[i])
		}
	}
	if players[0].Score() != 5 || players[1].Score() != 5 || players[2].Score() != -2 {
		t.Errorf("scores = %d,%d,%d, want 5,5,-2",
			players[0].Score(), players[1].Score(), players[2].Score())
	}
}

func TestResolveEmptyCallerSet(t *testing.T) {
	never := stubPolicy{kind: Random, decision: Fold}
	players := playersWithCards(t,
		[]deck.Rank{deck.Ace, deck.Two},
		[]float64{0.5, 0.5},
		[]DecisionPolicy{never, never},
	)
	e := NewRoundEngine(nil, NewSignaler(randutil.New(1)), players, DefaultScoring())

	result := e.resolve(1, []Decision{Fold, Fold})
	if result.HasWinner() {
		t.Error("all-fold round should have no winner")
	}
	if result.Callers != 0 {
		t.Errorf("callers = %d, want 0", result.Callers)
	}
	for _, seat := range result.Seats {
		if seat.Delta != -1 {
			t.Errorf("seat %d delta = %d, want -1", seat.Seat, seat.Delta)
		}
		if seat.Decision != Fold {
			t.Errorf("seat %d decision = %v, want fold", seat.Seat, seat.Decision)
		}
	}
}

func TestTwoPlayerHonestTrace(t *testing.T) {
	// Two fully honest rational players holding K and 2. Each one's
	// peer group is exactly the other seat, so both ground truths are
	// "your card equals the other card", false on both sides. Honest
	// claims pass through unchanged, both beliefs are 0, both expected
	// values are the call penalty, and both players fold.
	players := playersWithCards(t,
		[]deck.Rank{deck.King, deck.Two},
		[]float64{1, 1},
		[]DecisionPolicy{NewRationalPolicy(), NewRationalPolicy()},
	)
	e := NewRoundEngine(nil, NewSignaler(randutil.New(1)), players, DefaultScoring())

	claims := e.signal()
	for seat, received := range claims {
		if len(received) != 1 || received[0].IsMax {
			t.Fatalf("seat %d claims = %+v, want a single false claim", seat, received)
		}
	}

	decisions := e.decide(claims)
	for seat, d := range decisions {
		if d != Fold {
			t.Errorf("seat %d decided %v, want fold", seat, d)
		}
	}

	result := e.resolve(1, decisions)
	for _, seat := range result.Seats {
		if seat.Delta != -1 {
			t.Errorf("seat %d delta = %d, want -1", seat.Seat, seat.Delta)
		}
	}
	if players[0].Score() != -1 || players[1].Score() != -1 {
		t.Errorf("scores = %d,%d, want -1,-1", players[0].Score(), players[1].Score())
	}
}

func TestPlayDealsEverySeat(t *testing.T) {
	always := stubPolicy{kind: Rational, decision: Call}
	players := playersWithCards(t,
		[]deck.Rank{0, 0, 0, 0},
		[]float64{0.5, 0.5, 0.5, 0.5},
		[]DecisionPolicy{always, always, always, always},
	)
	rng := randutil.New(11)
	e := NewRoundEngine(deck.Provisioned(rng, 4), NewSignaler(rng), players, DefaultScoring())

	result, err := e.Play(1)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	for _, p := range players {
		if !p.Card().Valid() {
			t.Errorf("player %d holds invalid card %v after deal", p.Seat(), p.Card())
		}
	}
	if result.Round != 1 {
		t.Errorf("result round = %d, want 1", result.Round)
	}
	if result.Callers != 4 {
		t.Errorf("callers = %d, want 4", result.Callers)
	}
}
