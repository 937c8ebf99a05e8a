package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("deck: empty")

// Deck is a shuffled multiset of ranks. The rank alphabet is replicated
// copies times, so duplicate ranks are expected and ties are possible.
type Deck struct {
	cards []Rank
	rng   *rand.Rand
}

// New creates a shuffled deck holding copies of the full rank alphabet.
// The rng drives the shuffle and must not be shared across goroutines.
func New(rng *rand.Rand, copies int) *Deck {
	if copies < 1 {
		copies = 1
	}
	cards := make([]Rank, 0, copies*NumRanks)
	for i := 0; i < copies; i++ {
		cards = append(cards, Ranks()...)
	}
	d := &Deck{cards: cards, rng: rng}
	d.Shuffle()
	return d
}

// Provisioned creates a deck holding enough copies of the alphabet to
// serve at least draws draws.
func Provisioned(rng *rand.Rand, draws int) *Deck {
	copies := draws/NumRanks + 1
	return New(rng, copies)
}

// Shuffle performs a Fisher-Yates shuffle over the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Rank, error) {
	if len(d.cards) == 0 {
		return 0, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
