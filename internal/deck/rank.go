package deck

import "fmt"

// Rank is a card rank. Suits carry no information in this game, so a
// card is just its rank.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the size of the rank alphabet.
const NumRanks = 13

// Ranks returns every rank in ascending order.
func Ranks() []Rank {
	ranks := make([]Rank, 0, NumRanks)
	for r := Two; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Beats reports whether r outranks other. Ten beats Nine.
func (r Rank) Beats(other Rank) bool {
	return r > other
}

func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// ParseRank parses the display form of a rank. "T" is accepted as an
// alias for "10".
func ParseRank(s string) (Rank, error) {
	switch s {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// MaxRank returns the highest rank in ranks, or false if ranks is empty.
func MaxRank(ranks []Rank) (Rank, bool) {
	if len(ranks) == 0 {
		return 0, false
	}
	max := ranks[0]
	for _, r := range ranks[1:] {
		if r.Beats(max) {
			max = r
		}
	}
	return max, true
}
