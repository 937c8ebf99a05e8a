package game

import (
	"testing"

	"github.com/lox/indianpoker/internal/randutil"
)

// claimsWithBelief builds a claim set whose weighted belief is
// trueClaims/total, using fully honest speakers.
func claimsWithBelief(trueClaims, total int) []Claim {
	claims := make([]Claim, total)
	for i := range claims {
		claims[i] = Claim{Speaker: i + 1, IsMax: i < trueClaims, Honesty: 1.0}
	}
	return claims
}

func TestRationalPolicyThreshold(t *testing.T) {
	policy := NewRationalPolicy()

	tests := []struct {
		name    string
		claims  []Claim
		scoring Scoring
		want    Decision
	}{
		// Default payoffs put the call threshold at belief 2/7.
		{"no claims about self", claimsWithBelief(0, 4), DefaultScoring(), Fold},
		{"belief 1/4 below threshold", claimsWithBelief(1, 4), DefaultScoring(), Fold},
		{"belief 9/32 just below threshold", claimsWithBelief(9, 32), DefaultScoring(), Fold},
		{"belief 19/64 just above threshold", claimsWithBelief(19, 64), DefaultScoring(), Call},
		{"belief 5/14 above threshold", claimsWithBelief(5, 14), DefaultScoring(), Call},
		{"belief 1 from a single opponent", claimsWithBelief(1, 1), DefaultScoring(), Call},
		{"all claims false", claimsWithBelief(0, 9), DefaultScoring(), Fold},
		// Win 6 / lose -2 puts the threshold at exactly 1/4; the
		// boundary belief has zero expected value and folds.
		{"exact boundary folds", claimsWithBelief(1, 4), Scoring{Win: 6, LoseFold: -1, LoseCall: -2}, Fold},
		{"just above boundary calls", claimsWithBelief(2, 4), Scoring{Win: 6, LoseFold: -1, LoseCall: -2}, Call},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Decide(DecisionContext{Claims: tt.claims, Scoring: tt.scoring})
			if got != tt.want {
				t.Errorf("Decide = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRationalPolicyWeighsHonesty(t *testing.T) {
	policy := NewRationalPolicy()

	// Two fully dishonest speakers both claiming "you are max" carry no
	// weight at all.
	claims := []Claim{
		{Speaker: 1, IsMax: true, Honesty: 0.0},
		{Speaker: 2, IsMax: true, Honesty: 0.0},
	}
	if got := policy.Decide(DecisionContext{Claims: claims, Scoring: DefaultScoring()}); got != Fold {
		t.Errorf("claims from honesty-0 speakers should fold, got %v", got)
	}

	// The same claims from credible speakers clear the threshold.
	for i := range claims {
		claims[i].Honesty = 0.9
	}
	if got := policy.Decide(DecisionContext{Claims: claims, Scoring: DefaultScoring()}); got != Call {
		t.Errorf("claims from honesty-0.9 speakers should call, got %v", got)
	}
}

func TestRandomPolicyDistribution(t *testing.T) {
	const trials = 10000
	policy := NewRandomPolicy(randutil.New(3))

	calls := 0
	for i := 0; i < trials; i++ {
		if policy.Decide(DecisionContext{}) == Call {
			calls++
		}
	}

	// 4 sigma around the binomial mean.
	if calls < 4800 || calls > 5200 {
		t.Errorf("random policy called %d of %d, want ~5000", calls, trials)
	}
}

func TestPolicyKindString(t *testing.T) {
	if Rational.String() != "rational" || Random.String() != "random" {
		t.Errorf("unexpected PolicyKind strings: %q, %q", Rational, Random)
	}
}

func TestParsePolicyKind(t *testing.T) {
	for _, kind := range []PolicyKind{Rational, Random} {
		got, err := ParsePolicyKind(kind.String())
		if err != nil || got != kind {
			t.Errorf("ParsePolicyKind(%q) = %v, %v", kind.String(), got, err)
		}
	}
	if _, err := ParsePolicyKind("clever"); err == nil {
		t.Error("ParsePolicyKind(\"clever\") should fail")
	}
}
