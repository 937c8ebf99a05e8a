// Package report turns batch results into a policy comparison: per-policy
// score aggregates, a Welch two-sample t-test, and text/JSON renderings.
package report

import (
	"fmt"
	"time"

	"github.com/lox/indianpoker/internal/game"
	"github.com/lox/indianpoker/internal/simulator"
	"github.com/lox/indianpoker/internal/statistics"
)

// DefaultAlpha is the significance level for the policy comparison.
const DefaultAlpha = 0.05

// HistogramBins is the bucket count for score distribution charts. Both
// policy groups share the same bucket edges so the charts line up.
const HistogramBins = 10

// Group aggregates the final scores of every seat that played one
// policy across the batch.
type Group struct {
	Policy      game.PolicyKind
	Sample      *statistics.Sample
	MeanHonesty float64
}

// Report is the analyzed outcome of a batch.
type Report struct {
	RunID    string
	Players  int
	Rounds   int
	Games    int
	Seed     int64
	Duration time.Duration
	Alpha    float64

	Rational Group
	Random   Group
	Welch    statistics.TTestResult // rational minus random
}

// Build partitions a batch's final scores by policy kind and runs the
// comparison.
func Build(result *simulator.Result) *Report {
	rep := &Report{
		RunID:    result.ID,
		Players:  result.Players,
		Rounds:   result.Rounds,
		Games:    result.Games,
		Seed:     result.Seed,
		Duration: result.Duration,
		Alpha:    DefaultAlpha,
		Rational: Group{Policy: game.Rational, Sample: &statistics.Sample{}},
		Random:   Group{Policy: game.Random, Sample: &statistics.Sample{}},
	}

	var honestySum [2]float64
	for _, seat := range result.Seats {
		group := &rep.Random
		if seat.Policy == game.Rational {
			group = &rep.Rational
		}
		group.Sample.Add(float64(seat.Score))
		honestySum[seat.Policy] += seat.Honesty
	}
	if n := rep.Rational.Sample.Count; n > 0 {
		rep.Rational.MeanHonesty = honestySum[game.Rational] / float64(n)
	}
	if n := rep.Random.Sample.Count; n > 0 {
		rep.Random.MeanHonesty = honestySum[game.Random] / float64(n)
	}

	rep.Welch = statistics.WelchTTest(rep.Rational.Sample, rep.Random.Sample)
	return rep
}

// Groups returns the two groups in render order.
func (r *Report) Groups() []Group {
	return []Group{r.Rational, r.Random}
}

// ScoreRange returns the batch-wide min and max score so both groups
// can share histogram bucket edges.
func (r *Report) ScoreRange() (float64, float64) {
	lo, hi := 0.0, 0.0
	first := true
	for _, g := range r.Groups() {
		if g.Sample.Count == 0 {
			continue
		}
		if first || g.Sample.Min() < lo {
			lo = g.Sample.Min()
		}
		if first || g.Sample.Max() > hi {
			hi = g.Sample.Max()
		}
		first = false
	}
	return lo, hi
}

// Verdict summarizes the comparison in one line.
func (r *Report) Verdict() string {
	if !r.Welch.Significant(r.Alpha) {
		return "no significant difference between policies"
	}
	winner, loser := game.Rational, game.Random
	if r.Welch.Difference < 0 {
		winner, loser = loser, winner
	}
	return fmt.Sprintf("%s outperforms %s (%s)",
		winner, loser, statistics.InterpretPValue(r.Welch.PValue, r.Alpha))
}

// Document is the JSON-serializable form of a report.
type Document struct {
	RunID      string         `json:"run_id"`
	Config     RunConfig      `json:"configuration"`
	Groups     []GroupSummary `json:"groups"`
	Comparison Comparison     `json:"comparison"`
}

// RunConfig records the batch dimensions the scores came from.
type RunConfig struct {
	Players         int     `json:"players"`
	Rounds          int     `json:"rounds"`
	Games           int     `json:"games"`
	Seed            int64   `json:"seed"`
	DurationSeconds float64 `json:"duration_seconds"`
	Alpha           float64 `json:"significance_level"`
}

// GroupSummary holds one policy group's descriptive statistics.
type GroupSummary struct {
	Policy      string  `json:"policy"`
	Seats       int     `json:"seats"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"std_dev"`
	StdError    float64 `json:"std_error"`
	CI95Low     float64 `json:"ci_95_low"`
	CI95High    float64 `json:"ci_95_high"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	MeanHonesty float64 `json:"mean_honesty"`
}

// Comparison holds the Welch t-test between the two groups.
type Comparison struct {
	Difference  float64 `json:"difference"`
	StdError    float64 `json:"std_error"`
	TStatistic  float64 `json:"t_statistic"`
	DF          float64 `json:"degrees_of_freedom"`
	PValue      float64 `json:"p_value"`
	EffectSize  float64 `json:"effect_size"`
	EffectLabel string  `json:"effect_label"`
	CI95Low     float64 `json:"ci_95_low"`
	CI95High    float64 `json:"ci_95_high"`
	Significant bool    `json:"is_significant"`
	Verdict     string  `json:"verdict"`
}

// Document converts the report into its JSON form.
func (r *Report) Document() Document {
	groups := make([]GroupSummary, 0, 2)
	for _, g := range r.Groups() {
		ciLow, ciHigh := g.Sample.ConfidenceInterval95()
		groups = append(groups, GroupSummary{
			Policy:      g.Policy.String(),
			Seats:       g.Sample.Count,
			Mean:        g.Sample.Mean(),
			Median:      g.Sample.Median(),
			StdDev:      g.Sample.StdDev(),
			StdError:    g.Sample.StdError(),
			CI95Low:     ciLow,
			CI95High:    ciHigh,
			Min:         g.Sample.Min(),
			Max:         g.Sample.Max(),
			MeanHonesty: g.MeanHonesty,
		})
	}

	return Document{
		RunID: r.RunID,
		Config: RunConfig{
			Players:         r.Players,
			Rounds:          r.Rounds,
			Games:           r.Games,
			Seed:            r.Seed,
			DurationSeconds: r.Duration.Seconds(),
			Alpha:           r.Alpha,
		},
		Groups: groups,
		Comparison: Comparison{
			Difference:  r.Welch.Difference,
			StdError:    r.Welch.StdError,
			TStatistic:  r.Welch.TStatistic,
			DF:          r.Welch.DF,
			PValue:      r.Welch.PValue,
			EffectSize:  r.Welch.EffectSize,
			EffectLabel: statistics.InterpretEffectSize(r.Welch.EffectSize),
			CI95Low:     r.Welch.CI95Low,
			CI95High:    r.Welch.CI95High,
			Significant: r.Welch.Significant(r.Alpha),
			Verdict:     r.Verdict(),
		},
	}
}
