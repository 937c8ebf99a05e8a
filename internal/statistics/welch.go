package statistics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds a Welch two-sample t-test comparing sample a
// against sample b.
type TTestResult struct {
	Difference float64 // mean(a) - mean(b)
	StdError   float64 // standard error of the difference
	TStatistic float64
	DF         float64 // Welch-Satterthwaite degrees of freedom
	PValue     float64 // two-tailed
	EffectSize float64 // Cohen's d
	CI95Low    float64 // 95% CI for the difference
	CI95High   float64
}

// Significant reports whether the difference clears alpha.
func (r TTestResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// WelchTTest compares the means of two samples without assuming equal
// variances. Both samples need at least two values; anything smaller
// returns a null result with PValue 1.
func WelchTTest(a, b *Sample) TTestResult {
	difference := a.Mean() - b.Mean()
	if a.Count < 2 || b.Count < 2 {
		return TTestResult{Difference: difference, PValue: 1}
	}

	se1 := a.StdError()
	se2 := b.StdError()
	se := math.Sqrt(se1*se1 + se2*se2)

	tStat := 0.0
	if se > 0 {
		tStat = difference / se
	}

	df := welchDF(a, b)

	effectSize := 0.0
	if pooled := pooledStdDev(a, b); pooled > 0 {
		effectSize = difference / pooled
	}

	pValue := 1.0
	ciLow, ciHigh := difference, difference
	if df > 0 {
		tDist := distuv.StudentsT{Nu: df, Mu: 0, Sigma: 1}
		// Two-tailed: P(|T| > |t|) = 2 * (1 - CDF(|t|)).
		pValue = 2 * (1 - tDist.CDF(math.Abs(tStat)))
		if pValue > 1 {
			pValue = 1
		} else if pValue < 0 {
			pValue = 0
		}

		margin := tDist.Quantile(0.975) * se
		ciLow, ciHigh = difference-margin, difference+margin
	}

	return TTestResult{
		Difference: difference,
		StdError:   se,
		TStatistic: tStat,
		DF:         df,
		PValue:     pValue,
		EffectSize: effectSize,
		CI95Low:    ciLow,
		CI95High:   ciHigh,
	}
}

// welchDF computes the Welch-Satterthwaite degrees of freedom.
func welchDF(a, b *Sample) float64 {
	v1 := a.Variance() / float64(a.Count)
	v2 := b.Variance() / float64(b.Count)

	numerator := (v1 + v2) * (v1 + v2)
	denominator := (v1*v1)/float64(a.Count-1) + (v2*v2)/float64(b.Count-1)
	if denominator == 0 {
		return float64(a.Count + b.Count - 2)
	}
	return numerator / denominator
}

// pooledStdDev is the denominator for Cohen's d.
func pooledStdDev(a, b *Sample) float64 {
	n1, n2 := a.Count, b.Count
	if n1+n2 <= 2 {
		return 0
	}
	pooledVar := (float64(n1-1)*a.Variance() + float64(n2-1)*b.Variance()) / float64(n1+n2-2)
	return math.Sqrt(pooledVar)
}

// InterpretEffectSize returns a reading of Cohen's d.
func InterpretEffectSize(d float64) string {
	abs := math.Abs(d)
	switch {
	case abs < 0.2:
		return "negligible"
	case abs < 0.5:
		return "small"
	case abs < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// InterpretPValue returns a reading of p against alpha.
func InterpretPValue(p, alpha float64) string {
	switch {
	case p < 0.001:
		return "highly significant"
	case p < 0.01:
		return "very significant"
	case p < alpha:
		return "significant"
	case p < 0.10:
		return "marginally significant"
	default:
		return "not significant"
	}
}
