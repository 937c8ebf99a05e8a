package statistics

import "fmt"

// Bin is one histogram bucket over [Low, High).
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Label renders the bucket range for chart axes.
func (b Bin) Label() string {
	return fmt.Sprintf("%.0f..%.0f", b.Low, b.High)
}

// Bins divides [lo, hi] into n equal-width buckets and counts values
// into them. The top bucket is closed so hi itself lands in range, and
// out-of-range values clamp to the edge buckets, which keeps groups
// comparable when they share lo/hi. A degenerate range collapses to a
// single bucket.
func Bins(values []float64, lo, hi float64, n int) []Bin {
	if n < 1 {
		n = 1
	}
	if hi <= lo {
		bins := []Bin{{Low: lo, High: lo + 1}}
		bins[0].Count = len(values)
		return bins
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[n-1].High = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}
