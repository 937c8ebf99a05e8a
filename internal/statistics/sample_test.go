package statistics

import (
	"math"
	"testing"
)

func TestSample_Empty(t *testing.T) {
	s := &Sample{}

	if s.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty sample, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty sample, got %f", s.Variance())
	}
	if s.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty sample, got %f", s.StdError())
	}
	if s.Median() != 0 {
		t.Errorf("Expected median of 0 for empty sample, got %f", s.Median())
	}
	if s.Validate() == nil {
		t.Error("Expected validation failure for empty sample")
	}
}

func TestSample_SingleValue(t *testing.T) {
	s := &Sample{}
	s.Add(2.5)

	if s.Count != 1 {
		t.Errorf("Expected count of 1, got %d", s.Count)
	}
	if s.Mean() != 2.5 {
		t.Errorf("Expected mean of 2.5, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", s.Variance())
	}
	if s.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", s.Median())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid sample, got %v", err)
	}
}

func TestSample_KnownValues(t *testing.T) {
	s := &Sample{}
	s.AddAll(1, -2, 3, 0, -1)

	expectedMean := (1.0 - 2.0 + 3.0 + 0.0 - 1.0) / 5.0
	if math.Abs(s.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, s.Mean())
	}

	// Sample variance of {1,-2,3,0,-1}: mean 0.2, squared deviations
	// 0.64+4.84+7.84+0.04+1.44 = 14.8, / 4 = 3.7.
	if math.Abs(s.Variance()-3.7) > 1e-9 {
		t.Errorf("Expected variance of 3.7, got %f", s.Variance())
	}
	if math.Abs(s.StdDev()-math.Sqrt(3.7)) > 1e-9 {
		t.Errorf("Expected stddev of %f, got %f", math.Sqrt(3.7), s.StdDev())
	}

	// Sorted: -2, -1, 0, 1, 3.
	if s.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", s.Median())
	}
	if s.Min() != -2 || s.Max() != 3 {
		t.Errorf("Expected range [-2,3], got [%f,%f]", s.Min(), s.Max())
	}
}

func TestSample_EvenMedian(t *testing.T) {
	s := &Sample{}
	s.AddAll(4, 1, 3, 2)

	if s.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", s.Median())
	}
}

func TestSample_Percentile(t *testing.T) {
	s := &Sample{}
	for i := 0; i <= 100; i++ {
		s.Add(float64(i))
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0.0, 0},
		{0.25, 25},
		{0.5, 50},
		{0.95, 95},
		{1.0, 100},
	}
	for _, tt := range tests {
		if got := s.Percentile(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%.2f) = %f, want %f", tt.p, got, tt.want)
		}
	}
}

func TestSample_ConfidenceInterval(t *testing.T) {
	s := &Sample{}
	for i := 0; i < 100; i++ {
		s.Add(float64(i % 10))
	}

	low, high := s.ConfidenceInterval95()
	mean := s.Mean()
	if low >= mean || high <= mean {
		t.Errorf("CI [%f,%f] should straddle the mean %f", low, high, mean)
	}
	if math.Abs((mean-low)-(high-mean)) > 1e-9 {
		t.Errorf("CI [%f,%f] should be symmetric around %f", low, high, mean)
	}
}

func TestSample_Merge(t *testing.T) {
	a := &Sample{}
	a.AddAll(1, 2, 3)
	b := &Sample{}
	b.AddAll(4, 5)

	a.Merge(b)
	if a.Count != 5 {
		t.Fatalf("Expected merged count of 5, got %d", a.Count)
	}
	if math.Abs(a.Mean()-3.0) > 1e-9 {
		t.Errorf("Expected merged mean of 3, got %f", a.Mean())
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Merged sample should validate: %v", err)
	}
}
