package omath

import "math"

// Summary describes a sample of measurements, such as per-tick reconciliation errors.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Max    float64
}

// Summarize computes a Summary of nums.
func Summarize(nums []float64) Summary {
	s := Summary{Count: len(nums), Mean: Mean(nums), StdDev: StandardDeviation(nums)}
	for _, v := range nums {
		s.Max = math.Max(s.Max, v)
	}
	return s
}

// Mean ...
func Mean(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum float64
	for _, v := range nums {
		sum += v
	}
	return sum / float64(len(nums))
}

// Variance ...
func Variance(nums []float64) (variance float64) {
	if len(nums) == 0 {
		return 0
	}
	mean := Mean(nums)
	for _, v := range nums {
		variance += (v - mean) * (v - mean)
	}
	return variance / float64(len(nums))
}

// StandardDeviation ...
func StandardDeviation(nums []float64) float64 {
	return math.Sqrt(Variance(nums))
}
