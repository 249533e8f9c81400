// Package stats summarizes repeated timings of a single operation.
package stats

import (
	"math"
	"slices"
	"time"
)

// Summary holds per-call timings in microseconds.
type Summary struct {
	Name   string  `json:"name" yaml:"name"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Stdev  float64 `json:"stdev" yaml:"stdev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Measure calls fn iterations times and summarizes the per-call durations.
// The first error returned by fn stops the run.
func Measure(name string, iterations int, fn func() error) (Summary, error) {
	samples := make([]float64, 0, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		err := fn()
		d := time.Since(start)
		if err != nil {
			return Summary{}, err
		}
		samples = append(samples, float64(d.Nanoseconds())/1e3)
	}
	return Summarize(name, samples), nil
}

// Summarize computes the summary of samples. Stdev is the sample standard
// deviation and is 0 for fewer than two samples.
func Summarize(name string, samples []float64) Summary {
	s := Summary{Name: name}
	n := len(samples)
	if n == 0 {
		return s
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	s.Mean = sum / float64(n)
	s.Min, s.Max = sorted[0], sorted[n-1]
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - s.Mean) * (v - s.Mean)
		}
		s.Stdev = math.Sqrt(sq / float64(n-1))
	}
	return s
}

// Speedup returns how many times faster fast is than slow, by mean.
func Speedup(slow, fast Summary) float64 {
	if fast.Mean == 0 {
		return math.Inf(1)
	}
	return slow.Mean / fast.Mean
}
