// Package stats holds the few descriptive statistics the analytics use.
// Empty inputs yield NaN so callers can surface them as undefined.
package stats

import "math"

func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}

// SampleStdDev is the n-1 standard deviation. It is NaN for fewer than two
// values.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		out = math.Max(out, v)
	}
	return out
}

func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		out = math.Min(out, v)
	}
	return out
}

// Ratio divides num by den, returning NaN when den is zero.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
