// Package norm maps heterogeneous raw metrics onto a common 0-100 scale.
// Every downstream component composes these scores arithmetically, so the
// functions here are pure and deterministic: identical inputs always produce
// identical scores.
package norm

import (
	"errors"
	"fmt"
)

// Direction declares which end of a metric's range is desirable.
type Direction string

// All directions supported.
const (
	HigherIsBetter Direction = "higher_is_better" // default
	LowerIsBetter  Direction = "lower_is_better"
)

// ErrOutOfRange is returned when a raw value falls outside the declared
// bounds and clamping is disabled. The caller rejects that single input and
// continues the batch.
var ErrOutOfRange = errors.New("value out of declared range")

// MetricSpec declares the bounds and direction for one metric.
type MetricSpec struct {
	Min       float64
	Max       float64
	Direction Direction
	Clamp     bool
}

// Spec is a convenience constructor for the common clamped,
// higher-is-better case.
func Spec(min, max float64) MetricSpec {
	return MetricSpec{Min: min, Max: max, Direction: HigherIsBetter, Clamp: true}
}

// Normalize maps raw onto [0,100] by linear scaling within the spec's bounds.
// Values at Min score exactly 0 and values at Max exactly 100 (inverted when
// Direction is LowerIsBetter). Out-of-bounds values are clamped when
// spec.Clamp is set, and rejected with ErrOutOfRange otherwise.
func Normalize(raw float64, spec MetricSpec) (float64, error) {
	if spec.Max <= spec.Min {
		return 0, fmt.Errorf("invalid spec: max (%v) must exceed min (%v)", spec.Max, spec.Min)
	}

	if raw < spec.Min || raw > spec.Max {
		if !spec.Clamp {
			return 0, fmt.Errorf("%w: %v outside [%v, %v]", ErrOutOfRange, raw, spec.Min, spec.Max)
		}
		raw = Clamp(raw, spec.Min, spec.Max)
	}

	score := 100 * (raw - spec.Min) / (spec.Max - spec.Min)
	if spec.Direction == LowerIsBetter {
		score = 100 - score
	}
	return score, nil
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp100 bounds v to the canonical score range [0,100].
func Clamp100(v float64) float64 {
	return Clamp(v, 0, 100)
}

// Median returns the middle value of the input, averaging the two central
// values for even lengths. The input slice is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	// Insertion sort keeps this allocation-free beyond the copy; inputs here
	// are top-N competitor scans, not large datasets.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mean returns the arithmetic mean, or 0 for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
