package norm

import (
	"math"
	"testing"
)

// FuzzNormalize fuzzes Normalize with arbitrary values and bounds, checking
// that every successful result stays within [0,100].
func FuzzNormalize(f *testing.F) {
	seeds := []struct {
		raw, min, max float64
		clamp         bool
	}{
		{50, 0, 100, true},
		{0, 0, 100, false},
		{100, 0, 100, false},
		{-10, 0, 100, true},
		{1e9, 0, 1e6, true},
		{0.5, 0, 1, false},
	}
	for _, seed := range seeds {
		f.Add(seed.raw, seed.min, seed.max, seed.clamp)
	}

	f.Fuzz(func(t *testing.T, raw, min, max float64, clamp bool) {
		if math.IsNaN(raw) || math.IsNaN(min) || math.IsNaN(max) ||
			math.IsInf(raw, 0) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return
		}

		for _, dir := range []Direction{HigherIsBetter, LowerIsBetter} {
			got, err := Normalize(raw, MetricSpec{Min: min, Max: max, Direction: dir, Clamp: clamp})
			if err != nil {
				continue
			}
			if got < 0 || got > 100 {
				t.Errorf("Normalize(%v, [%v,%v], %s) = %v, outside [0,100]", raw, min, max, dir, got)
			}
		}
	})
}
