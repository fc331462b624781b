package norm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeBoundaries checks exact 0/100 output at the declared bounds.
func TestNormalizeBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		spec     MetricSpec
		expected float64
	}{
		{
			name:     "min maps to zero",
			raw:      10,
			spec:     MetricSpec{Min: 10, Max: 50, Direction: HigherIsBetter},
			expected: 0,
		},
		{
			name:     "max maps to hundred",
			raw:      50,
			spec:     MetricSpec{Min: 10, Max: 50, Direction: HigherIsBetter},
			expected: 100,
		},
		{
			name:     "min maps to hundred when inverted",
			raw:      10,
			spec:     MetricSpec{Min: 10, Max: 50, Direction: LowerIsBetter},
			expected: 100,
		},
		{
			name:     "max maps to zero when inverted",
			raw:      50,
			spec:     MetricSpec{Min: 10, Max: 50, Direction: LowerIsBetter},
			expected: 0,
		},
		{
			name:     "midpoint maps to fifty",
			raw:      30,
			spec:     MetricSpec{Min: 10, Max: 50, Direction: HigherIsBetter},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.spec)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

// TestNormalizeOutOfRange verifies clamp vs reject behavior.
func TestNormalizeOutOfRange(t *testing.T) {
	spec := MetricSpec{Min: 0, Max: 100, Direction: HigherIsBetter, Clamp: false}

	_, err := Normalize(150, spec)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Normalize(-1, spec)
	assert.ErrorIs(t, err, ErrOutOfRange)

	spec.Clamp = true
	got, err := Normalize(150, spec)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	got, err = Normalize(-1, spec)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

// TestNormalizeInvalidSpec rejects degenerate bounds.
func TestNormalizeInvalidSpec(t *testing.T) {
	_, err := Normalize(5, MetricSpec{Min: 10, Max: 10})
	assert.Error(t, err)

	_, err = Normalize(5, MetricSpec{Min: 20, Max: 10})
	assert.Error(t, err)
}

// TestMedian checks odd, even and empty inputs without mutating the input.
func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", []float64{}, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"outlier resistant", []float64{10, 12, 11, 1000000}, 11.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make([]float64, len(tt.values))
			copy(input, tt.values)

			assert.InDelta(t, tt.expected, Median(input), 0.0001)
			assert.Equal(t, tt.values, input, "input must not be mutated")
		})
	}
}

// TestMean checks the mean helper.
func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 0.0001)
}

// TestClamp100 bounds composite scores.
func TestClamp100(t *testing.T) {
	assert.Equal(t, 0.0, Clamp100(-5))
	assert.Equal(t, 100.0, Clamp100(105))
	assert.Equal(t, 42.0, Clamp100(42))
}
