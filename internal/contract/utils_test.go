package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralva/gapscope/schema"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: LowValue,
		},
		{
			name:     "just before moderate",
			input:    39.9,
			expected: LowValue,
		},
		{
			name:     "exactly moderate",
			input:    40.0,
			expected: ModerateValue,
		},
		{
			name:     "just before high",
			input:    59.9,
			expected: ModerateValue,
		},
		{
			name:     "exactly high",
			input:    60.0,
			expected: HighValue,
		},
		{
			name:     "just before critical",
			input:    79.9,
			expected: HighValue,
		},
		{
			name:     "exactly critical",
			input:    80.0,
			expected: CriticalValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"low", 30, LowValue},
		{"moderate", 50, ModerateValue},
		{"high", 70, HighValue},
		{"critical", 90, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestTierColorLabel(t *testing.T) {
	for _, tier := range []schema.ConfidenceTier{
		schema.HighTier, schema.MediumTier, schema.LowTier, schema.InsufficientTier,
	} {
		assert.Contains(t, TierColorLabel(tier), string(tier))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{"shorter than width", "keyboard", 20, "keyboard"},
		{"exactly width", "keyboard", 8, "keyboard"},
		{"truncated with ellipsis", "mechanical keyboard mods", 10, "mechani..."},
		{"width too small to truncate", "keyboard", 3, "keyboard"},
		{"multibyte runes", "机械键盘改装指南大全", 6, "机械键..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"", false, true},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetSnapshotDBFilePath(t *testing.T) {
	path := GetSnapshotDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".gapscope_snapshots.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

// FuzzParseBoolString fuzzes boolean flag parsing; it must never panic and
// must only accept the documented forms.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "true", "false", "1", "0", "", "Y", "on"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseBoolString(s)
		if err != nil {
			return
		}
		switch strings.ToLower(s) {
		case "yes", "true", "1":
			assert.True(t, got)
		case "no", "false", "0":
			assert.False(t, got)
		default:
			t.Errorf("unexpected accepted input %q", s)
		}
	})
}
