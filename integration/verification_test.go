//go:build integration

// Package integration contains integration tests for gapscope.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGapscope builds the CLI binary into a temp dir and returns its path.
func buildGapscope(t *testing.T) string {
	t.Helper()
	gapscopePath := filepath.Join(t.TempDir(), "gapscope")
	buildCmd := exec.Command("go", "build", "-o", gapscopePath, ".")
	buildCmd.Dir = ".." // Project root
	require.NoError(t, buildCmd.Run())
	return gapscopePath
}

// writeBundle writes the verification bundle to a temp file.
func writeBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(verificationBundleJSON), 0o644))
	return path
}

// runGapscope runs the binary with the given args and returns stdout.
func runGapscope(t *testing.T, binPath string, args ...string) string {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "stderr: %s", stderr.String())
	return stdout.String()
}

// TestReportDeterminism verifies that repeated runs over the same frozen
// bundle produce byte-identical JSON reports, regardless of worker count.
func TestReportDeterminism(t *testing.T) {
	binPath := buildGapscope(t)
	bundlePath := writeBundle(t)

	first := runGapscope(t, binPath, "report", bundlePath,
		"--output", "json", "--snapshot-backend", "none", "--workers", "1")
	second := runGapscope(t, binPath, "report", bundlePath,
		"--output", "json", "--snapshot-backend", "none", "--workers", "8")

	assert.Equal(t, first, second, "reports should be byte-identical across runs")
}

// TestReportStructure verifies the JSON report carries every section.
func TestReportStructure(t *testing.T) {
	binPath := buildGapscope(t)
	bundlePath := writeBundle(t)

	out := runGapscope(t, binPath, "report", bundlePath,
		"--output", "json", "--snapshot-backend", "none")

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	for _, section := range []string{
		"market_context",
		"competitor_intelligence",
		"thumbnail_analysis",
		"gap_verdicts",
		"diagnostics",
	} {
		assert.Contains(t, report, section)
	}
}

// TestGapOrderingAgainstJSON cross-checks that the verdict ranking in JSON
// output is sorted by gap score descending.
func TestGapOrderingAgainstJSON(t *testing.T) {
	binPath := buildGapscope(t)
	bundlePath := writeBundle(t)

	out := runGapscope(t, binPath, "gaps", bundlePath,
		"--output", "json", "--snapshot-backend", "none")

	var verdicts []struct {
		Rank     int     `json:"rank"`
		Topic    string  `json:"topic"`
		GapScore float64 `json:"gap_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &verdicts))
	require.NotEmpty(t, verdicts)

	for i := 1; i < len(verdicts); i++ {
		assert.GreaterOrEqual(t, verdicts[i-1].GapScore, verdicts[i].GapScore,
			"verdicts out of order at rank %d", verdicts[i].Rank)
	}
}

// verificationBundleJSON is a richer bundle than the database tests use, so
// the ordering checks have several verdicts to compare.
const verificationBundleJSON = `{
  "niche": "home espresso",
  "channel_id": "chan-self",
  "generated_at": "2025-06-01T00:00:00Z",
  "trend_series": [
    {
      "keyword": "espresso tamping",
      "points": [
        {"timestamp": "2025-05-04T00:00:00Z", "interest": 30},
        {"timestamp": "2025-05-11T00:00:00Z", "interest": 40},
        {"timestamp": "2025-05-18T00:00:00Z", "interest": 55},
        {"timestamp": "2025-05-25T00:00:00Z", "interest": 70}
      ]
    },
    {
      "keyword": "milk frothing",
      "points": [
        {"timestamp": "2025-05-04T00:00:00Z", "interest": 50},
        {"timestamp": "2025-05-11T00:00:00Z", "interest": 51},
        {"timestamp": "2025-05-18T00:00:00Z", "interest": 49},
        {"timestamp": "2025-05-25T00:00:00Z", "interest": 50}
      ]
    }
  ],
  "competitor_videos": [
    {"video_id": "v1", "channel_id": "c1", "view_count": 200000, "published_at": "2025-05-20T00:00:00Z", "title": "espresso machine buying guide"},
    {"video_id": "v2", "channel_id": "c2", "view_count": 150000, "published_at": "2025-05-15T00:00:00Z", "title": "latte art for beginners"},
    {"video_id": "v3", "channel_id": "c3", "view_count": 80000, "published_at": "2025-05-01T00:00:00Z", "title": "grinder comparison budget picks"},
    {"video_id": "v4", "channel_id": "c1", "view_count": 60000, "published_at": "2025-04-10T00:00:00Z", "title": "espresso machine maintenance"}
  ],
  "channel_videos": [
    {"video_id": "o1", "title": "my espresso setup tour", "view_count": 9000, "published_at": "2025-02-01T00:00:00Z"}
  ],
  "thumbnails": [],
  "topics": [
    {"topic": "espresso tamping", "comment_count": 120, "question_count": 70, "urgency_count": 20, "trend_keyword": "espresso tamping"},
    {"topic": "milk frothing", "comment_count": 90, "question_count": 30, "urgency_count": 5, "trend_keyword": "milk frothing"},
    {"topic": "descaling routine", "comment_count": 60, "question_count": 12, "urgency_count": 3}
  ]
}`
