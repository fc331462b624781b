// Package main provides a performance benchmarking tool for the Gapscope CLI.
// It generates synthetic input bundles of increasing size, measures execution
// times across commands and snapshot backends, treating the first successful
// run as cold and averaging the rest as warm, and writes CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - gapscope binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to write generated bundles into
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-snapshot average, cold run and average of warm runs).
type BenchmarkResult struct {
	Bundle         string
	Command        string
	NoSnapshotTime string
	ColdTime       string
	WarmTime       string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir        string
	Timeout        time.Duration
	Workers        int
	NoSnapshotRuns int
	SnapshotRuns   int
	BundleSizes    map[string]bundleShape
}

// bundleShape controls how large a generated bundle is.
type bundleShape struct {
	Keywords    int
	Competitors int
	Thumbnails  int
	Topics      int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:        workDir,
		Timeout:        2 * time.Minute,
		Workers:        8,
		NoSnapshotRuns: 3,
		SnapshotRuns:   4,
		BundleSizes: map[string]bundleShape{
			"small":  {Keywords: 10, Competitors: 50, Thumbnails: 50, Topics: 20},
			"medium": {Keywords: 100, Competitors: 500, Thumbnails: 500, Topics: 200},
			"large":  {Keywords: 1000, Competitors: 5000, Thumbnails: 5000, Topics: 2000},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear snapshots using gapscope snapshot clear
	fmt.Printf("Clearing snapshots...\n")
	clearCmd := exec.Command("gapscope", "snapshot", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear snapshots: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Snapshots cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gapscope binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("gapscope"); err != nil {
		return fmt.Errorf("gapscope binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across generated bundle sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d bundle sizes, %v timeout, %d workers, no-snapshot: %d runs, snapshot: %d runs\n",
		len(config.BundleSizes), config.Timeout, config.Workers, config.NoSnapshotRuns, config.SnapshotRuns)

	for _, name := range []string{"small", "medium", "large"} {
		shape := config.BundleSizes[name]
		fmt.Printf("Benchmarking %s bundle\n", name)

		bundlePath, err := generateBundle(config.WorkDir, name, shape)
		if err != nil {
			fmt.Printf("  failed to generate bundle: %v\n", err)
			continue
		}

		for _, command := range []string{"report", "gaps", "trends"} {
			result := runBenchmarkSuite(config, name, bundlePath, command)
			results = append(results, result)
		}
	}

	return results
}

// generateBundle writes a synthetic bundle of the given shape and returns its path.
func generateBundle(workDir, name string, shape bundleShape) (string, error) {
	generatedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	bundle := map[string]any{
		"niche":        "benchmark " + name,
		"channel_id":   "chan-bench",
		"generated_at": generatedAt,
	}

	var series []map[string]any
	for i := range shape.Keywords {
		var points []map[string]any
		for week := range 12 {
			points = append(points, map[string]any{
				"timestamp": generatedAt.AddDate(0, 0, -7*(12-week)),
				"interest":  float64(20 + (i+week)%60),
			})
		}
		series = append(series, map[string]any{
			"keyword": fmt.Sprintf("keyword %d", i),
			"points":  points,
		})
	}
	bundle["trend_series"] = series

	var competitors []map[string]any
	for i := range shape.Competitors {
		competitors = append(competitors, map[string]any{
			"video_id":     fmt.Sprintf("v%d", i),
			"channel_id":   fmt.Sprintf("c%d", i%25),
			"view_count":   int64(1000 * (i + 1)),
			"published_at": generatedAt.AddDate(0, 0, -(i % 180)),
			"title":        fmt.Sprintf("benchmark video about keyword %d", i%shape.Keywords),
		})
	}
	bundle["competitor_videos"] = competitors

	var thumbs []map[string]any
	for i := range shape.Thumbnails {
		thumbs = append(thumbs, map[string]any{
			"features": map[string]any{
				"thumbnail_ref": fmt.Sprintf("thumb%d", i),
				"dominant_colors": []map[string]any{
					{"hex": "#ff0000", "share": 0.6},
				},
				"face_count":         i % 3,
				"face_position":      "center",
				"text_density_score": 0.5,
				"brightness":         float64(50 + i%150),
			},
			"outcome": map[string]any{
				"subject_id":            fmt.Sprintf("v%d", i),
				"views":                 int64(500 * (i%40 + 1)),
				"channel_average_views": 10000.0,
				"channel_sample_count":  20,
			},
		})
	}
	bundle["thumbnails"] = thumbs

	var topics []map[string]any
	for i := range shape.Topics {
		topics = append(topics, map[string]any{
			"topic":          fmt.Sprintf("keyword %d", i%shape.Keywords),
			"comment_count":  50 + i,
			"question_count": 10 + i%40,
			"urgency_count":  i % 10,
			"trend_keyword":  fmt.Sprintf("keyword %d", i%shape.Keywords),
		})
	}
	bundle["topics"] = topics

	data, err := json.Marshal(bundle)
	if err != nil {
		return "", err
	}

	path := filepath.Join(workDir, name+"_bundle.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// runBenchmarkSuite runs both no-snapshot and snapshot benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, bundleName, bundlePath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s bundle\n", command, bundleName)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, bundlePath, command, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-snapshot runs
	_, noSnapshotAvg := runPhase("none", config.NoSnapshotRuns, "No-snapshot")

	// Phase 2: Snapshot runs
	coldTime, warmAvg := runPhase("sqlite", config.SnapshotRuns, "Snapshot")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-snapshot average: %s, Cold time: %s, Warm average: %s\n", noSnapshotAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Bundle:         bundleName,
		Command:        command,
		NoSnapshotTime: noSnapshotAvg,
		ColdTime:       coldTimeStr,
		WarmTime:       warmAvg,
	}
}

// runBenchmark executes a gapscope command multiple times with the specified
// snapshot backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, bundlePath, command, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command, bundlePath,
		"--snapshot-backend", backend,
		"--workers", fmt.Sprintf("%d", config.Workers),
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gapscope", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gapscope_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"bundle", "cmd", "no_snapshot_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Bundle, result.Command, result.NoSnapshotTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "report", "Report Analysis:")
	printCommandSummary(results, "gaps", "Gap Analysis:")
	printCommandSummary(results, "trends", "Trend Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-snapshot: %s, Cold: %s, Warm: %s\n", result.Bundle, result.NoSnapshotTime, result.ColdTime, result.WarmTime)
		}
	}
}
