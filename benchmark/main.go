// Package main provides a performance benchmarking tool for the Airspot CLI.
// It measures execution times of the analysis commands against both reading sources,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - airspot binary installed and available in PATH
// - A data directory holding both station files (airspot generate writes one)
//
// Usage: go run benchmark/main.go [data-dir]
//
//	data-dir: Directory containing the station files
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Source   string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir  string
	DBPath   string
	Timeout  time.Duration
	Runs     int
	Sources  []string
	Commands map[string][]string
	Order    []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataDir := os.Args[1]

	config := BenchmarkConfig{
		DataDir: dataDir,
		DBPath:  filepath.Join(os.TempDir(), "airspot_benchmark.db"),
		Timeout: 2 * time.Minute,
		Runs:    5,
		Sources: []string{"file", "database"},
		Commands: map[string][]string{
			"stats":      {"stats", "bogota"},
			"timeseries": {"timeseries", "bogota", "--stride", "1", "--output", "csv"},
			"daily":      {"daily", "nyc"},
			"compliance": {"compliance", "bogota"},
			"compare":    {"compare", "--stride", "1", "--output", "json"},
			"summary":    {"summary"},
		},
		Order: []string{"stats", "timeseries", "daily", "compliance", "compare", "summary"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Load the files into a scratch SQLite database for the database source
	fmt.Printf("Importing readings into %s...\n", config.DBPath)
	_ = os.Remove(config.DBPath)
	importCmd := exec.Command("airspot", "db", "import", "--data-dir", config.DataDir, "--db-connect", config.DBPath)
	if output, err := importCmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to import readings: %v\nOutput: %s\n", err, string(output))
		os.Exit(1)
	}
	defer func() { _ = os.Remove(config.DBPath) }()

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the airspot binary and the station files exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("airspot"); err != nil {
		return fmt.Errorf("airspot binary not found in PATH")
	}

	for _, name := range []string{"StationData-NY_QueensCollege.txt", "StationData-Bogota_SanCristobal.txt"} {
		path := filepath.Join(config.DataDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("station file %s not found at %s", name, path)
		}
	}

	return nil
}

// runBenchmarks executes every command against every source
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sources, %d commands, %v timeout, %d runs\n",
		len(config.Sources), len(config.Order), config.Timeout, config.Runs)

	for _, source := range config.Sources {
		fmt.Printf("Benchmarking source %s\n", source)
		for _, command := range config.Order {
			results = append(results, runBenchmarkSuite(config, source, command))
		}
	}

	return results
}

// runBenchmarkSuite runs one command repeatedly and reports the cold and warm times
func runBenchmarkSuite(config BenchmarkConfig, source, command string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", command, config.Runs)

	args := append([]string{}, config.Commands[command]...)
	args = append(args, "--source", source, "--data-dir", config.DataDir, "--db-connect", config.DBPath, "--color", "no")

	coldTime, warmTimes := runBenchmark(config, args)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "N/A"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("    Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Source:   source,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes an airspot command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "airspot", args...)
		err := cmd.Run()
		elapsed := time.Since(start).Seconds()
		cancel()

		// Timeouts and failures are not counted
		if err == nil {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/airspot_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"source", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Source, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, source := range config.Sources {
		fmt.Printf("Source %s:\n", source)
		for _, result := range results {
			if result.Source == source {
				fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Command, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
