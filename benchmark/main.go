// Package main provides a performance benchmarking tool for the Sifarish CLI.
// It measures execution times across different claim datasets and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - sifarish binary installed and available in PATH
// - Claim datasets (JSON or CSV) placed in the specified base directory
//
// Usage: go run benchmark/main.go [dataset-base-dir]
//
//	dataset-base-dir: Directory containing claim dataset files
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DatasetBase string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	Datasets    []string
}

// benchCommands are the subcommands measured per dataset.
var benchCommands = []string{"recommend", "villages", "schemes"}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [dataset-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	datasetBase := os.Args[1]

	config := BenchmarkConfig{
		DatasetBase: datasetBase,
		Timeout:     2 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Datasets:    []string{"claims_small.json", "claims_medium.json", "claims_large.csv"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear previous run tracking data
	fmt.Printf("Clearing run store...\n")
	clearCmd := exec.Command("sifarish", "runs", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the sifarish binary and datasets exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if sifarish is available
	if _, err := exec.LookPath("sifarish"); err != nil {
		return fmt.Errorf("sifarish binary not found in PATH")
	}

	// Check if datasets exist
	for _, dataset := range config.Datasets {
		datasetPath := filepath.Join(config.DatasetBase, dataset)
		if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
			return fmt.Errorf("dataset %s not found at %s", dataset, datasetPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, dataset := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", dataset)

		datasetPath := filepath.Join(config.DatasetBase, dataset)
		for _, command := range benchCommands {
			results = append(results, runBenchmarkSuite(config, dataset, datasetPath, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, datasetPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, datasetPath, command, storeBackend, numRuns)
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

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a sifarish command multiple times with the specified store backend
// and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, datasetPath, command, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, datasetPath, "--store-backend", storeBackend}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("sifarish", args...)

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

// isSuccess checks whether a run produced ranked output rather than an error.
func isSuccess(output []byte) bool {
	text := string(output)
	return !strings.Contains(text, "Fatal") && strings.TrimSpace(text) != ""
}

// saveResults writes the benchmark results to a CSV file
func saveResults(results []BenchmarkResult) error {
	f, err := os.Create("benchmark_results.csv")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"dataset", "command", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Dataset, r.Command, r.NoStoreTime, r.ColdTime, r.WarmTime}); err != nil {
			return err
		}
	}
	return nil
}

// printSummary prints a human-readable summary of all results
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	for _, r := range results {
		fmt.Printf("  %-20s %-10s no-store=%-10s cold=%-10s warm=%s\n",
			r.Dataset, r.Command, r.NoStoreTime, r.ColdTime, r.WarmTime)
	}
	fmt.Println("\nResults written to benchmark_results.csv")
}
