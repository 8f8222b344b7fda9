// Package main provides a performance benchmarking tool for the spendchart CLI.
// It generates synthetic payloads of increasing size, runs each chart command
// several times without view state and with a SQLite state store, treating the
// first stored run as cold and averaging the rest as warm, and writes the
// timings to a CSV file for documentation.
//
// Prerequisites:
// - spendchart binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where payloads and the benchmark state database are written
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-state average, cold run and average of warm runs).
type BenchmarkResult struct {
	Payload     string
	Command     string
	NoStateTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoStateRuns int
	StateRuns   int
	Sizes       []int
	Categories  int
	Commands    [][]string
}

type record struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Time     int64  `json:"time"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     2 * time.Minute,
		NoStateRuns: 3,
		StateRuns:   4,
		Sizes:       []int{1_000, 10_000, 100_000},
		Categories:  12,
		Commands: [][]string{
			{"pie"},
			{"line"},
			{"tap", "--x", "250", "--y", "490"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the spendchart binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("spendchart"); err != nil {
		return fmt.Errorf("spendchart binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generatePayload writes a deterministic payload of n records spread over one month
func generatePayload(dir string, n, categories int) (string, error) {
	rng := rand.New(rand.NewPCG(uint64(n), 42))
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	records := make([]record, n)
	for i := range records {
		records[i] = record{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("merchant-%d", rng.IntN(500)),
			Category: fmt.Sprintf("category-%02d", rng.IntN(categories)),
			Amount:   rng.Int64N(10_000) + 1,
			Time:     start.Add(time.Duration(rng.Int64N(int64(31 * 24 * time.Hour)))).UnixMilli(),
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("payload_%d.json", n))
	return path, os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes all benchmark tests across configured payload sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, no-state: %d runs, state: %d runs\n",
		len(config.Sizes), config.Timeout, config.NoStateRuns, config.StateRuns)

	for _, size := range config.Sizes {
		payloadPath, err := generatePayload(config.WorkDir, size, config.Categories)
		if err != nil {
			fmt.Printf("Skipping size %d: %v\n", size, err)
			continue
		}
		name := filepath.Base(payloadPath)
		fmt.Printf("Benchmarking %s\n", name)

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, name, payloadPath, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-state and state benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, name, payloadPath string, command []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command[0], name)

	statePath := filepath.Join(config.WorkDir, "bench_state.db")
	_ = os.Remove(statePath)

	runPhase := func(stateBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, payloadPath, command, stateBackend, statePath, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noStateAvg := runPhase("none", config.NoStateRuns, "No-state")
	coldTime, warmAvg := runPhase("sqlite", config.StateRuns, "State")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-state average: %s, Cold time: %s, Warm average: %s\n", noStateAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Payload:     name,
		Command:     command[0],
		NoStateTime: noStateAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a spendchart command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, payloadPath string, command []string, stateBackend, statePath string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{command[0], payloadPath}, command[1:]...)
	args = append(args, "--state-backend", stateBackend, "--output-file", os.DevNull)
	if stateBackend == "sqlite" {
		args = append(args, "--state-db-connect", statePath)
	}

	var times []float64
	for range numRuns {
		start := time.Now()
		cmd := exec.Command("spendchart", args...)

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
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
	filename := fmt.Sprintf("/tmp/spendchart_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"payload", "cmd", "no_state_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Payload, result.Command, result.NoStateTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command[0])
		for _, result := range results {
			if result.Command == command[0] {
				fmt.Printf("  %-22s: No-state: %s, Cold: %s, Warm: %s\n", result.Payload, result.NoStateTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
