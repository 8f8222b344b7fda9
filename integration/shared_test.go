//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedSpendchartPath holds the path to a shared spendchart binary built once for all tests.
	sharedSpendchartPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getSpendchartBinary returns the path to the spendchart binary, building it once if needed.
func getSpendchartBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "spendchart-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "spendchart")
		buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/spendchart")
		buildCmd.Dir = ".." // Project root
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build spendchart: %v", err))
		}

		sharedSpendchartPath = binPath
	})

	return sharedSpendchartPath
}

// runSpendchart runs the CLI from the project root and returns its stdout.
func runSpendchart(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	cmd := exec.Command(getSpendchartBinary(), args...)
	cmd.Dir = ".."
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Logf("Command failed: %s\nStderr: %s", cmd.String(), string(exitErr.Stderr))
		}
		return output, err
	}
	return output, nil
}

// writePayload writes a small two-category payload and returns its path.
func writePayload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	data := `[
  {"id": 1, "name": "Market", "category": "Food", "amount": 300, "time": 1711929600000},
  {"id": 2, "name": "Taxi", "category": "Transport", "amount": 100, "time": 1712102400000},
  {"id": 3, "name": "Bakery", "category": "Food", "amount": 200, "time": 1712016000000}
]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write payload: %v", err)
	}
	return path
}
