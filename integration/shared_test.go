//go:build basic || database

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedAirspotPath holds the path to a shared airspot binary built once for all tests.
	sharedAirspotPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getAirspotBinary returns the path to the airspot binary, building it once if needed.
func getAirspotBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "airspot-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		airspotPath := filepath.Join(tempDir, "airspot")
		buildCmd := exec.Command("go", "build", "-o", airspotPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build airspot: %v\n%s", err, out))
		}

		sharedAirspotPath = airspotPath
	})

	return sharedAirspotPath
}

// runAirspot runs the binary in dir with extra environment variables and returns stdout.
func runAirspot(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getAirspotBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "AIRSPOT_COLOR=no")
	cmd.Env = append(cmd.Env, env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// generateData writes a short deterministic dataset into a fresh directory.
func generateData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runAirspot(t, dir, nil, "generate", "--data-dir", dir, "--start", "2017-01-01", "--end", "2017-01-15")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	return dir
}
