package docker_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stackbench/stackbench/internal/docker"
)

func TestRunContainer(t *testing.T) {
	if os.Getenv("STACKBENCH_DOCKER_TESTS") == "" {
		t.Skip("set STACKBENCH_DOCKER_TESTS=1 to run Docker tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	suiteDir := t.TempDir()
	os.WriteFile(filepath.Join(suiteDir, "suite.json"), []byte(`{"test_a": {"times": [1.0], "passed": true}}`), 0o644)

	result, err := docker.RunContainer(ctx, &docker.RunOpts{
		Image:    "alpine:latest",
		Command:  []string{"cat", "/suite/suite.json"},
		SuiteDir: suiteDir,
		Env:      map[string]string{"STACK_URL": "http://host.docker.internal:8080"},
		Timeout:  30 * time.Second,
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("exit code: got %d, want 0", result.ExitCode)
	}
	if result.TimedOut {
		t.Error("unexpected timeout")
	}
	if !strings.Contains(string(result.Stdout), `"test_a"`) {
		t.Errorf("stdout: got %q, want suite JSON", result.Stdout)
	}
}

func TestRunContainerTimeout(t *testing.T) {
	if os.Getenv("STACKBENCH_DOCKER_TESTS") == "" {
		t.Skip("set STACKBENCH_DOCKER_TESTS=1 to run Docker tests")
	}
	ctx := context.Background()

	result, err := docker.RunContainer(ctx, &docker.RunOpts{
		Image:    "alpine:latest",
		Command:  []string{"sleep", "300"},
		SuiteDir: t.TempDir(),
		Timeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if !result.TimedOut {
		t.Error("expected timeout")
	}
	if result.ExitCode != 124 {
		t.Errorf("exit code: got %d, want 124", result.ExitCode)
	}
}

func TestRunContainerCrash(t *testing.T) {
	if os.Getenv("STACKBENCH_DOCKER_TESTS") == "" {
		t.Skip("set STACKBENCH_DOCKER_TESTS=1 to run Docker tests")
	}
	ctx := context.Background()

	result, err := docker.RunContainer(ctx, &docker.RunOpts{
		Image:    "alpine:latest",
		Command:  []string{"sh", "-c", "exit 1"},
		SuiteDir: t.TempDir(),
		Timeout:  10 * time.Second,
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("exit code: got %d, want 1", result.ExitCode)
	}
}
