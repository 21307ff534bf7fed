package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stackbench/stackbench/internal/bench"
)

func CreateRunDir(baseDir string) (string, error) {
	runsDir := filepath.Join(baseDir, "runs")
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runDir := filepath.Join(runsDir, stamp)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

// WriteRun stores one invocation's metadata and aggregated statistics in
// the run directory.
func WriteRun(runDir string, meta *RunMeta, results bench.Aggregated) error {
	if err := writeJSON(filepath.Join(runDir, "meta.json"), meta); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, "results.json"), results)
}

func ReadMeta(runDir string) (*RunMeta, error) {
	data, err := os.ReadFile(filepath.Join(runDir, "meta.json"))
	if err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing meta: %w", err)
	}
	return &meta, nil
}

func ReadResults(runDir string) (bench.Aggregated, error) {
	data, err := os.ReadFile(filepath.Join(runDir, "results.json"))
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var results bench.Aggregated
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}
	return results, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
