package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stackbench/stackbench/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stackbench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
executor:
  command: ./suite-runner
  args: ["--format", "json"]
  env:
    BENCH_MODE: ci
  timeout_minutes: 10
stacks:
  - name: staging
    url: https://staging.example.com
  - name: prod
    url: https://api.example.com
apis:
  - ingest
  - query
results:
  dir: ./out
  upload_url: https://results.example.com/v1/runs
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Executor.Command != "./suite-runner" {
		t.Errorf("executor command = %q", cfg.Executor.Command)
	}
	if cfg.Executor.TimeoutMinutes != 10 {
		t.Errorf("timeout_minutes = %d, want 10", cfg.Executor.TimeoutMinutes)
	}
	if got := cfg.StackNames(); len(got) != 2 || got[0] != "staging" || got[1] != "prod" {
		t.Errorf("StackNames() = %v", got)
	}
	if len(cfg.APIs) != 2 {
		t.Errorf("expected 2 apis, got %d", len(cfg.APIs))
	}
	if cfg.Results.UploadURL == "" {
		t.Error("expected upload_url to be set")
	}
	if s := cfg.FindStack("prod"); s == nil || s.URL != "https://api.example.com" {
		t.Errorf("FindStack(prod) = %+v", s)
	}
	if s := cfg.FindStack("unknown"); s != nil {
		t.Errorf("FindStack(unknown) = %+v, want nil", s)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
executor:
  command: ./suite-runner
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Executor.TimeoutMinutes != 30 {
		t.Errorf("default timeout_minutes = %d, want 30", cfg.Executor.TimeoutMinutes)
	}
	if cfg.Results.Dir != "results" {
		t.Errorf("default results dir = %q, want results", cfg.Results.Dir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing executor command", "stacks:\n  - name: staging\n"},
		{"unnamed stack", "executor:\n  command: x\nstacks:\n  - url: https://a\n"},
		{"duplicate stack", "executor:\n  command: x\nstacks:\n  - name: a\n  - name: a\n"},
		{"duplicate api", "executor:\n  command: x\napis: [ingest, ingest]\n"},
		{"empty api", "executor:\n  command: x\napis: [\"\"]\n"},
		{"negative timeout", "executor:\n  command: x\n  timeout_minutes: -1\n"},
		{"not yaml", "{{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := config.Load("nonexistent.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
