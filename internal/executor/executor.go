// Package executor launches one outer run of a benchmark suite and parses
// the per-test metrics the suite runner prints as JSON on stdout.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/stackbench/stackbench/internal/bench"
	"github.com/stackbench/stackbench/internal/config"
	"github.com/stackbench/stackbench/internal/docker"
)

// Executor runs the suite at location once, repeating each test numRuns
// times, and returns the per-test metrics for that outer run.
type Executor interface {
	Run(ctx context.Context, location string, numRuns int) (bench.RunResult, error)
}

// FromConfig builds an Executor from the config. When an image is
// configured the suite runs in a container, otherwise as a local
// subprocess. The stack's base URL, if known, reaches the runner through
// STACK_URL.
func FromConfig(cfg config.Executor, stack *config.Stack, logger *slog.Logger) Executor {
	env := make(map[string]string, len(cfg.Env)+1)
	for k, v := range cfg.Env {
		env[k] = v
	}
	if stack != nil && stack.URL != "" {
		env["STACK_URL"] = stack.URL
	}
	timeout := time.Duration(cfg.TimeoutMinutes) * time.Minute

	if cfg.Image != "" {
		return &Container{
			Image:   cfg.Image,
			Command: cfg.Command,
			Args:    cfg.Args,
			Env:     env,
			Timeout: timeout,
			Logger:  logger.With(slog.String("executor", "container")),
		}
	}
	return &Command{
		Binary:  cfg.Command,
		Args:    cfg.Args,
		Env:     env,
		Timeout: timeout,
		Logger:  logger.With(slog.String("executor", "command")),
	}
}

// Command runs the suite runner as a local subprocess.
type Command struct {
	Binary  string
	Args    []string
	Env     map[string]string
	Timeout time.Duration
	Logger  *slog.Logger
}

func (c *Command) Run(ctx context.Context, location string, numRuns int) (bench.RunResult, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(c.Args)+3)
	args = append(args, c.Args...)
	args = append(args, "--runs", strconv.Itoa(numRuns), location)

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	if len(c.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.Logger.Info("starting suite runner",
		slog.String("binary", c.Binary),
		slog.String("location", location),
		slog.Int("runs", numRuns),
	)

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("suite runner failed: %w\nstderr: %s", err, stderr.String())
	}

	c.Logger.Info("suite runner finished",
		slog.Duration("wall_time", time.Since(start)),
	)

	run, err := parseRunResult(&stdout)
	if err != nil {
		return nil, fmt.Errorf("parse runner output: %w\nstdout: %s", err, stdout.String())
	}
	return run, nil
}

// Container runs the suite runner inside a one-shot container with the
// suite location mounted at /suite.
type Container struct {
	Image   string
	Command string
	Args    []string
	Env     map[string]string
	Timeout time.Duration
	Logger  *slog.Logger
}

func (c *Container) Run(ctx context.Context, location string, numRuns int) (bench.RunResult, error) {
	suiteDir, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("resolving suite location: %w", err)
	}

	command := make([]string, 0, len(c.Args)+4)
	command = append(command, c.Command)
	command = append(command, c.Args...)
	command = append(command, "--runs", strconv.Itoa(numRuns), "/suite")

	c.Logger.Info("starting suite runner",
		slog.String("image", c.Image),
		slog.String("location", suiteDir),
		slog.Int("runs", numRuns),
	)

	res, err := docker.RunContainer(ctx, &docker.RunOpts{
		Image:    c.Image,
		Command:  command,
		SuiteDir: suiteDir,
		Env:      c.Env,
		Timeout:  c.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("running suite container: %w", err)
	}
	if res.TimedOut {
		return nil, fmt.Errorf("suite runner timed out after %s", c.Timeout)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("suite runner exited with code %d", res.ExitCode)
	}

	c.Logger.Info("suite runner finished",
		slog.Duration("wall_time", res.Duration),
	)

	run, err := parseRunResult(bytes.NewReader(res.Stdout))
	if err != nil {
		return nil, fmt.Errorf("parse runner output: %w\nstdout: %s", err, res.Stdout)
	}
	return run, nil
}

func parseRunResult(r io.Reader) (bench.RunResult, error) {
	var run bench.RunResult
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return run, nil
}
