package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Executor Executor `yaml:"executor"`
	Stacks   []Stack  `yaml:"stacks"`
	APIs     []string `yaml:"apis"`
	Results  Results  `yaml:"results"`
}

// Executor describes how one outer run of the suite is launched. Command
// names the suite-runner binary; when Image is set the runner executes
// inside a container instead, with the suite location bind-mounted. Either
// way the runner prints its per-test metrics as a JSON object on stdout.
type Executor struct {
	Command        string            `yaml:"command"`
	Args           []string          `yaml:"args"`
	Env            map[string]string `yaml:"env"`
	Image          string            `yaml:"image"`
	TimeoutMinutes int               `yaml:"timeout_minutes"`
}

// Stack is a deployed environment that benchmark results can be recorded
// against. The URL is handed to the suite runner so its tests know which
// deployment to exercise.
type Stack struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Results struct {
	Dir       string `yaml:"dir"`
	UploadURL string `yaml:"upload_url"`
}

// StackNames returns the registered stack names in config order.
func (c *Config) StackNames() []string {
	names := make([]string, 0, len(c.Stacks))
	for _, s := range c.Stacks {
		names = append(names, s.Name)
	}
	return names
}

// FindStack returns the registered stack with the given name, or nil.
// Stack names on the command line are free text, so a miss is not an
// error; the caller just gets no base URL to pass along.
func (c *Config) FindStack(name string) *Stack {
	for i := range c.Stacks {
		if c.Stacks[i].Name == name {
			return &c.Stacks[i]
		}
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Executor.Command == "" {
		return fmt.Errorf("executor: command is required")
	}
	if cfg.Executor.TimeoutMinutes < 0 {
		return fmt.Errorf("executor: timeout_minutes must not be negative")
	}
	if cfg.Executor.TimeoutMinutes == 0 {
		cfg.Executor.TimeoutMinutes = 30
	}

	seenStacks := make(map[string]bool)
	for i, s := range cfg.Stacks {
		if s.Name == "" {
			return fmt.Errorf("stack %d: name is required", i)
		}
		if seenStacks[s.Name] {
			return fmt.Errorf("stack %q: duplicate name", s.Name)
		}
		seenStacks[s.Name] = true
	}

	seenAPIs := make(map[string]bool)
	for i, a := range cfg.APIs {
		if a == "" {
			return fmt.Errorf("api %d: empty label", i)
		}
		if seenAPIs[a] {
			return fmt.Errorf("api %q: duplicate label", a)
		}
		seenAPIs[a] = true
	}

	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	return nil
}
