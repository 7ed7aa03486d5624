package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"basic-video-processing/internal/algorithms"
	"basic-video-processing/internal/core"
)

const (
	DefaultInput  = "atrium.avi"
	DefaultPrefix = "308339274_212235246_atrium"
)

// Config describes one batch: a single input processed by each job in turn.
type Config struct {
	Input           string      `yaml:"input"`
	Jobs            []JobConfig `yaml:"jobs"`
	MetricsTextfile string      `yaml:"metrics_textfile,omitempty"` // node_exporter textfile path, empty to disable
	Debug           bool        `yaml:"debug"`
}

// JobConfig names a transform and where its video goes
type JobConfig struct {
	Transform string `yaml:"transform"`
	Output    string `yaml:"output"`
}

// Default reproduces the fixed file names of the original exercise.
func Default() *Config {
	return &Config{
		Input: DefaultInput,
		Jobs:  DefaultJobs("", DefaultPrefix),
	}
}

// DefaultJobs builds one job per transform, in batch order, writing
// <prefix>_<transform>.avi under dir.
func DefaultJobs(dir, prefix string) []JobConfig {
	names := algorithms.DefaultOrder()
	jobs := make([]JobConfig, 0, len(names))
	for _, name := range names {
		jobs = append(jobs, JobConfig{
			Transform: name,
			Output:    filepath.Join(dir, fmt.Sprintf("%s_%s.avi", prefix, name)),
		})
	}
	return jobs
}

// Load reads a YAML file on top of the defaults. A file that lists jobs
// replaces the default jobs entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks paths and transform names before anything is opened.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required")
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("at least one job is required")
	}

	seen := make(map[string]bool)
	for i, job := range c.Jobs {
		if !algorithms.IsValidTransform(job.Transform) {
			return fmt.Errorf("job %d: unknown transform %q (have %v)", i, job.Transform, algorithms.Names())
		}
		if job.Output == "" {
			return fmt.Errorf("job %d: output is required", i)
		}
		if job.Output == c.Input {
			return fmt.Errorf("job %d: output %q overwrites the input", i, job.Output)
		}
		if seen[job.Output] {
			return fmt.Errorf("job %d: output %q is used twice", i, job.Output)
		}
		seen[job.Output] = true
	}

	return nil
}

// Only keeps the jobs for a single transform.
func (c *Config) Only(transform string) error {
	var kept []JobConfig
	for _, job := range c.Jobs {
		if job.Transform == transform {
			kept = append(kept, job)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("no job for transform %q", transform)
	}
	c.Jobs = kept
	return nil
}

// BatchJobs converts the configured jobs for the pipeline.
func (c *Config) BatchJobs() []core.Job {
	jobs := make([]core.Job, 0, len(c.Jobs))
	for _, job := range c.Jobs {
		jobs = append(jobs, core.Job{
			Transform: job.Transform,
			Output:    job.Output,
		})
	}
	return jobs
}
