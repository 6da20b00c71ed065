// Package runtimeconfig loads the executor's tunables through viper, the
// same precedence chain the teacher's config package documents:
// AMADEUS_-prefixed environment variables override an explicit config
// file, which overrides the defaults below. It does not touch global state — Load returns a Config
// a caller threads through explicitly.
package runtimeconfig

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config bundles the knobs exec.Gather and the worker pools need at
// startup. Everything here has a sane default, so a zero-value caller
// (tests, demos) can skip Load entirely and use Default().
type Config struct {
	// InFlight bounds how many tasks exec.Gather may have outstanding at
	// once. Zero or negative falls back to exec.DefaultInFlight.
	InFlight int `mapstructure:"in_flight"`

	// TaskTimeout bounds a single task's execution; zero means no
	// per-task deadline beyond the run's own context.
	TaskTimeout time.Duration `mapstructure:"task_timeout"`

	// ShutdownGrace is how long a worker pool's Shutdown waits for
	// in-flight work to finish before returning.
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`

	// TasksPerProcess sizes dist's per-process batches (ignored by par).
	TasksPerProcess int `mapstructure:"tasks_per_process"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		InFlight:        0,
		TaskTimeout:     0,
		ShutdownGrace:   5 * time.Second,
		TasksPerProcess: 8,
	}
}

// Load reads configuration from path (if non-empty) with viper, applying
// AMADEUS_-prefixed environment overrides on top, and falls back to
// Default for anything unset. An unreadable or malformed file is an
// error; a missing path is not — Default() alone is valid.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AMADEUS")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("in_flight", def.InFlight)
	v.SetDefault("task_timeout", def.TaskTimeout)
	v.SetDefault("shutdown_grace", def.ShutdownGrace)
	v.SetDefault("tasks_per_process", def.TasksPerProcess)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("runtimeconfig: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("runtimeconfig: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the executor can't act on sensibly.
func (c Config) Validate() error {
	if c.InFlight < 0 {
		return fmt.Errorf("runtimeconfig: in_flight must be >= 0, got %d", c.InFlight)
	}
	if c.TaskTimeout < 0 {
		return fmt.Errorf("runtimeconfig: task_timeout must be >= 0, got %s", c.TaskTimeout)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("runtimeconfig: shutdown_grace must be >= 0, got %s", c.ShutdownGrace)
	}
	if c.TasksPerProcess < 0 {
		return fmt.Errorf("runtimeconfig: tasks_per_process must be >= 0, got %d", c.TasksPerProcess)
	}
	return nil
}
